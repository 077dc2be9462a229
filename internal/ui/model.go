package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glazewm-top/internal/backend"
	"github.com/atomicstack/glazewm-top/internal/render"
	"github.com/atomicstack/glazewm-top/internal/state"
	"github.com/atomicstack/glazewm-top/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the model at startup.
type Options struct {
	Width   int
	Height  int
	Quiet   bool
	Compact bool
}

// Model implements the Bubble Tea model for the monitor view.
type Model struct {
	store    state.SnapshotStore
	renderer *render.Renderer
	poller   *backend.Poller

	spinner     spinner.Model
	loading     bool
	errMsg      string
	filter      string
	filtering   bool
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	quiet       bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around a running poller.
func NewModel(poller *backend.Poller, opts Options) *Model {
	renderer := render.New(styles)
	if opts.Compact {
		renderer.SetMode(render.ModeCompact)
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m := &Model{
		store:    state.NewSnapshotStore(),
		renderer: renderer,
		poller:   poller,
		spinner:  sp,
		loading:  true,
		quiet:    opts.Quiet,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.poller != nil {
		cmds = append(cmds, waitForPollEvent(m.poller))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(pollEventMsg{}):      m.handlePollEventMsg,
		reflect.TypeOf(pollDoneMsg{}):       m.handlePollDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.loading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// Store exposes the snapshot store for tests.
func (m *Model) Store() state.SnapshotStore {
	return m.store
}

// Renderer exposes the renderer for tests.
func (m *Model) Renderer() *render.Renderer {
	return m.renderer
}
