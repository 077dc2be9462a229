// Package backend drives the periodic query cycle against the window
// manager and publishes results as events.
package backend

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/glazewm-top/internal/logging/events"
	"github.com/atomicstack/glazewm-top/internal/wm"
)

// State is the poller's position in the retry cycle.
type State int

const (
	StateIdle State = iota
	StateQuerying
	StateRetrying
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateQuerying:
		return "querying"
	case StateRetrying:
		return "retrying"
	case StateDegraded:
		return "degraded"
	default:
		return "idle"
	}
}

// Event conveys a fresh snapshot or a cycle failure. Err and Snapshot are
// mutually exclusive; Stale is set on failures so the view knows its data
// is outdated.
type Event struct {
	Snapshot *wm.Snapshot
	Err      error
	State    State
	Failures int
	Stale    bool
}

// Policy bundles the timing knobs so tests can shrink them.
type Policy struct {
	Interval     time.Duration
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
	DegradeAfter int
}

// DefaultPolicy matches the production cadence: poll every second, back off
// from 500ms to 8s, report degraded after three consecutive failures.
func DefaultPolicy(interval time.Duration) Policy {
	if interval <= 0 {
		interval = time.Second
	}
	return Policy{
		Interval:     interval,
		BaseBackoff:  500 * time.Millisecond,
		MaxBackoff:   8 * time.Second,
		DegradeAfter: 3,
	}
}

// Poller runs the query cycle on its own goroutine and publishes events.
// Both queries of a cycle must succeed for a snapshot to be emitted.
type Poller struct {
	client wm.Client
	policy Policy

	ctx    context.Context
	cancel context.CancelFunc

	events   chan Event
	refresh  chan struct{}
	throttle *throttle
	wg       sync.WaitGroup
}

// NewPoller starts polling immediately. The first cycle runs before the
// first interval elapses.
func NewPoller(client wm.Client, policy Policy) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		client:   client,
		policy:   policy,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		refresh:  make(chan struct{}, 1),
		throttle: newThrottle(100 * time.Millisecond),
	}

	p.wg.Add(1)
	go p.run()

	go func() {
		p.wg.Wait()
		close(p.events)
	}()

	return p
}

// Events returns the channel of poll events.
func (p *Poller) Events() <-chan Event {
	return p.events
}

// Refresh requests an immediate cycle, skipping any pending interval or
// backoff wait. Requests arriving faster than the throttle allows coalesce
// into one.
func (p *Poller) Refresh() {
	if !p.throttle.allow() {
		return
	}
	events.Poll.Refresh()
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Stop cancels the poller. The current cycle is abandoned; use Wait for a
// clean drain.
func (p *Poller) Stop() {
	p.cancel()
}

// Wait blocks until the poll goroutine has exited and the events channel is
// closed.
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) run() {
	defer p.wg.Done()

	failures := 0
	for {
		started := time.Now()
		snap, err := p.cycle()
		if p.ctx.Err() != nil {
			return
		}

		var evt Event
		if err != nil {
			failures++
			state := StateRetrying
			if failures >= p.policy.DegradeAfter {
				state = StateDegraded
			}
			events.Poll.Failure(failures, state.String(), err)
			evt = Event{Err: err, State: state, Failures: failures, Stale: true}
		} else {
			if failures > 0 {
				events.Poll.Recovered(failures)
			}
			failures = 0
			events.Poll.Cycle(len(snap.Monitors), snap.WindowCount(), time.Since(started))
			evt = Event{Snapshot: snap, State: StateIdle}
		}

		select {
		case <-p.ctx.Done():
			return
		case p.events <- evt:
		}

		wait := p.policy.Interval
		if failures > 0 {
			wait = p.backoff(failures)
			events.Poll.Backoff(wait)
		}
		if !p.sleep(wait) {
			return
		}
	}
}

// sleep waits for the duration, cutting it short on a refresh request.
// It reports false when the poller was stopped.
func (p *Poller) sleep(wait time.Duration) bool {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-p.ctx.Done():
		return false
	case <-p.refresh:
		return true
	case <-timer.C:
		return true
	}
}

// backoff doubles per consecutive failure, capped at the policy maximum.
func (p *Poller) backoff(failures int) time.Duration {
	wait := p.policy.BaseBackoff
	for i := 1; i < failures; i++ {
		wait *= 2
		if wait >= p.policy.MaxBackoff {
			return p.policy.MaxBackoff
		}
	}
	if wait > p.policy.MaxBackoff {
		wait = p.policy.MaxBackoff
	}
	return wait
}

// cycle issues both queries concurrently and maps the pair into a snapshot.
// If either query fails the whole cycle fails; no partial snapshots.
func (p *Poller) cycle() (*wm.Snapshot, error) {
	var monitorsRaw, windowsRaw json.RawMessage

	g, gctx := errgroup.WithContext(p.ctx)
	g.Go(func() error {
		var err error
		monitorsRaw, err = p.client.Query(gctx, wm.QueryMonitors)
		return err
	})
	g.Go(func() error {
		var err error
		windowsRaw, err = p.client.Query(gctx, wm.QueryWindows)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return wm.MapSnapshot(monitorsRaw, windowsRaw)
}
