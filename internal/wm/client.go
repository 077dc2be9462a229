package wm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/atomicstack/glazewm-top/internal/logging/events"
)

// QueryKind selects which upstream query to run.
type QueryKind string

const (
	QueryMonitors QueryKind = "monitors"
	QueryWindows  QueryKind = "windows"
)

// Client fetches raw query payloads from a window manager backend.
type Client interface {
	Query(ctx context.Context, kind QueryKind) (json.RawMessage, error)
}

// QueryErrorKind classifies process-level query failures.
type QueryErrorKind int

const (
	QueryNotFound QueryErrorKind = iota
	QueryTimeout
	QueryNonZeroExit
	QueryIO
)

// QueryError describes a failed invocation of the upstream tool.
type QueryError struct {
	Kind     QueryErrorKind
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *QueryError) Error() string {
	switch e.Kind {
	case QueryNotFound:
		return fmt.Sprintf("executable not found: %s", e.Command)
	case QueryTimeout:
		return fmt.Sprintf("command timed out: %s", e.Command)
	case QueryNonZeroExit:
		msg := fmt.Sprintf("command exited with code %d: %s", e.ExitCode, e.Command)
		if s := strings.TrimSpace(e.Stderr); s != "" {
			msg += ": " + s
		}
		return msg
	default:
		return fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
	}
}

func (e *QueryError) Unwrap() error { return e.Err }

// LookupBinary resolves the glazewm executable path up front so a missing
// installation fails at startup instead of on the first poll.
func LookupBinary(path string) (string, error) {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", &QueryError{Kind: QueryNotFound, Command: path, Err: err}
	}
	return resolved, nil
}

// CLIClient runs `glazewm query <kind>` with a bounded timeout.
type CLIClient struct {
	path    string
	timeout time.Duration
}

// NewCLIClient builds a client for the given executable path and per-query
// timeout.
func NewCLIClient(path string, timeout time.Duration) *CLIClient {
	return &CLIClient{path: path, timeout: timeout}
}

// Query spawns the query subcommand and captures its complete stdout. On
// timeout the process is killed and a Timeout error returned; partial output
// is never surfaced.
func (c *CLIClient) Query(ctx context.Context, kind QueryKind) (json.RawMessage, error) {
	commandStr := fmt.Sprintf("%s query %s", c.path, kind)
	events.Query.Exec(commandStr)

	qctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(qctx, c.path, "query", string(kind))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return json.RawMessage(stdout.Bytes()), nil
	}

	qerr := classifyRunError(err, qctx, commandStr, stderr.String())
	events.Query.Failed(commandStr, qerr)
	return nil, qerr
}

func classifyRunError(err error, qctx context.Context, commandStr, stderr string) *QueryError {
	if errors.Is(qctx.Err(), context.DeadlineExceeded) {
		return &QueryError{Kind: QueryTimeout, Command: commandStr, Err: err}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &QueryError{Kind: QueryNotFound, Command: commandStr, Err: err}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &QueryError{
			Kind:     QueryNonZeroExit,
			Command:  commandStr,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
			Err:      err,
		}
	}
	return &QueryError{Kind: QueryIO, Command: commandStr, Err: err}
}
