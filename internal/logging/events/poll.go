package events

import (
	"time"

	"github.com/atomicstack/glazewm-top/internal/logging"
)

type PollTracer struct{}

var Poll = PollTracer{}

func (PollTracer) Cycle(monitors, windows int, elapsed time.Duration) {
	logging.Trace("poll.cycle", map[string]interface{}{
		"monitors":   monitors,
		"windows":    windows,
		"elapsed_ms": elapsed.Milliseconds(),
	})
}

func (PollTracer) Failure(failures int, state string, err error) {
	payload := map[string]interface{}{"failures": failures, "state": state}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("poll.failure", payload)
}

func (PollTracer) Backoff(wait time.Duration) {
	logging.Trace("poll.backoff", map[string]interface{}{"wait_ms": wait.Milliseconds()})
}

func (PollTracer) Refresh() {
	logging.Trace("poll.refresh", nil)
}

func (PollTracer) Recovered(failures int) {
	logging.Trace("poll.recovered", map[string]interface{}{"after_failures": failures})
}
