package events

import "github.com/atomicstack/glazewm-top/internal/logging"

type QueryTracer struct{}

var Query = QueryTracer{}

func (QueryTracer) Exec(command string) {
	logging.Trace("query.exec", map[string]interface{}{"command": command})
}

func (QueryTracer) Failed(command string, err error) {
	if err == nil {
		return
	}
	logging.Trace("query.failed", map[string]interface{}{"command": command, "error": err.Error()})
}
