package analyses

import (
	"errors"
	"io"
	"strings"

	"callcenter-backend/internal/agent"
	"callcenter-backend/internal/shared/telemetry"
)

// Assemble flattens a raw agent reply into a single text string. Streamed
// replies are consumed exactly once; content chunks concatenate in arrival
// order while trace and control events are only logged. A mid-stream error
// keeps whatever partial text accumulated so far. Never returns an error.
func Assemble(reply agent.Reply) string {
	if !reply.IsStream {
		return reply.Text
	}
	if reply.Stream == nil {
		return ""
	}
	defer reply.Stream.Close()

	var b strings.Builder
	for {
		ev, err := reply.Stream.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				telemetry.Warn("agent.stream.aborted", map[string]any{
					"error":         err.Error(),
					"partial_bytes": b.Len(),
				})
			}
			return b.String()
		}

		switch v := ev.(type) {
		case agent.ContentChunk:
			b.WriteString(v.Text)
		case agent.TraceEvent:
			telemetry.Info("agent.stream.trace", map[string]any{"payload": v.Payload})
		case agent.ControlEvent:
			telemetry.Warn("agent.stream.return_control", map[string]any{"payload": v.Payload})
		}
	}
}
