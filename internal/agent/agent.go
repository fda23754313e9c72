// Package agent defines the conversational AI client used for call analysis.
package agent

import "context"

// Event is one element of a streamed agent reply.
type Event interface {
	isEvent()
}

// ContentChunk carries a fragment of the agent's textual answer.
type ContentChunk struct {
	Text string
}

// TraceEvent carries agent-internal reasoning or orchestration data.
// It is never part of the answer text.
type TraceEvent struct {
	Payload any
}

// ControlEvent signals that the agent wants the caller to run a tool.
// The reply carries no usable answer text when this appears.
type ControlEvent struct {
	Payload any
}

func (ContentChunk) isEvent() {}
func (TraceEvent) isEvent()   {}
func (ControlEvent) isEvent() {}

// EventStream yields reply events in order. Next returns io.EOF after the
// final event. Callers must Close the stream when done.
type EventStream interface {
	Next() (Event, error)
	Close() error
}

// Reply is an agent response, either a complete text or an event stream.
// Exactly one of Text/Stream is set; IsStream distinguishes them.
type Reply struct {
	Text     string
	Stream   EventStream
	IsStream bool
}

// TextReply wraps a complete text response.
func TextReply(text string) Reply {
	return Reply{Text: text}
}

// StreamReply wraps a streamed response.
func StreamReply(s EventStream) Reply {
	return Reply{Stream: s, IsStream: true}
}

// Client invokes the remote agent with a prompt and returns its reply.
type Client interface {
	Invoke(ctx context.Context, prompt string) (Reply, error)
}
