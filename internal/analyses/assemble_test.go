package analyses

import (
	"errors"
	"io"
	"testing"

	"callcenter-backend/internal/agent"
)

type stubStream struct {
	events []agent.Event
	err    error
	closed bool
}

func (s *stubStream) Next() (agent.Event, error) {
	if len(s.events) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *stubStream) Close() error {
	s.closed = true
	return nil
}

func TestAssemblePlainText(t *testing.T) {
	text := "  plain reply text  "
	got := Assemble(agent.TextReply(text))
	if got != text {
		t.Fatalf("expected text unchanged, got %q", got)
	}
}

func TestAssembleConcatenatesChunksInOrder(t *testing.T) {
	stream := &stubStream{events: []agent.Event{
		agent.ContentChunk{Text: "first "},
		agent.ContentChunk{Text: "second "},
		agent.ContentChunk{Text: "third"},
	}}

	got := Assemble(agent.StreamReply(stream))
	if got != "first second third" {
		t.Fatalf("expected concatenated chunks, got %q", got)
	}
	if !stream.closed {
		t.Fatalf("expected stream to be closed")
	}
}

func TestAssembleSkipsTraceAndControlEvents(t *testing.T) {
	stream := &stubStream{events: []agent.Event{
		agent.TraceEvent{Payload: "trace data"},
		agent.ContentChunk{Text: "answer"},
		agent.ControlEvent{Payload: "tool request"},
	}}

	got := Assemble(agent.StreamReply(stream))
	if got != "answer" {
		t.Fatalf("expected only content chunks in output, got %q", got)
	}
}

func TestAssembleKeepsPartialOnStreamError(t *testing.T) {
	stream := &stubStream{
		events: []agent.Event{
			agent.ContentChunk{Text: "partial "},
			agent.ContentChunk{Text: "text"},
		},
		err: errors.New("connection reset"),
	}

	got := Assemble(agent.StreamReply(stream))
	if got != "partial text" {
		t.Fatalf("expected partial accumulation kept, got %q", got)
	}
}

func TestAssembleEmptyStream(t *testing.T) {
	got := Assemble(agent.StreamReply(&stubStream{}))
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestAssembleNilStream(t *testing.T) {
	got := Assemble(agent.Reply{IsStream: true})
	if got != "" {
		t.Fatalf("expected empty text for nil stream, got %q", got)
	}
}
