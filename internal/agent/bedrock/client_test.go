package bedrock

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"callcenter-backend/internal/agent"
)

func TestMapEventChunk(t *testing.T) {
	ev, ok := mapEvent(&types.ResponseStreamMemberChunk{
		Value: types.PayloadPart{Bytes: []byte("partial answer")},
	})
	if !ok {
		t.Fatalf("expected chunk to map")
	}
	chunk, isChunk := ev.(agent.ContentChunk)
	if !isChunk {
		t.Fatalf("expected ContentChunk, got %T", ev)
	}
	if chunk.Text != "partial answer" {
		t.Fatalf("unexpected chunk text: %q", chunk.Text)
	}
}

func TestMapEventTrace(t *testing.T) {
	ev, ok := mapEvent(&types.ResponseStreamMemberTrace{Value: types.TracePart{}})
	if !ok {
		t.Fatalf("expected trace to map")
	}
	if _, isTrace := ev.(agent.TraceEvent); !isTrace {
		t.Fatalf("expected TraceEvent, got %T", ev)
	}
}

func TestMapEventReturnControl(t *testing.T) {
	ev, ok := mapEvent(&types.ResponseStreamMemberReturnControl{Value: types.ReturnControlPayload{}})
	if !ok {
		t.Fatalf("expected return control to map")
	}
	if _, isControl := ev.(agent.ControlEvent); !isControl {
		t.Fatalf("expected ControlEvent, got %T", ev)
	}
}

func TestMapEventUnknownVariantSkipped(t *testing.T) {
	if ev, ok := mapEvent(&types.UnknownUnionMember{Tag: "future"}); ok {
		t.Fatalf("expected unknown variant to be skipped, got %T", ev)
	}
}
