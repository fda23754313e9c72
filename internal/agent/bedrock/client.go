// Package bedrock implements the agent client on Amazon Bedrock Agents.
package bedrock

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/google/uuid"

	"callcenter-backend/internal/agent"
)

// Client invokes a configured Bedrock agent alias.
type Client struct {
	runtime *bedrockagentruntime.Client
	agentID string
	aliasID string
}

// New builds a client from the default AWS credential chain.
func New(ctx context.Context, region, agentID, aliasID string) (*Client, error) {
	if agentID == "" || aliasID == "" {
		return nil, fmt.Errorf("bedrock: agent id and alias id are required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("bedrock: load aws config: %w", err)
	}
	return &Client{
		runtime: bedrockagentruntime.NewFromConfig(cfg),
		agentID: agentID,
		aliasID: aliasID,
	}, nil
}

// Invoke sends the prompt under a fresh session and returns the streamed reply.
func (c *Client) Invoke(ctx context.Context, prompt string) (agent.Reply, error) {
	out, err := c.runtime.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(c.agentID),
		AgentAliasId: aws.String(c.aliasID),
		SessionId:    aws.String(uuid.NewString()),
		InputText:    aws.String(prompt),
		EnableTrace:  aws.Bool(false),
	})
	if err != nil {
		return agent.Reply{}, fmt.Errorf("bedrock: invoke agent: %w", err)
	}
	return agent.StreamReply(&eventStream{stream: out.GetStream()}), nil
}

// eventStream adapts the Bedrock response stream to agent.EventStream.
type eventStream struct {
	stream    *bedrockagentruntime.InvokeAgentEventStream
	closeOnce sync.Once
	closeErr  error
}

func (s *eventStream) Next() (agent.Event, error) {
	for {
		ev, ok := <-s.stream.Events()
		if !ok {
			if err := s.stream.Err(); err != nil {
				return nil, fmt.Errorf("bedrock: stream: %w", err)
			}
			return nil, io.EOF
		}
		if mapped, ok := mapEvent(ev); ok {
			return mapped, nil
		}
		// Unknown event variants are skipped rather than failing the reply.
	}
}

// mapEvent converts one response stream variant to an agent event.
func mapEvent(ev types.ResponseStream) (agent.Event, bool) {
	switch v := ev.(type) {
	case *types.ResponseStreamMemberChunk:
		return agent.ContentChunk{Text: string(v.Value.Bytes)}, true
	case *types.ResponseStreamMemberTrace:
		return agent.TraceEvent{Payload: v.Value}, true
	case *types.ResponseStreamMemberReturnControl:
		return agent.ControlEvent{Payload: v.Value}, true
	default:
		return nil, false
	}
}

func (s *eventStream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.stream.Close()
	})
	return s.closeErr
}
