package analyses

import (
	"strings"
	"testing"

	"callcenter-backend/internal/agent"
)

func TestNormalizeFencedBlockWithOutOfRangeScore(t *testing.T) {
	text := "Here is my analysis:\n" +
		"```json\n" +
		`{"summary": "Customer disputed an invoice.", "sentiment": "positive", "sentiment_score": 1.4,` +
		` "intent": "billing dispute", "topics": ["billing"], "agent_performance_score": 6,` +
		` "recommendations": ["apologize"]}` +
		"\n```"

	result := Normalize(agent.TextReply(text))
	if result.Summary != "Customer disputed an invoice." {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
	if result.Sentiment != "positive" {
		t.Fatalf("unexpected sentiment: %q", result.Sentiment)
	}
	if result.SentimentScore != DefaultSentimentScore {
		t.Fatalf("expected out-of-range score reset to 0.5, got %v", result.SentimentScore)
	}
	if result.AgentPerformanceScore != 6 {
		t.Fatalf("unexpected performance score: %d", result.AgentPerformanceScore)
	}
}

func TestNormalizeEmptyTextUsesFallbackPlaceholder(t *testing.T) {
	result := Normalize(agent.TextReply("   \n  "))
	if result.Summary != fallbackSummary {
		t.Fatalf("expected placeholder summary, got %q", result.Summary)
	}
	if result.Sentiment != SentimentNeutral || result.SentimentScore != DefaultSentimentScore {
		t.Fatalf("expected neutral defaults, got %q/%v", result.Sentiment, result.SentimentScore)
	}
	if result.AgentPerformanceScore != DefaultPerformanceScore {
		t.Fatalf("expected default performance score, got %d", result.AgentPerformanceScore)
	}
	if len(result.Topics) != 0 || len(result.Recommendations) != 0 {
		t.Fatalf("expected empty lists, got %v / %v", result.Topics, result.Recommendations)
	}
}

func TestNormalizeToolAttemptPhrase(t *testing.T) {
	result := Normalize(agent.TextReply("I'll need to use a function call"))
	if result.AgentPerformanceScore != 3 {
		t.Fatalf("expected diagnostic performance score 3, got %d", result.AgentPerformanceScore)
	}
	if result.Intent != "system configuration issue" {
		t.Fatalf("expected diagnostic intent, got %q", result.Intent)
	}
}

func TestNormalizeStreamedLabeledText(t *testing.T) {
	stream := &stubStream{events: []agent.Event{
		agent.ContentChunk{Text: "Summary: quick "},
		agent.ContentChunk{Text: "status call\n"},
		agent.TraceEvent{Payload: "thinking"},
		agent.ContentChunk{Text: "Sentiment: positive 0.9\n"},
	}}

	result := Normalize(agent.StreamReply(stream))
	if result.Summary != "quick status call" {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
	if result.Sentiment != "positive" || result.SentimentScore != 0.9 {
		t.Fatalf("unexpected sentiment: %q/%v", result.Sentiment, result.SentimentScore)
	}
}

func TestNormalizeTotalityOnGarbage(t *testing.T) {
	inputs := []string{
		"\x00\x01\x02 binary garbage",
		strings.Repeat("}{", 100),
		"```json\n{\"broken\"\n```",
		"random prose with no structure at all",
	}
	for _, input := range inputs {
		result := Normalize(agent.TextReply(input))
		assertInDomain(t, result)
	}
}

func assertInDomain(t *testing.T, r AnalysisResult) {
	t.Helper()
	if r.Summary == "" {
		t.Fatalf("summary must never be empty")
	}
	switch r.Sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		t.Fatalf("sentiment out of domain: %q", r.Sentiment)
	}
	if r.SentimentScore < 0 || r.SentimentScore > 1 {
		t.Fatalf("sentiment score out of domain: %v", r.SentimentScore)
	}
	if r.Intent == "" {
		t.Fatalf("intent must never be empty")
	}
	if r.AgentPerformanceScore < 1 || r.AgentPerformanceScore > 10 {
		t.Fatalf("performance score out of domain: %d", r.AgentPerformanceScore)
	}
	if r.Topics == nil || r.Recommendations == nil {
		t.Fatalf("lists must never be nil")
	}
}
