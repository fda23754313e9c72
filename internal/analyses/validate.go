package analyses

import (
	"math"
	"strconv"
	"strings"
)

// Validate coerces a decoded candidate into a complete AnalysisResult.
// It is total: any input, including nil, yields an in-domain result.
// All field defaulting and clamping lives here; extractors never apply
// defaults themselves.
func Validate(candidate map[string]any) AnalysisResult {
	result := AnalysisResult{
		Summary:               stringField(candidate, "summary", DefaultSummary),
		Sentiment:             stringField(candidate, "sentiment", DefaultSentiment),
		SentimentScore:        floatField(candidate, "sentiment_score", DefaultSentimentScore),
		Intent:                stringField(candidate, "intent", DefaultIntent),
		Topics:                stringSliceField(candidate, "topics"),
		AgentPerformanceScore: intField(candidate, "agent_performance_score", DefaultPerformanceScore),
		Recommendations:       stringSliceField(candidate, "recommendations"),
	}

	result.Sentiment = strings.ToLower(result.Sentiment)
	switch result.Sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		result.Sentiment = DefaultSentiment
	}

	// NaN compares false against both bounds, so test it explicitly.
	if math.IsNaN(result.SentimentScore) || result.SentimentScore < 0 || result.SentimentScore > 1 {
		result.SentimentScore = DefaultSentimentScore
	}
	if result.AgentPerformanceScore < 1 || result.AgentPerformanceScore > 10 {
		result.AgentPerformanceScore = DefaultPerformanceScore
	}

	return result
}

func stringField(candidate map[string]any, key, fallback string) string {
	v, ok := candidate[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

func floatField(candidate map[string]any, key string, fallback float64) float64 {
	v, ok := candidate[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return fallback
}

func intField(candidate map[string]any, key string, fallback int) int {
	v, ok := candidate[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return int(math.Trunc(n))
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return fallback
}

func stringSliceField(candidate map[string]any, key string) []string {
	v, ok := candidate[key]
	if !ok {
		return []string{}
	}
	switch seq := v.(type) {
	case []string:
		out := make([]string, len(seq))
		copy(out, seq)
		return out
	case []any:
		out := make([]string, 0, len(seq))
		for _, item := range seq {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}
