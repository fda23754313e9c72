package analyses

import (
	"encoding/json"
	"regexp"
	"strings"

	"callcenter-backend/internal/shared/telemetry"
)

var fencedJSONPattern = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")

// Phrases that indicate the agent tried to delegate to a tool instead of
// answering directly. Fixed list, matched as lower-case substrings.
var toolAttemptPhrases = []string{
	"function call",
	"speech_to_text",
	"analyze_conversation",
	"i'll need to use",
}

// Extract scans assembled reply text for a structured analysis payload.
// Priority order: fenced json block, then bare brace-delimited objects in
// order of appearance, then the tool-attempt phrase check. Returns false
// only when none of the strategies produce a result, deferring to ParseText.
func Extract(text string) (AnalysisResult, bool) {
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		var candidate map[string]any
		if err := json.Unmarshal([]byte(m[1]), &candidate); err == nil {
			return Validate(candidate), true
		}
		telemetry.Warn("extract.fenced_block_undecodable", map[string]any{
			"snippet": snippet(m[1]),
		})
	}

	for _, raw := range balancedObjects(text) {
		var candidate map[string]any
		if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
			continue
		}
		_, hasName := candidate["name"]
		_, hasArgs := candidate["arguments"]
		if hasName && hasArgs {
			// Tool call artifact, not an analysis result.
			continue
		}
		if hasAnyKey(candidate, "summary", "sentiment", "intent") {
			return Validate(candidate), true
		}
	}

	lower := strings.ToLower(text)
	for _, phrase := range toolAttemptPhrases {
		if strings.Contains(lower, phrase) {
			telemetry.Warn("extract.tool_attempt_detected", map[string]any{"phrase": phrase})
			return toolAttemptResult(), true
		}
	}

	return AnalysisResult{}, false
}

// balancedObjects returns every top-level brace-balanced substring in order
// of appearance, using a depth counter over raw characters. Braces inside
// string literals are counted too; that imprecision is intentional and kept.
func balancedObjects(text string) []string {
	var out []string
	depth := 0
	start := -1
	for i, r := range text {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, text[start:i+1])
				start = -1
			}
		}
	}
	return out
}

func hasAnyKey(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// toolAttemptResult is the diagnostic placeholder returned when the agent
// tried to call tools instead of answering. Distinct from the mock result.
func toolAttemptResult() AnalysisResult {
	return AnalysisResult{
		Summary: "The agent attempted to use function calls to analyze the audio file, " +
			"but direct analysis was not provided. This might indicate the agent's " +
			"action groups are not properly configured.",
		Sentiment:             SentimentNeutral,
		SentimentScore:        0.5,
		Intent:                "system configuration issue",
		Topics:                []string{"function call error", "configuration issue"},
		AgentPerformanceScore: 3,
		Recommendations: []string{
			"Check if agent action groups are properly configured",
			"Ensure speech-to-text and analysis functions are working",
			"Consider providing pre-transcribed text for analysis",
		},
	}
}

func snippet(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
