package analyses

import (
	"regexp"
	"strconv"
	"strings"
)

// Label keyword sets for the line parser. Matched as lower-case substrings,
// checked in declaration order within a line.
var (
	summaryLabels         = []string{"summary:", "summary is:", "call summary:"}
	sentimentLabels       = []string{"sentiment:", "sentiment is:", "sentiment analysis:"}
	intentLabels          = []string{"intent:", "intent is:", "purpose:", "customer intent:"}
	topicsLabels          = []string{"topics:", "topics discussed:", "key topics:"}
	performanceLabels     = []string{"performance score:", "agent performance:", "score:"}
	recommendationsLabels = []string{"recommendations:", "recommendation:", "suggestions:"}
)

var (
	decimalPattern    = regexp.MustCompile(`(\d*\.?\d+)`)
	integerPattern    = regexp.MustCompile(`(\d+)`)
	numberedListMark  = regexp.MustCompile(`^\d+\.\s+`)
	fallbackSummary   = "Analysis completed. Please check the raw response for details."
	bulletListMarkers = []string{"- ", "• ", "* "}
)

// ParseText recovers an AnalysisResult from free-form reply text, line by
// line. It always succeeds: unrecognized lines are ignored and anything
// left unset keeps its default.
func ParseText(text string) AnalysisResult {
	result := AnalysisResult{
		Sentiment:             DefaultSentiment,
		SentimentScore:        DefaultSentimentScore,
		Intent:                DefaultIntent,
		Topics:                []string{},
		AgentPerformanceScore: DefaultPerformanceScore,
		Recommendations:       []string{},
	}

	section := ""
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case containsAny(lower, summaryLabels):
			section = "summary"
			if rest, ok := colonRemainder(line); ok {
				result.Summary = rest
			}
		case containsAny(lower, sentimentLabels):
			section = "sentiment"
			rest, _ := colonRemainder(line)
			if tokens := strings.Fields(strings.ToLower(rest)); len(tokens) > 0 {
				switch tokens[0] {
				case SentimentPositive, SentimentNegative, SentimentNeutral:
					result.Sentiment = tokens[0]
				}
			}
			if m := decimalPattern.FindString(rest); m != "" {
				if score, err := strconv.ParseFloat(m, 64); err == nil {
					switch {
					case score >= 0 && score <= 1:
						result.SentimentScore = score
					case score > 1 && score <= 10:
						result.SentimentScore = score / 10
					}
					// Values beyond 10 are discarded; keep the previous score.
				}
			}
		case containsAny(lower, intentLabels):
			section = "intent"
			if rest, ok := colonRemainder(line); ok {
				result.Intent = rest
			}
		case containsAny(lower, topicsLabels):
			section = "topics"
		case containsAny(lower, performanceLabels):
			rest, _ := colonRemainder(line)
			if m := integerPattern.FindString(rest); m != "" {
				if score, err := strconv.Atoi(m); err == nil && score >= 1 && score <= 10 {
					result.AgentPerformanceScore = score
				}
			}
		case containsAny(lower, recommendationsLabels):
			section = "recommendations"
		default:
			item, ok := listItem(line)
			if !ok || item == "" {
				continue
			}
			switch section {
			case "topics":
				result.Topics = appendUnique(result.Topics, item)
			case "recommendations":
				result.Recommendations = appendUnique(result.Recommendations, item)
			}
		}
	}

	if result.Summary == "" {
		result.Summary = fallbackSummary
	}
	return result
}

func containsAny(line string, labels []string) bool {
	for _, label := range labels {
		if strings.Contains(line, label) {
			return true
		}
	}
	return false
}

// colonRemainder returns the trimmed text after the first colon.
func colonRemainder(line string) (string, bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(line[idx+1:]), true
}

// listItem strips a bullet or numbered-list marker from the line.
func listItem(line string) (string, bool) {
	for _, marker := range bulletListMarkers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	if loc := numberedListMark.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:]), true
	}
	return "", false
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
