package analyses

// Sentiment enum values.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Field defaults applied by Validate when a candidate value is missing or
// out of domain.
const (
	DefaultSummary          = "No summary provided"
	DefaultSentiment        = SentimentNeutral
	DefaultSentimentScore   = 0.5
	DefaultIntent           = "general inquiry"
	DefaultPerformanceScore = 5
)

// AnalysisResult is the structured outcome of one call analysis. Every field
// is always present and in domain once it has passed through Validate.
type AnalysisResult struct {
	Summary               string   `json:"summary"`
	Sentiment             string   `json:"sentiment"`
	SentimentScore        float64  `json:"sentiment_score"`
	Intent                string   `json:"intent"`
	Topics                []string `json:"topics"`
	AgentPerformanceScore int      `json:"agent_performance_score"`
	Recommendations       []string `json:"recommendations"`
}
