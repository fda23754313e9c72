package analyses

import "fmt"

// Mock produces the deterministic placeholder result served when the agent
// is unconfigured, invocation fails, or no reply text arrives. Parameterized
// only by the uploaded file's label.
func Mock(fileLabel string) AnalysisResult {
	if fileLabel == "" {
		fileLabel = "unknown_file"
	}
	return AnalysisResult{
		Summary: fmt.Sprintf("Mock analysis for %s. Customer called regarding a service inquiry "+
			"and expressed mixed feelings about the resolution provided by the support agent.", fileLabel),
		Sentiment:             SentimentNeutral,
		SentimentScore:        0.6,
		Intent:                "service inquiry",
		Topics:                []string{"account status", "service features", "billing inquiry"},
		AgentPerformanceScore: 7,
		Recommendations: []string{
			"Provide more detailed explanations of service features",
			"Follow up proactively on billing questions",
			"Use more empathetic language during problem resolution",
		},
	}
}
