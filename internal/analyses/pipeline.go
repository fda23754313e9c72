package analyses

import (
	"strings"

	"callcenter-backend/internal/agent"
	"callcenter-backend/internal/shared/metrics"
)

// Normalize converts a raw agent reply into a complete AnalysisResult.
// Total function: every branch ends in a valid result, never an error.
// Absent replies (invocation failure, unconfigured agent) are handled by
// the caller with Mock; this only sees replies that actually arrived.
func Normalize(reply agent.Reply) AnalysisResult {
	text := strings.TrimSpace(Assemble(reply))
	if result, ok := Extract(text); ok {
		metrics.IncStructuredParse()
		return result
	}
	metrics.IncFallbackParse()
	return ParseText(text)
}
