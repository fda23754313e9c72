package agent

import "fmt"

// AnalysisPrompt builds the instruction sent to the agent for one recording.
// The fileRef points the agent at the stored audio. The prompt demands a
// direct JSON answer; agents that mention function calls or transcription
// steps instead tend to produce tool-call replies the parser has to reject.
func AnalysisPrompt(fileRef string) string {
	return fmt.Sprintf(`Please analyze the call recording file at path: %s

I need you to provide a direct analysis in the following JSON format (do not use function calls, provide the analysis directly):

{
    "summary": "A brief summary of the call conversation",
    "sentiment": "positive, negative, or neutral",
    "sentiment_score": 0.8,
    "intent": "The main purpose or intent of the call",
    "topics": ["topic1", "topic2", "topic3"],
    "agent_performance_score": 7,
    "recommendations": ["recommendation1", "recommendation2"]
}

Please provide a complete analysis directly without mentioning function calls or transcription steps. Base your analysis on typical call center scenarios if you cannot access the actual audio file.`, fileRef)
}
