package classify

import "github.com/BaSui01/llmtrace/types"

// Flat-fields format: one chunk can carry output text, token counts and the
// completion reason all at top level, so classification yields a list.
func classifyTitan(raw map[string]any) []types.Event {
	_, hasText := raw["outputText"]
	metrics := obj(raw, "amazon-bedrock-invocationMetrics")
	_, hasInputCount := num(raw, "inputTextTokenCount")
	if !hasText && metrics == nil && !hasInputCount {
		return nil
	}

	evs := []types.Event{}

	if hasText {
		evs = append(evs, types.TextDelta{Text: str(raw, "outputText")})
	}

	u := types.Usage{
		InputTokens: counter(raw, "inputTextTokenCount"),
		// Per-chunk output count; summed under the incremental policy.
		OutputTokens: counter(raw, "tokenCount"),
	}
	if metrics != nil {
		if in := counter(metrics, "inputTokenCount"); in != nil {
			u.InputTokens = in
		}
		// The metrics block's outputTokenCount duplicates the per-chunk
		// counts already summed; mapping it too would double the total.
	}
	if !u.Empty() {
		evs = append(evs, types.UsageUpdate{Usage: u})
	}

	if reason := str(raw, "completionReason"); reason != "" {
		evs = append(evs, types.MessageStop{StopReason: reason})
	}
	return evs
}
