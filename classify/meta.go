package classify

import "github.com/BaSui01/llmtrace/types"

// Single-field format: a chunk is discriminated by the presence of a
// "generation" string, with cumulative token counters alongside.
func classifyMeta(raw map[string]any) []types.Event {
	gen, hasGen := raw["generation"].(string)
	if !hasGen {
		return nil
	}

	evs := []types.Event{types.TextDelta{Text: gen}}

	u := types.Usage{
		InputTokens:  counter(raw, "prompt_token_count"),
		OutputTokens: counter(raw, "generation_token_count"),
	}
	if !u.Empty() {
		evs = append(evs, types.UsageUpdate{Usage: u})
	}

	if reason := str(raw, "stop_reason"); reason != "" {
		evs = append(evs, types.MessageStop{StopReason: reason})
	}
	return evs
}
