package classify

import "github.com/BaSui01/llmtrace/types"

// Message-oriented format: every event is discriminated by an explicit
// "type" field with a known literal value.
func classifyAnthropic(raw map[string]any) []types.Event {
	switch str(raw, "type") {
	case "message_start":
		if u := anthropicUsage(obj(obj(raw, "message"), "usage")); !u.Empty() {
			return []types.Event{types.UsageUpdate{Usage: u}}
		}
		return none

	case "content_block_start":
		block := obj(raw, "content_block")
		if str(block, "type") == "tool_use" {
			return []types.Event{types.ToolUseStart{
				ID:         str(block, "id"),
				Name:       str(block, "name"),
				BlockIndex: blockIndex(raw, "index"),
			}}
		}
		return none

	case "content_block_delta":
		delta := obj(raw, "delta")
		switch str(delta, "type") {
		case "text_delta":
			return []types.Event{types.TextDelta{Text: str(delta, "text")}}
		case "input_json_delta":
			return []types.Event{types.ToolUseInputChunk{
				BlockIndex: blockIndex(raw, "index"),
				Chunk:      str(delta, "partial_json"),
			}}
		}
		// thinking and signature deltas carry nothing accumulable
		return none

	case "message_delta":
		var evs []types.Event
		if u := anthropicUsage(obj(raw, "usage")); !u.Empty() {
			evs = append(evs, types.UsageUpdate{Usage: u})
		}
		if reason := str(obj(raw, "delta"), "stop_reason"); reason != "" {
			evs = append(evs, types.MessageStop{StopReason: reason})
		}
		if evs == nil {
			return none
		}
		return evs

	case "message_stop":
		return []types.Event{types.MessageStop{}}

	case "content_block_stop", "ping":
		return none
	}
	return nil
}

func anthropicUsage(u map[string]any) types.Usage {
	return types.Usage{
		InputTokens:      counter(u, "input_tokens"),
		OutputTokens:     counter(u, "output_tokens"),
		CacheReadTokens:  counter(u, "cache_read_input_tokens"),
		CacheWriteTokens: counter(u, "cache_creation_input_tokens"),
	}
}
