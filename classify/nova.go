package classify

import "github.com/BaSui01/llmtrace/types"

// Nested-output format: no "type" discriminator; each event is an object
// whose single meaningful key names the event kind. The shapes mirror the
// unified transport's, so the mapping is shared with converse.go — only the
// structural guard differs.
func classifyNova(raw map[string]any) []types.Event {
	// An explicit "type" field means this is a message-oriented event that
	// happened to share the wire; never claim it.
	if _, hasType := raw["type"]; hasType {
		return nil
	}
	return classifyBlockEvents(raw)
}

// classifyBlockEvents maps the block-structured event family used by both
// the nested-output vendor and the unified transport.
func classifyBlockEvents(raw map[string]any) []types.Event {
	if delta := obj(raw, "contentBlockDelta"); delta != nil {
		idx := blockIndex(delta, "contentBlockIndex")
		d := obj(delta, "delta")
		if text, ok := d["text"].(string); ok {
			return []types.Event{types.TextDelta{Text: text}}
		}
		if tu := obj(d, "toolUse"); tu != nil {
			return []types.Event{types.ToolUseInputChunk{
				BlockIndex: idx,
				Chunk:      str(tu, "input"),
			}}
		}
		return none
	}

	if start := obj(raw, "contentBlockStart"); start != nil {
		if tu := obj(obj(start, "start"), "toolUse"); tu != nil {
			return []types.Event{types.ToolUseStart{
				ID:         str(tu, "toolUseId"),
				Name:       str(tu, "name"),
				BlockIndex: blockIndex(start, "contentBlockIndex"),
			}}
		}
		return none
	}

	if stop := obj(raw, "messageStop"); stop != nil {
		return []types.Event{types.MessageStop{StopReason: str(stop, "stopReason")}}
	}

	if meta := obj(raw, "metadata"); meta != nil {
		if u := blockUsage(obj(meta, "usage")); !u.Empty() {
			return []types.Event{types.UsageUpdate{Usage: u}}
		}
		return none
	}

	if _, ok := raw["messageStart"]; ok {
		return none
	}
	if _, ok := raw["contentBlockStop"]; ok {
		return none
	}
	return nil
}

func blockUsage(u map[string]any) types.Usage {
	return types.Usage{
		InputTokens:      counter(u, "inputTokens"),
		OutputTokens:     counter(u, "outputTokens"),
		TotalTokens:      counter(u, "totalTokens"),
		CacheReadTokens:  counter(u, "cacheReadInputTokenCount"),
		CacheWriteTokens: counter(u, "cacheWriteInputTokenCount"),
	}
}
