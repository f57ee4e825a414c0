package testutil

// Canned wire fixtures, one JSON line per stream chunk, taken from the
// documented shapes of each vendor's streaming format.

// AnthropicToolCallLines is a minimal message-oriented stream that opens a
// tool call and feeds its arguments in two fragments.
func AnthropicToolCallLines() []string {
	return []string{
		`{"type":"message_start","message":{"usage":{"input_tokens":25}}}`,
		`{"type":"content_block_start","index":0,"content_block":{"type":"tool_use","id":"t1","name":"get_weather"}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"input_json_delta","partial_json":"{\"city\":"}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"input_json_delta","partial_json":"\"NYC\"}"}}`,
		`{"type":"content_block_stop","index":0}`,
		`{"type":"message_delta","delta":{"stop_reason":"tool_use"},"usage":{"output_tokens":17}}`,
		`{"type":"message_stop"}`,
	}
}

// AnthropicTextLines streams plain assistant text.
func AnthropicTextLines() []string {
	return []string{
		`{"type":"message_start","message":{"usage":{"input_tokens":10}}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hello, "}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"world!"}}`,
		`{"type":"message_delta","delta":{"stop_reason":"end_turn"},"usage":{"output_tokens":4}}`,
		`{"type":"message_stop"}`,
	}
}

// NovaTextLines streams nested-output text with trailing metadata usage.
func NovaTextLines() []string {
	return []string{
		`{"messageStart":{"role":"assistant"}}`,
		`{"contentBlockDelta":{"delta":{"text":"Hi "},"contentBlockIndex":0}}`,
		`{"contentBlockDelta":{"delta":{"text":"there"},"contentBlockIndex":0}}`,
		`{"contentBlockStop":{"contentBlockIndex":0}}`,
		`{"messageStop":{"stopReason":"end_turn"}}`,
		`{"metadata":{"usage":{"inputTokens":8,"outputTokens":3,"totalTokens":11}}}`,
	}
}

// ConverseLines streams a unified-transport tool call; the events are
// pre-typed and identical for every model behind the transport.
func ConverseLines() []string {
	return []string{
		`{"messageStart":{"role":"assistant"}}`,
		`{"contentBlockStart":{"start":{"toolUse":{"toolUseId":"c1","name":"lookup"}},"contentBlockIndex":0}}`,
		`{"contentBlockDelta":{"delta":{"toolUse":{"input":"{\"id\":7}"}},"contentBlockIndex":0}}`,
		`{"contentBlockStop":{"contentBlockIndex":0}}`,
		`{"messageStop":{"stopReason":"tool_use"}}`,
		`{"metadata":{"usage":{"inputTokens":14,"outputTokens":9,"totalTokens":23}}}`,
	}
}

// TitanLines streams flat-fields chunks with per-chunk incremental output
// token counts.
func TitanLines() []string {
	return []string{
		`{"outputText":"first ","index":0,"inputTextTokenCount":6,"tokenCount":2}`,
		`{"outputText":"second","index":1,"tokenCount":3,"completionReason":"FINISH"}`,
	}
}

// MetaLines streams single-field generation chunks.
func MetaLines() []string {
	return []string{
		`{"generation":"alpha ","prompt_token_count":4,"generation_token_count":1}`,
		`{"generation":"beta","generation_token_count":2,"stop_reason":"stop"}`,
	}
}
