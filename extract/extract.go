package extract

import (
	"github.com/BaSui01/llmtrace/semconv"
	"github.com/BaSui01/llmtrace/types"
)

// RequestAttributes pulls the sampling parameters out of a decoded request
// body. Unknown vendors and absent fields yield an empty map, never an
// error.
func RequestAttributes(vendor types.Vendor, body map[string]any) map[string]any {
	attrs := map[string]any{}
	if body == nil {
		return attrs
	}

	switch vendor {
	case types.VendorAnthropic:
		putNum(attrs, semconv.AttrRequestMaxTokens, body, "max_tokens", "max_tokens_to_sample")
		putNum(attrs, semconv.AttrRequestTemperature, body, "temperature")
		putNum(attrs, semconv.AttrRequestTopP, body, "top_p")
		putStrings(attrs, semconv.AttrRequestStopSequences, body, "stop_sequences")

	case types.VendorNova, types.VendorConverse:
		cfg, _ := body["inferenceConfig"].(map[string]any)
		if cfg == nil {
			return attrs
		}
		putNum(attrs, semconv.AttrRequestMaxTokens, cfg, "maxTokens", "max_new_tokens")
		putNum(attrs, semconv.AttrRequestTemperature, cfg, "temperature")
		putNum(attrs, semconv.AttrRequestTopP, cfg, "topP")
		putStrings(attrs, semconv.AttrRequestStopSequences, cfg, "stopSequences")

	case types.VendorTitan:
		cfg, _ := body["textGenerationConfig"].(map[string]any)
		if cfg == nil {
			return attrs
		}
		putNum(attrs, semconv.AttrRequestMaxTokens, cfg, "maxTokenCount")
		putNum(attrs, semconv.AttrRequestTemperature, cfg, "temperature")
		putNum(attrs, semconv.AttrRequestTopP, cfg, "topP")
		putStrings(attrs, semconv.AttrRequestStopSequences, cfg, "stopSequences")

	case types.VendorMeta:
		putNum(attrs, semconv.AttrRequestMaxTokens, body, "max_gen_len")
		putNum(attrs, semconv.AttrRequestTemperature, body, "temperature")
		putNum(attrs, semconv.AttrRequestTopP, body, "top_p")
	}
	return attrs
}

// ResponseAttributes maps a decoded non-streaming response body to the
// canonical attribute set. recordContent gates whether generated text is
// included.
func ResponseAttributes(vendor types.Vendor, body map[string]any, recordContent bool) map[string]any {
	attrs := map[string]any{}
	if body == nil {
		return attrs
	}

	switch vendor {
	case types.VendorAnthropic:
		putStr(attrs, semconv.AttrResponseID, body, "id")
		putStr(attrs, semconv.AttrResponseModel, body, "model")
		putStr(attrs, semconv.AttrResponseFinishReason, body, "stop_reason")
		if recordContent {
			attrs[semconv.AttrOutputContent] = anthropicText(body)
		}
		mergeInto(attrs, NormalizeUsage(anthropicUsage(body)))

	case types.VendorNova, types.VendorConverse:
		putStr(attrs, semconv.AttrResponseFinishReason, body, "stopReason")
		if recordContent {
			attrs[semconv.AttrOutputContent] = novaText(body)
		}
		mergeInto(attrs, NormalizeUsage(novaUsage(body)))

	case types.VendorTitan:
		u := types.Usage{}
		if n, ok := asInt64(body["inputTextTokenCount"]); ok {
			u.InputTokens = &n
		}
		var text string
		var outTokens int64
		results, _ := body["results"].([]any)
		for _, r := range results {
			rm, _ := r.(map[string]any)
			if rm == nil {
				continue
			}
			if s, ok := rm["outputText"].(string); ok {
				text += s
			}
			if s, ok := rm["completionReason"].(string); ok && s != "" {
				attrs[semconv.AttrResponseFinishReason] = s
			}
			if n, ok := asInt64(rm["tokenCount"]); ok {
				outTokens += n
			}
		}
		if outTokens > 0 {
			u.OutputTokens = &outTokens
		}
		if recordContent {
			attrs[semconv.AttrOutputContent] = text
		}
		mergeInto(attrs, NormalizeUsage(u))

	case types.VendorMeta:
		putStr(attrs, semconv.AttrResponseFinishReason, body, "stop_reason")
		if recordContent {
			if s, ok := body["generation"].(string); ok {
				attrs[semconv.AttrOutputContent] = s
			}
		}
		u := types.Usage{}
		if n, ok := asInt64(body["prompt_token_count"]); ok {
			u.InputTokens = &n
		}
		if n, ok := asInt64(body["generation_token_count"]); ok {
			u.OutputTokens = &n
		}
		mergeInto(attrs, NormalizeUsage(u))
	}
	return attrs
}

// NormalizeUsage converts reported token counts into canonical usage keys.
// Fields the vendor never reported stay absent; a total is derived from
// input+output when both are present but no total was reported.
func NormalizeUsage(u types.Usage) map[string]int64 {
	out := map[string]int64{}
	if u.InputTokens != nil {
		out[semconv.AttrUsageInputTokens] = *u.InputTokens
	}
	if u.OutputTokens != nil {
		out[semconv.AttrUsageOutputTokens] = *u.OutputTokens
	}
	switch {
	case u.TotalTokens != nil:
		out[semconv.AttrUsageTotalTokens] = *u.TotalTokens
	case u.InputTokens != nil && u.OutputTokens != nil:
		out[semconv.AttrUsageTotalTokens] = *u.InputTokens + *u.OutputTokens
	}
	if u.CacheReadTokens != nil {
		out[semconv.AttrUsageCacheReadTokens] = *u.CacheReadTokens
	}
	if u.CacheWriteTokens != nil {
		out[semconv.AttrUsageCacheWriteTokens] = *u.CacheWriteTokens
	}
	return out
}

func anthropicText(body map[string]any) string {
	var text string
	content, _ := body["content"].([]any)
	for _, c := range content {
		cm, _ := c.(map[string]any)
		if cm == nil {
			continue
		}
		if t, _ := cm["type"].(string); t == "text" {
			if s, ok := cm["text"].(string); ok {
				text += s
			}
		}
	}
	return text
}

func anthropicUsage(body map[string]any) types.Usage {
	u := types.Usage{}
	usage, _ := body["usage"].(map[string]any)
	if usage == nil {
		return u
	}
	if n, ok := asInt64(usage["input_tokens"]); ok {
		u.InputTokens = &n
	}
	if n, ok := asInt64(usage["output_tokens"]); ok {
		u.OutputTokens = &n
	}
	if n, ok := asInt64(usage["cache_read_input_tokens"]); ok {
		u.CacheReadTokens = &n
	}
	if n, ok := asInt64(usage["cache_creation_input_tokens"]); ok {
		u.CacheWriteTokens = &n
	}
	return u
}

func novaText(body map[string]any) string {
	var text string
	output, _ := body["output"].(map[string]any)
	message, _ := output["message"].(map[string]any)
	content, _ := message["content"].([]any)
	for _, c := range content {
		cm, _ := c.(map[string]any)
		if s, ok := cm["text"].(string); ok {
			text += s
		}
	}
	return text
}

func novaUsage(body map[string]any) types.Usage {
	u := types.Usage{}
	usage, _ := body["usage"].(map[string]any)
	if usage == nil {
		return u
	}
	if n, ok := asInt64(usage["inputTokens"]); ok {
		u.InputTokens = &n
	}
	if n, ok := asInt64(usage["outputTokens"]); ok {
		u.OutputTokens = &n
	}
	if n, ok := asInt64(usage["totalTokens"]); ok {
		u.TotalTokens = &n
	}
	if n, ok := asInt64(usage["cacheReadInputTokenCount"]); ok {
		u.CacheReadTokens = &n
	}
	if n, ok := asInt64(usage["cacheWriteInputTokenCount"]); ok {
		u.CacheWriteTokens = &n
	}
	return u
}

func mergeInto(attrs map[string]any, usage map[string]int64) {
	for k, v := range usage {
		attrs[k] = v
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

func putStr(attrs map[string]any, key string, body map[string]any, field string) {
	if s, ok := body[field].(string); ok && s != "" {
		attrs[key] = s
	}
}

func putNum(attrs map[string]any, key string, body map[string]any, fields ...string) {
	for _, f := range fields {
		switch n := body[f].(type) {
		case float64:
			attrs[key] = n
			return
		case int64:
			attrs[key] = n
			return
		case int:
			attrs[key] = n
			return
		}
	}
}

func putStrings(attrs map[string]any, key string, body map[string]any, field string) {
	raw, _ := body[field].([]any)
	if len(raw) == 0 {
		return
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		attrs[key] = out
	}
}
