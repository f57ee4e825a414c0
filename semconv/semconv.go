// Package semconv defines the attribute key names shared by the streaming
// and non-streaming extraction paths. Keys follow the OpenTelemetry GenAI
// semantic conventions; anything Bedrock-specific that the conventions do
// not cover sits under the aws.bedrock.* prefix.
package semconv

import "strconv"

// --- Operation Attributes ---

const (
	// AttrSystem is the inference vendor behind the model id
	// (e.g. "anthropic", "amazon.nova").
	AttrSystem = "gen_ai.system"

	// AttrOperationName is the instrumented operation ("chat" or
	// "invoke_model").
	AttrOperationName = "gen_ai.operation.name"

	// AttrInvocationID uniquely identifies one instrumented call.
	AttrInvocationID = "aws.bedrock.invocation_id"
)

// --- Request Attributes ---

const (
	AttrRequestModel         = "gen_ai.request.model"
	AttrRequestMaxTokens     = "gen_ai.request.max_tokens" // #nosec G101 -- LLM tokens, not a credential
	AttrRequestTemperature   = "gen_ai.request.temperature"
	AttrRequestTopP          = "gen_ai.request.top_p"
	AttrRequestStopSequences = "gen_ai.request.stop_sequences"
)

// --- Response Attributes ---

const (
	AttrResponseID           = "gen_ai.response.id"
	AttrResponseModel        = "gen_ai.response.model"
	AttrResponseFinishReason = "gen_ai.response.finish_reasons"

	// AttrOutputContent holds the accumulated assistant text. Only set
	// when content recording is enabled.
	AttrOutputContent = "gen_ai.completion"
)

// --- Usage Attributes ---

const (
	AttrUsageInputTokens  = "gen_ai.usage.input_tokens"  // #nosec G101
	AttrUsageOutputTokens = "gen_ai.usage.output_tokens" // #nosec G101
	AttrUsageTotalTokens  = "gen_ai.usage.total_tokens"  // #nosec G101

	AttrUsageCacheReadTokens  = "gen_ai.usage.cache_read_input_tokens"     // #nosec G101
	AttrUsageCacheWriteTokens = "gen_ai.usage.cache_creation_input_tokens" // #nosec G101

	// AttrUsageEstimated marks token counts derived locally rather than
	// reported by the vendor.
	AttrUsageEstimated = "gen_ai.usage.is_estimated"
)

// --- Streaming Attributes ---

const (
	// AttrStreamError carries the terminal error message when a stream
	// failed mid-flight and the span records partial state.
	AttrStreamError = "aws.bedrock.stream_error"
)

const toolCallPrefix = "gen_ai.completion.tool_calls."

// ToolCallID returns the indexed key for the i-th tool call's id.
func ToolCallID(i int) string { return toolCallPrefix + strconv.Itoa(i) + ".id" }

// ToolCallName returns the indexed key for the i-th tool call's name.
func ToolCallName(i int) string { return toolCallPrefix + strconv.Itoa(i) + ".name" }

// ToolCallArguments returns the indexed key for the i-th tool call's
// serialized arguments object.
func ToolCallArguments(i int) string { return toolCallPrefix + strconv.Itoa(i) + ".arguments" }
