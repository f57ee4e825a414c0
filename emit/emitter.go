package emit

import (
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/BaSui01/llmtrace/accumulate"
	"github.com/BaSui01/llmtrace/extract"
	"github.com/BaSui01/llmtrace/semconv"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config controls what the emitter records.
type Config struct {
	// RecordContent gates generated text. Tool call ids, names and usage
	// counters are always recorded; message content only when enabled.
	RecordContent bool

	// EstimateTokens enables local output-token estimation when the vendor
	// reported no output usage.
	EstimateTokens bool

	Logger *zap.Logger
}

// Emitter flattens final accumulator state onto a Sink.
type Emitter struct {
	cfg       Config
	logger    *zap.Logger
	estimator Estimator
}

func NewEmitter(cfg Config) *Emitter {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{cfg: cfg, logger: logger}
}

// usage keys in emission order.
var usageKeys = []string{
	semconv.AttrUsageInputTokens,
	semconv.AttrUsageOutputTokens,
	semconv.AttrUsageTotalTokens,
	semconv.AttrUsageCacheReadTokens,
	semconv.AttrUsageCacheWriteTokens,
}

// Emit writes the canonical attribute set for st to sink and ends it.
// streamErr is the upstream terminal error, nil on clean completion; the
// accumulated partial state is emitted either way.
func (e *Emitter) Emit(st *accumulate.State, sink Sink, streamErr error) {
	if text := st.OutputText(); text != "" && e.cfg.RecordContent {
		sink.SetAttribute(semconv.AttrOutputContent, text)
	}

	for i, call := range st.ToolCalls() {
		sink.SetAttribute(semconv.ToolCallID(i), call.ID)
		sink.SetAttribute(semconv.ToolCallName(i), call.Name)
		if call.Input == nil {
			continue
		}
		raw, err := json.MarshalToString(call.Input)
		if err != nil {
			e.logger.Warn("marshal tool call arguments",
				zap.String("tool_call_id", call.ID), zap.Error(err))
			continue
		}
		sink.SetAttribute(semconv.ToolCallArguments(i), raw)
	}

	usage := extract.NormalizeUsage(st.Usage())
	if _, reported := usage[semconv.AttrUsageOutputTokens]; !reported && e.cfg.EstimateTokens {
		if text := st.OutputText(); text != "" {
			if n, ok := e.estimator.Count(text); ok {
				usage[semconv.AttrUsageOutputTokens] = n
				sink.SetAttribute(semconv.AttrUsageEstimated, true)
			}
		}
	}
	for _, key := range usageKeys {
		if n, ok := usage[key]; ok {
			sink.SetAttribute(key, n)
		}
	}

	if reason := st.StopReason(); reason != "" {
		sink.SetAttribute(semconv.AttrResponseFinishReason, reason)
	}
	if streamErr != nil {
		sink.SetAttribute(semconv.AttrStreamError, streamErr.Error())
	}
	sink.End(streamErr)
}
