package llmtrace_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/BaSui01/llmtrace"
	"github.com/BaSui01/llmtrace/config"
	"github.com/BaSui01/llmtrace/emit"
	"github.com/BaSui01/llmtrace/internal/metrics"
	"github.com/BaSui01/llmtrace/semconv"
	"github.com/BaSui01/llmtrace/testutil"
	"github.com/BaSui01/llmtrace/types"
)

var namespaceSeq uint64

// Each Instrumentor needs its own metrics namespace; promauto registers on
// the process-global registry.
func newInstrumentor(t *testing.T, mutate func(*config.Config), opts ...llmtrace.Option) (*llmtrace.Instrumentor, *sinkRecorder) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Instrumentation.RecordContent = true
	if mutate != nil {
		mutate(cfg)
	}

	rec := &sinkRecorder{}
	ns := fmt.Sprintf("llmtrace_test_%d", atomic.AddUint64(&namespaceSeq, 1))
	opts = append([]llmtrace.Option{
		llmtrace.WithLogger(zaptest.NewLogger(t)),
		llmtrace.WithCollector(metrics.NewCollector(ns, zaptest.NewLogger(t))),
		llmtrace.WithSinkFactory(rec.factory),
	}, opts...)

	in, err := llmtrace.New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = in.Close(ctx)
	})
	return in, rec
}

type sinkRecorder struct {
	mu    sync.Mutex
	sinks []*testutil.CaptureSink
}

func (r *sinkRecorder) factory(ctx context.Context, operation, modelID string, vendor types.Vendor) emit.Sink {
	r.mu.Lock()
	defer r.mu.Unlock()
	sink := testutil.NewCaptureSink()
	sink.SetAttribute(semconv.AttrOperationName, operation)
	sink.SetAttribute(semconv.AttrSystem, vendor.String())
	sink.SetAttribute(semconv.AttrRequestModel, modelID)
	r.sinks = append(r.sinks, sink)
	return sink
}

func (r *sinkRecorder) last(t *testing.T) *testutil.CaptureSink {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.sinks)
	return r.sinks[len(r.sinks)-1]
}

func drain(t *testing.T, ch <-chan types.RawItem) []types.RawItem {
	t.Helper()
	var got []types.RawItem
	timeout := time.After(5 * time.Second)
	for {
		select {
		case it, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, it)
		case <-timeout:
			t.Fatal("drain timed out")
		}
	}
}

func closeAndWait(t *testing.T, in *llmtrace.Instrumentor) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, in.Close(ctx))
}

func TestStreamAnthropicToolCall(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	lines := testutil.AnthropicToolCallLines()
	caller := in.Stream(context.Background(), "anthropic.claude-sonnet-4", testutil.SourceFromJSON(lines...))

	got := drain(t, caller)
	assert.Len(t, got, len(lines))
	closeAndWait(t, in)

	sink := rec.last(t)
	assert.Equal(t, "t1", sink.Attr(semconv.ToolCallID(0)))
	assert.Equal(t, "get_weather", sink.Attr(semconv.ToolCallName(0)))
	assert.JSONEq(t, `{"city":"NYC"}`, sink.Attr(semconv.ToolCallArguments(0)).(string))
	assert.False(t, sink.Has(semconv.AttrOutputContent), "tool-only stream has no text")
	assert.Equal(t, int64(25), sink.Attr(semconv.AttrUsageInputTokens))
	assert.Equal(t, int64(17), sink.Attr(semconv.AttrUsageOutputTokens))
	assert.Equal(t, "tool_use", sink.Attr(semconv.AttrResponseFinishReason))

	ended, err := sink.Ended()
	require.True(t, ended)
	assert.NoError(t, err)
}

func TestStreamTextVendors(t *testing.T) {
	tests := []struct {
		name     string
		modelID  string
		lines    []string
		wantText string
		wantStop string
	}{
		{"anthropic", "anthropic.claude-sonnet-4", testutil.AnthropicTextLines(), "Hello, world!", "end_turn"},
		{"nova", "amazon.nova-pro-v1:0", testutil.NovaTextLines(), "Hi there", "end_turn"},
		{"titan", "amazon.titan-text-express-v1", testutil.TitanLines(), "first second", "FINISH"},
		{"meta", "meta.llama3-70b-instruct-v1:0", testutil.MetaLines(), "alpha beta", "stop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, rec := newInstrumentor(t, nil)

			caller := in.Stream(context.Background(), tt.modelID, testutil.SourceFromJSON(tt.lines...))
			drain(t, caller)
			closeAndWait(t, in)

			sink := rec.last(t)
			assert.Equal(t, tt.wantText, sink.Attr(semconv.AttrOutputContent))
			assert.Equal(t, tt.wantStop, sink.Attr(semconv.AttrResponseFinishReason))
		})
	}
}

func TestStreamTitanSumsIncrementalOutputTokens(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	caller := in.Stream(context.Background(), "amazon.titan-text-express-v1",
		testutil.SourceFromJSON(testutil.TitanLines()...))
	drain(t, caller)
	closeAndWait(t, in)

	sink := rec.last(t)
	assert.Equal(t, int64(6), sink.Attr(semconv.AttrUsageInputTokens))
	assert.Equal(t, int64(5), sink.Attr(semconv.AttrUsageOutputTokens))
}

func TestStreamConverseVendorOverride(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	// The unified transport serves any model id; the wire format is pinned
	// per call instead of derived from the id.
	lines := testutil.ConverseLines()
	caller := in.Stream(context.Background(), "anthropic.claude-sonnet-4",
		testutil.SourceFromJSON(lines...), llmtrace.WithVendor(types.VendorConverse))

	got := drain(t, caller)
	assert.Len(t, got, len(lines))
	closeAndWait(t, in)

	sink := rec.last(t)
	assert.Equal(t, "converse", sink.Attr(semconv.AttrSystem))
	assert.Equal(t, "c1", sink.Attr(semconv.ToolCallID(0)))
	assert.Equal(t, "lookup", sink.Attr(semconv.ToolCallName(0)))
	assert.JSONEq(t, `{"id":7}`, sink.Attr(semconv.ToolCallArguments(0)).(string))
	assert.Equal(t, "tool_use", sink.Attr(semconv.AttrResponseFinishReason))
	assert.Equal(t, int64(23), sink.Attr(semconv.AttrUsageTotalTokens))
}

func TestStreamErrorStillEmitsPartialState(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	boom := errors.New("connection reset")
	upstream := testutil.SourceWithError(boom,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"partial "}}`,
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"answer"}}`,
	)

	caller := in.Stream(context.Background(), "anthropic.claude-sonnet-4", upstream)
	got := drain(t, caller)

	// Caller sees both items plus the in-band terminal error.
	require.Len(t, got, 3)
	require.True(t, got[2].Terminal())
	assert.Same(t, boom, got[2].Err)

	closeAndWait(t, in)

	sink := rec.last(t)
	assert.Equal(t, "partial answer", sink.Attr(semconv.AttrOutputContent))
	assert.Equal(t, "connection reset", sink.Attr(semconv.AttrStreamError))

	ended, err := sink.Ended()
	require.True(t, ended)
	assert.Same(t, boom, err)
}

func TestStreamCallerNotBlockedByUnconsumedObserver(t *testing.T) {
	in, _ := newInstrumentor(t, nil)

	// 200 items, caller drains them all before Close waits on the
	// observation task.
	items := make([]types.RawItem, 200)
	for i := range items {
		items[i] = testutil.DecodedItem(`{"type":"ping"}`)
	}

	caller := in.Stream(context.Background(), "anthropic.claude-sonnet-4", testutil.SourceFromItems(items...))
	got := drain(t, caller)
	assert.Len(t, got, 200)
	closeAndWait(t, in)
}

// trippingSink records attributes until tripKey, then panics. Stands in for
// a faulty user-supplied sink behind WithSinkFactory.
type trippingSink struct {
	*testutil.CaptureSink
	tripKey string
}

func (s *trippingSink) SetAttribute(key string, value any) {
	if key == s.tripKey {
		panic("sink rejected attribute")
	}
	s.CaptureSink.SetAttribute(key, value)
}

func TestStreamPanickingSinkDoesNotAffectCaller(t *testing.T) {
	sink := &trippingSink{
		CaptureSink: testutil.NewCaptureSink(),
		tripKey:     semconv.AttrResponseFinishReason,
	}
	in, _ := newInstrumentor(t, nil, llmtrace.WithSinkFactory(
		func(ctx context.Context, operation, modelID string, vendor types.Vendor) emit.Sink {
			return sink
		}))

	lines := testutil.AnthropicTextLines()
	caller := in.Stream(context.Background(), "anthropic.claude-sonnet-4", testutil.SourceFromJSON(lines...))

	got := drain(t, caller)
	assert.Len(t, got, len(lines))
	closeAndWait(t, in)

	// Attributes up to the faulty key were still recorded.
	assert.Equal(t, "Hello, world!", sink.Attr(semconv.AttrOutputContent))
	ended, _ := sink.Ended()
	assert.False(t, ended, "the panic interrupted emission before End")
}

func TestStreamFramedItems(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	// One framed item carrying two newline-separated chunks plus noise.
	framed := testutil.FramedItem(
		`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"A"}}` + "\n" +
			"not json at all\n" +
			`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"B"}}`)

	caller := in.Stream(context.Background(), "anthropic.claude-sonnet-4", testutil.SourceFromItems(framed))
	drain(t, caller)
	closeAndWait(t, in)

	assert.Equal(t, "AB", rec.last(t).Attr(semconv.AttrOutputContent))
}

func TestStreamDisabledPassesThrough(t *testing.T) {
	in, rec := newInstrumentor(t, func(cfg *config.Config) {
		cfg.Instrumentation.Enabled = false
	})

	upstream := testutil.SourceFromJSON(testutil.AnthropicTextLines()...)
	caller := in.Stream(context.Background(), "anthropic.claude-sonnet-4", upstream)

	// Same channel, no sink opened.
	assert.Equal(t, upstream, caller)
	drain(t, caller)
	closeAndWait(t, in)
	assert.Empty(t, rec.sinks)
}

func TestStreamUnknownVendorPassesThrough(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	upstream := testutil.SourceFromJSON(`{"whatever":1}`)
	caller := in.Stream(context.Background(), "cohere.command-r-v1:0", upstream)

	assert.Equal(t, upstream, caller)
	drain(t, caller)
	closeAndWait(t, in)
	assert.Empty(t, rec.sinks)
}

func TestInvocationRecordsRequestAndResponse(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	request := map[string]any{
		"max_tokens":  float64(512),
		"temperature": 0.3,
	}
	response := map[string]any{
		"id":          "msg_9",
		"stop_reason": "end_turn",
		"content":     []any{map[string]any{"type": "text", "text": "done"}},
		"usage":       map[string]any{"input_tokens": float64(3), "output_tokens": float64(1)},
	}

	in.Invocation(context.Background(), "anthropic.claude-sonnet-4", request, response, nil)
	closeAndWait(t, in)

	sink := rec.last(t)
	assert.Equal(t, "invoke_model", sink.Attr(semconv.AttrOperationName))
	assert.Equal(t, float64(512), sink.Attr(semconv.AttrRequestMaxTokens))
	assert.Equal(t, "done", sink.Attr(semconv.AttrOutputContent))
	assert.Equal(t, "end_turn", sink.Attr(semconv.AttrResponseFinishReason))
	assert.Equal(t, int64(4), sink.Attr(semconv.AttrUsageTotalTokens))

	ended, err := sink.Ended()
	require.True(t, ended)
	assert.NoError(t, err)
}

func TestInvocationRecordsTransportError(t *testing.T) {
	in, rec := newInstrumentor(t, nil)

	boom := errors.New("throttled")
	in.Invocation(context.Background(), "meta.llama3-70b-instruct-v1:0",
		map[string]any{"max_gen_len": float64(100)}, nil, boom)
	closeAndWait(t, in)

	sink := rec.last(t)
	ended, err := sink.Ended()
	require.True(t, ended)
	assert.Same(t, boom, err)
}
