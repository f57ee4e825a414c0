// Package llmtrace instruments streamed and non-streaming calls to managed
// LLM inference APIs.
//
// Usage:
//
//	cfg, _ := config.LoadFromEnv()
//	tracer, _ := llmtrace.New(cfg)
//	defer tracer.Close(context.Background())
//
//	body := tracer.Stream(ctx, modelID, upstream)
//	for item := range body {
//	    // consume exactly as without instrumentation
//	}
//
// Stream hands back a channel indistinguishable from the upstream one; a
// background task observes a duplicate of the stream, classifies each
// vendor chunk into canonical events, accumulates text, tool calls and
// token usage, and records the result on an OpenTelemetry span when the
// stream ends. Instrumentation failures degrade the span, never the call.
package llmtrace

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/BaSui01/llmtrace/accumulate"
	"github.com/BaSui01/llmtrace/classify"
	"github.com/BaSui01/llmtrace/config"
	"github.com/BaSui01/llmtrace/emit"
	"github.com/BaSui01/llmtrace/extract"
	"github.com/BaSui01/llmtrace/internal/metrics"
	"github.com/BaSui01/llmtrace/internal/telemetry"
	"github.com/BaSui01/llmtrace/semconv"
	"github.com/BaSui01/llmtrace/stream"
	"github.com/BaSui01/llmtrace/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const metricsNamespace = "llmtrace"

// SinkFactory opens one attribute sink per instrumented call. The default
// factory starts an OpenTelemetry span and adapts it via emit.OTelSink.
type SinkFactory func(ctx context.Context, operation, modelID string, vendor types.Vendor) emit.Sink

// Instrumentor is the entry point. One instance serves a whole process;
// all methods are safe for concurrent use.
type Instrumentor struct {
	cfg       config.InstrumentationConfig
	logger    *zap.Logger
	providers *telemetry.Providers
	collector *metrics.Collector
	emitter   *emit.Emitter
	sinks     SinkFactory

	// warnLimit throttles malformed-fragment warnings; vendor streams
	// carry expected noise and must not flood the log.
	warnLimit *rate.Limiter

	group *errgroup.Group
}

// Option overrides a default collaborator, mainly for tests.
type Option func(*Instrumentor)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *zap.Logger) Option {
	return func(in *Instrumentor) { in.logger = logger }
}

// WithCollector replaces the Prometheus collector.
func WithCollector(c *metrics.Collector) Option {
	return func(in *Instrumentor) { in.collector = c }
}

// WithSinkFactory replaces span creation wholesale.
func WithSinkFactory(f SinkFactory) Option {
	return func(in *Instrumentor) { in.sinks = f }
}

// New builds an Instrumentor from cfg. Telemetry export is initialized
// here; Close shuts it down.
func New(cfg *config.Config, opts ...Option) (*Instrumentor, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	in := &Instrumentor{
		cfg:       cfg.Instrumentation,
		logger:    config.NewLogger(cfg.Log),
		warnLimit: rate.NewLimiter(rate.Every(time.Second), 5),
		group:     &errgroup.Group{},
	}
	for _, opt := range opts {
		opt(in)
	}

	providers, err := telemetry.Init(cfg.Telemetry, in.logger)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	in.providers = providers

	if in.collector == nil {
		in.collector = metrics.NewCollector(metricsNamespace, in.logger)
	}
	if in.sinks == nil {
		in.sinks = in.spanSink
	}
	in.emitter = emit.NewEmitter(emit.Config{
		RecordContent:  cfg.Instrumentation.RecordContent,
		EstimateTokens: cfg.Instrumentation.EstimateTokens,
		Logger:         in.logger,
	})

	return in, nil
}

// StreamOption adjusts how one streaming call is observed.
type StreamOption func(*streamOptions)

type streamOptions struct {
	vendor types.Vendor
}

// WithVendor pins the stream's wire format instead of deriving it from the
// model id. Required for the unified transport (types.VendorConverse),
// whose pre-typed events look the same for every model.
func WithVendor(v types.Vendor) StreamOption {
	return func(o *streamOptions) { o.vendor = v }
}

// Stream wraps one streaming call. The returned channel carries exactly
// the items of upstream, in order, at the caller's own pace; observation
// happens on a duplicate. With instrumentation disabled or the model
// unattributable to a known vendor, upstream is returned untouched.
func (in *Instrumentor) Stream(ctx context.Context, modelID string, upstream <-chan types.RawItem, opts ...StreamOption) <-chan types.RawItem {
	var so streamOptions
	for _, opt := range opts {
		opt(&so)
	}
	vendor := so.vendor
	if vendor == types.VendorUnknown {
		vendor = types.VendorFromModelID(modelID)
	}
	active := in.cfg.Enabled && vendor.Known()
	if in.cfg.Enabled && !vendor.Known() {
		in.logger.Debug("unknown model vendor, stream not observed",
			zap.String("model_id", modelID))
		in.collector.RecordTeeFallback()
	}

	caller, observed := stream.TeeOrPassthrough(ctx, upstream, active,
		stream.WithBacklogObserver(func(n int) {
			in.collector.SetObserverBacklog(vendor.String(), n)
		}))
	if observed == nil {
		return caller
	}

	sink := in.sinks(ctx, "chat", modelID, vendor)
	in.group.Go(func() error {
		in.observe(vendor, observed, sink)
		return nil
	})
	return caller
}

// Invocation records one non-streaming call from its decoded request and
// response bodies. callErr is the transport error, nil on success.
func (in *Instrumentor) Invocation(ctx context.Context, modelID string, requestBody, responseBody map[string]any, callErr error) {
	if !in.cfg.Enabled {
		return
	}
	vendor := types.VendorFromModelID(modelID)
	if !vendor.Known() {
		in.logger.Debug("unknown model vendor, call not recorded",
			zap.String("model_id", modelID))
		return
	}

	sink := in.sinks(ctx, "invoke_model", modelID, vendor)
	for k, v := range extract.RequestAttributes(vendor, requestBody) {
		sink.SetAttribute(k, v)
	}
	for k, v := range extract.ResponseAttributes(vendor, responseBody, in.cfg.RecordContent) {
		sink.SetAttribute(k, v)
	}
	sink.End(callErr)

	status := "success"
	if callErr != nil {
		status = "error"
	}
	in.collector.RecordInvocation(vendor.String(), status)
}

// Close waits for in-flight observation tasks and shuts telemetry down.
func (in *Instrumentor) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		_ = in.group.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return in.providers.Shutdown(ctx)
}

// spanSink is the default SinkFactory.
func (in *Instrumentor) spanSink(ctx context.Context, operation, modelID string, vendor types.Vendor) emit.Sink {
	_, span := in.providers.Tracer().Start(ctx, operation+" "+modelID,
		trace.WithSpanKind(trace.SpanKindClient))
	sink := emit.NewOTelSink(span)
	sink.SetAttribute(semconv.AttrOperationName, operation)
	sink.SetAttribute(semconv.AttrSystem, vendor.String())
	sink.SetAttribute(semconv.AttrRequestModel, modelID)
	sink.SetAttribute(semconv.AttrInvocationID, uuid.NewString())
	return sink
}

// observe drains one observed branch to completion, then emits. Panics
// anywhere in here are recovered; nothing may affect the caller branch.
func (in *Instrumentor) observe(vendor types.Vendor, observed <-chan types.RawItem, sink emit.Sink) {
	st := accumulate.NewState(vendor)
	start := time.Now()

	streamErr := in.drain(st, vendor, observed)
	in.finish(st, vendor, sink, streamErr, start)
}

// drain consumes the observed branch until it closes. A panic while
// classifying or accumulating stops accumulation but keeps consuming, so
// the pump's flush never blocks on an abandoned branch.
func (in *Instrumentor) drain(st *accumulate.State, vendor types.Vendor, observed <-chan types.RawItem) (streamErr error) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("stream observation panicked, emitting partial state",
				zap.String("vendor", vendor.String()),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			for item := range observed {
				if item.Terminal() {
					streamErr = item.Err
				}
			}
		}
	}()

	for item := range observed {
		if item.Terminal() {
			streamErr = item.Err
			continue
		}
		in.applyItem(st, vendor, item)
	}
	return streamErr
}

// finish emits the accumulated state and records stream metrics. The sink
// comes through the SinkFactory extension point, so emission runs under its
// own recover; metrics are recorded either way.
func (in *Instrumentor) finish(st *accumulate.State, vendor types.Vendor, sink emit.Sink, streamErr error, start time.Time) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				in.logger.Error("result emission panicked",
					zap.String("vendor", vendor.String()),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
			}
		}()
		in.emitter.Emit(st, sink, streamErr)
	}()

	outcome := "completed"
	if streamErr != nil {
		outcome = "error"
	}
	in.collector.RecordStream(vendor.String(), outcome, time.Since(start))
	in.collector.SetObserverBacklog(vendor.String(), 0)

	u := st.Usage()
	var inTok, outTok int64
	if u.InputTokens != nil {
		inTok = *u.InputTokens
	}
	if u.OutputTokens != nil {
		outTok = *u.OutputTokens
	}
	in.collector.RecordTokens(vendor.String(), inTok, outTok)
}

// applyItem decodes one raw item and folds its canonical events into st.
func (in *Instrumentor) applyItem(st *accumulate.State, vendor types.Vendor, item types.RawItem) {
	if item.Decoded != nil {
		in.applyObject(st, vendor, item.Decoded)
		return
	}
	for _, line := range item.Lines() {
		var decoded map[string]any
		if err := json.Unmarshal(line, &decoded); err != nil {
			in.collector.RecordDroppedFragment(vendor.String(), "malformed")
			if in.warnLimit.Allow() {
				in.logger.Warn("dropping malformed stream fragment",
					zap.String("vendor", vendor.String()),
					zap.Error(err))
			}
			continue
		}
		in.applyObject(st, vendor, decoded)
	}
}

func (in *Instrumentor) applyObject(st *accumulate.State, vendor types.Vendor, decoded map[string]any) {
	events := classify.Classify(vendor, decoded)
	if events == nil {
		in.collector.RecordDroppedFragment(vendor.String(), "unrecognized")
		return
	}
	for _, ev := range events {
		st.Apply(ev)
		in.collector.RecordEvent(vendor.String(), eventName(ev))
	}
}

func eventName(ev types.Event) string {
	switch ev.(type) {
	case types.TextDelta:
		return "text_delta"
	case types.ToolUseStart:
		return "tool_use_start"
	case types.ToolUseInputChunk:
		return "tool_input_chunk"
	case types.UsageUpdate:
		return "usage_update"
	case types.MessageStop:
		return "message_stop"
	default:
		return "unknown"
	}
}
