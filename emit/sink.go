package emit

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Sink receives flat span attributes. Implementations must tolerate being
// called from the background observation goroutine and must be append-only;
// End is called exactly once, after the last SetAttribute.
type Sink interface {
	SetAttribute(key string, value any)
	End(err error)
}

// OTelSink adapts an OpenTelemetry span to the Sink contract.
type OTelSink struct {
	span trace.Span
}

func NewOTelSink(span trace.Span) *OTelSink {
	return &OTelSink{span: span}
}

func (s *OTelSink) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprint(v)))
	}
}

func (s *OTelSink) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
