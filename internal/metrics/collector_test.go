package metrics

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var collectorNamespaceSeq uint64

// promauto registers on the default registry, so each test gets its own
// namespace to avoid duplicate-registration panics.
func nextTestNamespace() string {
	seq := atomic.AddUint64(&collectorNamespaceSeq, 1)
	return fmt.Sprintf("test_%d", seq)
}

func TestNewCollector(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.streamsTotal)
	assert.NotNil(t, collector.streamDuration)
	assert.NotNil(t, collector.eventsClassified)
	assert.NotNil(t, collector.fragmentsDropped)
	assert.NotNil(t, collector.teeFallbacksTotal)
	assert.NotNil(t, collector.observerBacklog)
	assert.NotNil(t, collector.tokensObserved)
	assert.NotNil(t, collector.invocationsTotal)
}

func TestCollector_RecordStream(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordStream("anthropic", "completed", 500*time.Millisecond)
	collector.RecordStream("anthropic", "error", 100*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(collector.streamsTotal))
	assert.Greater(t, testutil.CollectAndCount(collector.streamDuration), 0)
}

func TestCollector_RecordEvent(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordEvent("titan", "text_delta")
	collector.RecordEvent("titan", "text_delta")
	collector.RecordEvent("titan", "usage_update")

	v := collector.eventsClassified.WithLabelValues("titan", "text_delta")
	assert.Equal(t, 2.0, testutil.ToFloat64(v))
}

func TestCollector_RecordDroppedFragment(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordDroppedFragment("anthropic", "malformed")
	v := collector.fragmentsDropped.WithLabelValues("anthropic", "malformed")
	assert.Equal(t, 1.0, testutil.ToFloat64(v))
}

func TestCollector_TeeFallbackAndBacklog(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordTeeFallback()
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.teeFallbacksTotal))

	collector.SetObserverBacklog("meta", 7)
	assert.Equal(t, 7.0, testutil.ToFloat64(collector.observerBacklog.WithLabelValues("meta")))
	collector.SetObserverBacklog("meta", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.observerBacklog.WithLabelValues("meta")))
}

func TestCollector_RecordTokens(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordTokens("nova", 100, 50)
	collector.RecordTokens("nova", 10, 0)

	assert.Equal(t, 110.0, testutil.ToFloat64(collector.tokensObserved.WithLabelValues("nova", "input")))
	assert.Equal(t, 50.0, testutil.ToFloat64(collector.tokensObserved.WithLabelValues("nova", "output")))
}

func TestCollector_RecordInvocation(t *testing.T) {
	collector := NewCollector(nextTestNamespace(), zap.NewNop())

	collector.RecordInvocation("anthropic", "success")
	v := collector.invocationsTotal.WithLabelValues("anthropic", "success")
	assert.Equal(t, 1.0, testutil.ToFloat64(v))
}
