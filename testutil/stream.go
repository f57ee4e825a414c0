package testutil

import (
	"context"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/BaSui01/llmtrace/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TestContext returns a context with a generous timeout, cancelled on test
// cleanup so leaked goroutines unblock.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// SourceFromItems returns a closed-after-drain channel carrying its
// arguments in order.
func SourceFromItems(items ...types.RawItem) <-chan types.RawItem {
	ch := make(chan types.RawItem, len(items))
	for _, it := range items {
		ch <- it
	}
	close(ch)
	return ch
}

// DecodedItem builds a RawItem carrying both the wire bytes and the decoded
// form of one JSON line. It panics on invalid JSON; fixtures are static.
func DecodedItem(line string) types.RawItem {
	var decoded map[string]any
	if err := json.UnmarshalFromString(line, &decoded); err != nil {
		panic("testutil: bad fixture line: " + err.Error())
	}
	return types.RawItem{Bytes: []byte(line), Decoded: decoded}
}

// FramedItem builds a RawItem carrying only raw bytes, the shape produced
// by transports that hand over undecoded frames.
func FramedItem(line string) types.RawItem {
	return types.RawItem{Bytes: []byte(line)}
}

// SourceFromJSON turns JSON lines into a stream of decoded items.
func SourceFromJSON(lines ...string) <-chan types.RawItem {
	items := make([]types.RawItem, len(lines))
	for i, line := range lines {
		items[i] = DecodedItem(line)
	}
	return SourceFromItems(items...)
}

// SourceWithError streams the given lines, then a terminal error item.
func SourceWithError(err error, lines ...string) <-chan types.RawItem {
	items := make([]types.RawItem, 0, len(lines)+1)
	for _, line := range lines {
		items = append(items, DecodedItem(line))
	}
	items = append(items, types.RawItem{Err: err})
	return SourceFromItems(items...)
}
