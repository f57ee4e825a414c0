package classify

import (
	"github.com/BaSui01/llmtrace/types"
)

// none is the recognized-but-empty result, distinct from the nil
// unrecognized result.
var none = []types.Event{}

// Classify maps one decoded stream event to its canonical events. See the
// package comment for the nil / empty distinction.
func Classify(vendor types.Vendor, raw map[string]any) []types.Event {
	if raw == nil {
		return nil
	}
	switch vendor {
	case types.VendorAnthropic:
		return classifyAnthropic(raw)
	case types.VendorNova:
		return classifyNova(raw)
	case types.VendorTitan:
		return classifyTitan(raw)
	case types.VendorMeta:
		return classifyMeta(raw)
	case types.VendorConverse:
		return classifyConverse(raw)
	default:
		return nil
	}
}

// str returns m[key] when it is a string, "" otherwise.
func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// obj returns m[key] when it is an object, nil otherwise.
func obj(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	o, _ := m[key].(map[string]any)
	return o
}

// num returns m[key] as an int64 and whether a numeric value was present.
// Decoded JSON numbers arrive as float64; ints are tolerated for pre-decoded
// transport events.
func num(m map[string]any, key string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// counter returns a merge-ready pointer for a numeric field, nil when absent.
func counter(m map[string]any, key string) *int64 {
	if n, ok := num(m, key); ok {
		return types.Count(n)
	}
	return nil
}

// blockIndex returns the content block index of an event, -1 when absent.
func blockIndex(m map[string]any, key string) int {
	if n, ok := num(m, key); ok {
		return int(n)
	}
	return -1
}
