package classify

import "github.com/BaSui01/llmtrace/types"

// Unified transport: events arrive pre-typed under their transport field
// names, so this is a direct 1:1 mapping with no structural sniffing and no
// cross-vendor guard.
func classifyConverse(raw map[string]any) []types.Event {
	return classifyBlockEvents(raw)
}
