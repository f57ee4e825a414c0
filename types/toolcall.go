package types

// ToolCallRecord is one tool invocation assembled from the stream. It is
// created exactly once per ToolUseStart, mutated in place by input chunks,
// and never deleted.
//
// Input is the last snapshot of the argument object that parsed successfully;
// PartialInput is the raw concatenation of every fragment received so far and
// is retried as more fragments arrive. PartialInput is a scratch field and is
// dropped at emission.
type ToolCallRecord struct {
	ID           string
	Name         string
	Input        map[string]any
	PartialInput string
}

// NewToolCallRecord returns an empty record for a just-opened tool call.
// Input stays nil until a fragment snapshot parses, so "arguments never
// parsed" is distinguishable from an empty argument object.
func NewToolCallRecord(id, name string) *ToolCallRecord {
	return &ToolCallRecord{ID: id, Name: name}
}
