package types

// Event is a sealed interface representing one vendor-neutral stream event.
// Classification is a pure function of (vendor, decoded event shape); events
// carry no vendor-specific structure. The unexported marker method prevents
// external implementations so the accumulator's switch stays exhaustive.
type Event interface {
	canonicalEvent()
}

// TextDelta is an increment of assistant output text.
type TextDelta struct {
	Text string
}

func (TextDelta) canonicalEvent() {}

// ToolUseStart opens a new tool call. BlockIndex is the wire-level content
// block index when the format carries one, -1 otherwise; it is recorded so
// later input chunks without an explicit id can be attributed.
type ToolUseStart struct {
	ID         string
	Name       string
	BlockIndex int
}

func (ToolUseStart) canonicalEvent() {}

// ToolUseInputChunk is one fragment of a tool call's JSON argument string.
// ID and BlockIndex are attribution hints; either or both may be absent
// (empty string / -1), in which case the chunk goes to the most recently
// opened tool call.
type ToolUseInputChunk struct {
	ID         string
	BlockIndex int
	Chunk      string
}

func (ToolUseInputChunk) canonicalEvent() {}

// UsageUpdate carries vendor-native token counters. Nil fields were not
// reported by this event; how present fields merge into accumulated state is
// governed by the vendor's UsagePolicy.
type UsageUpdate struct {
	Usage Usage
}

func (UsageUpdate) canonicalEvent() {}

// MessageStop marks the end of the message. StopReason may be empty (some
// formats send a bare terminator after the reason was already delivered).
type MessageStop struct {
	StopReason string
}

func (MessageStop) canonicalEvent() {}

// Interface compliance checks.
var (
	_ Event = TextDelta{}
	_ Event = ToolUseStart{}
	_ Event = ToolUseInputChunk{}
	_ Event = UsageUpdate{}
	_ Event = MessageStop{}
)
