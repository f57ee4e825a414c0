package accumulate

import (
	"strings"

	"github.com/BaSui01/llmtrace/types"
)

// State is the mutable per-call accumulation state: output text, in-flight
// tool calls, raw vendor usage counters and the stop reason. Single-writer;
// the owning task applies events in arrival order and hands the final state
// to the emitter.
type State struct {
	vendor  types.Vendor
	policy  types.UsagePolicy
	out     strings.Builder
	calls   []*types.ToolCallRecord
	byIndex map[int]*types.ToolCallRecord

	usage      types.Usage
	stopReason string
	applied    int
}

// NewState returns an empty accumulation state for one streamed call.
func NewState(vendor types.Vendor) *State {
	return &State{
		vendor:  vendor,
		policy:  types.PolicyFor(vendor),
		byIndex: make(map[int]*types.ToolCallRecord),
	}
}

// Apply folds one canonical event into the state.
func (s *State) Apply(ev types.Event) {
	s.applied++
	switch e := ev.(type) {
	case types.TextDelta:
		s.out.WriteString(e.Text)

	case types.ToolUseStart:
		rec := types.NewToolCallRecord(e.ID, e.Name)
		s.calls = append(s.calls, rec)
		if e.BlockIndex >= 0 {
			s.byIndex[e.BlockIndex] = rec
		}

	case types.ToolUseInputChunk:
		rec := s.resolve(e)
		if rec == nil {
			// chunk for a call we never saw open; nothing to attach it to
			return
		}
		buf, parsed := Feed(rec.PartialInput, e.Chunk)
		rec.PartialInput = buf
		if parsed != nil {
			rec.Input = parsed
		}

	case types.UsageUpdate:
		mergeUsage(&s.usage, e.Usage, s.policy)

	case types.MessageStop:
		if e.StopReason != "" {
			s.stopReason = e.StopReason
		}
	}
}

// resolve picks the record an input chunk belongs to: explicit id first,
// then the record opened for the same block index, then the most recently
// opened call.
func (s *State) resolve(e types.ToolUseInputChunk) *types.ToolCallRecord {
	if e.ID != "" {
		for i := len(s.calls) - 1; i >= 0; i-- {
			if s.calls[i].ID == e.ID {
				return s.calls[i]
			}
		}
	}
	if e.BlockIndex >= 0 {
		if rec, ok := s.byIndex[e.BlockIndex]; ok {
			return rec
		}
	}
	if n := len(s.calls); n > 0 {
		return s.calls[n-1]
	}
	return nil
}

// OutputText returns the accumulated assistant text.
func (s *State) OutputText() string { return s.out.String() }

// ToolCalls returns the tool calls in the order they were opened.
func (s *State) ToolCalls() []*types.ToolCallRecord { return s.calls }

// Usage returns the raw vendor-native counters accumulated so far.
func (s *State) Usage() types.Usage { return s.usage }

// StopReason returns the final stop reason, or "" if none arrived.
func (s *State) StopReason() string { return s.stopReason }

// Vendor returns the vendor the state was created for.
func (s *State) Vendor() types.Vendor { return s.vendor }

// Applied returns the number of events folded in, for diagnostics.
func (s *State) Applied() int { return s.applied }

func mergeUsage(dst *types.Usage, src types.Usage, p types.UsagePolicy) {
	mergeField(&dst.InputTokens, src.InputTokens, p.InputTokens)
	mergeField(&dst.OutputTokens, src.OutputTokens, p.OutputTokens)
	mergeField(&dst.TotalTokens, src.TotalTokens, p.TotalTokens)
	mergeField(&dst.CacheReadTokens, src.CacheReadTokens, p.CacheReadTokens)
	mergeField(&dst.CacheWriteTokens, src.CacheWriteTokens, p.CacheWriteTokens)
}

func mergeField(dst **int64, src *int64, policy types.FieldPolicy) {
	if src == nil {
		return
	}
	if policy == types.PolicyIncremental && *dst != nil {
		sum := **dst + *src
		*dst = &sum
		return
	}
	v := *src
	*dst = &v
}
