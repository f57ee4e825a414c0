package types

import "bytes"

// RawItem is one opaque unit produced by the upstream transport. Two physical
// shapes occur and both must be accepted: a binary frame wrapping one or more
// newline-delimited JSON lines (Bytes), or an already-decoded event object
// (Decoded). A terminal transport failure travels in-band as the final item
// with Err set, after which the stream closes.
type RawItem struct {
	Bytes   []byte
	Decoded map[string]any
	Err     error
}

// Terminal reports whether the item carries the stream's terminal error.
func (it RawItem) Terminal() bool { return it.Err != nil }

// Framed reports whether the item arrived as a binary frame rather than a
// pre-decoded event object.
func (it RawItem) Framed() bool { return it.Decoded == nil }

// Lines splits a binary frame into its non-empty JSON lines. For pre-decoded
// items it returns nil; use Decoded directly.
func (it RawItem) Lines() [][]byte {
	if len(it.Bytes) == 0 {
		return nil
	}
	parts := bytes.Split(it.Bytes, []byte{'\n'})
	lines := parts[:0]
	for _, p := range parts {
		if len(bytes.TrimSpace(p)) > 0 {
			lines = append(lines, p)
		}
	}
	return lines
}
