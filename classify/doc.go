// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

// Package classify turns decoded vendor stream events into vendor-neutral
// canonical events.
//
// Classification is pure and stateless: each raw event maps to an ordered
// list of canonical events based only on the vendor tag and the event's
// structure. The list form exists because some wire formats bundle several
// facts into one chunk (a flat-fields chunk can carry text, token counts and
// a stop reason at once); single-fact formats yield at most one element.
//
// A nil result means the event matched no known shape for the vendor and
// must be dropped. An empty non-nil result means the event was recognized
// but carries no accumulable fact (pings, block stops, role markers).
// Classify never panics on malformed input.
package classify
