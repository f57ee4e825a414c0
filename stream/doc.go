// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

// Package stream duplicates a one-shot upstream response stream into two
// independently-consumable branches.
//
// The caller branch is fed synchronously by the pump, so the calling
// application's pace governs overall advancement exactly as it would on the
// raw stream. The observed branch is decoupled through an unbounded backlog:
// a slow, stalled or dead observer can never block, slow, truncate or alter
// what the caller sees. Memory stays bounded whenever the observer keeps
// pace; a stalled observer accumulates backlog, which is acceptable for a
// background task expected to drain continuously.
package stream
