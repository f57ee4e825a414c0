// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

// Package accumulate reconstructs a complete inference result from canonical
// stream events.
//
// One State exists per streamed call. It is owned by the single background
// task that drains the observed branch, so it needs no synchronization, and
// it is consumed exactly once at stream end. Tool-call arguments arrive as
// JSON fragments split at arbitrary byte boundaries; Feed retries the parse
// as fragments accumulate, treating non-terminal failures as the expected
// steady state rather than errors.
package accumulate
