// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

// Package emit converts final accumulator state into the canonical flat
// attribute set and hands it to a span sink. Emission runs exactly once per
// streamed call, after the observed branch has drained, including on
// upstream error: partial attributes are strictly better than none for a
// background instrumentation task, so there is no discard-on-error path.
package emit
