// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

/*
Package types provides the shared type contract for the llmtrace module.

types is the lowest-level package of the module and depends on nothing
internal, so that stream, classify, accumulate and emit can all share one
vocabulary without import cycles.

Core types:

  - Vendor           — model-family tag that selects wire-format handling
  - RawItem          — one opaque unit of an upstream response stream
  - Event            — sealed vendor-neutral classification of one stream item
  - ToolCallRecord   — a tool invocation assembled from partial-JSON fragments
  - Usage            — raw vendor-native token counters (nil means "not reported")
  - UsagePolicy      — fixed per-vendor snapshot-vs-incremental merge policy
*/
package types
