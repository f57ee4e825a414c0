// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

// Package extract maps parsed request and response bodies to the canonical
// flat attribute set. It is pure field mapping: already-decoded JSON in,
// dotted keys with scalar values out. The streaming path shares only
// NormalizeUsage with it; everything else here serves the non-streaming
// InvokeModel surface.
package extract
