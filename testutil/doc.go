// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

/*
Package testutil provides shared helpers for tests across the module.

It offers context helpers that register cleanup automatically, raw-item
stream constructors for driving the duplication and accumulation paths,
canned vendor wire fixtures, and a CaptureSink that records emitted span
attributes for assertion.
*/
package testutil
