// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

/*
Package metrics provides Prometheus metric collection for the
instrumentation pipeline.

The Collector registers everything through promauto under one namespace:
stream outcomes and durations, classified canonical events, dropped
fragments, duplication fallbacks, observation-branch backlog, observed
token usage, and non-streaming invocation counts. Metrics describe the
instrumentation layer itself, not the instrumented application; span
attributes carry the per-call facts.
*/
package metrics
