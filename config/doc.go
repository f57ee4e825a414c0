// Copyright (c) LLMTrace Authors.
// Licensed under the MIT License.

// Package config loads and validates the instrumentation configuration.
//
// Configuration is resolved from defaults, an optional YAML file, and
// environment variable overrides, in that order. A Reloader can watch the
// file and apply toggle changes at runtime.
package config
