package config

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Instrumentation: DefaultInstrumentationConfig(),
		Telemetry:       DefaultTelemetryConfig(),
		Log:             DefaultLogConfig(),
	}
}

// DefaultInstrumentationConfig enables instrumentation but keeps message
// content off spans until opted in.
func DefaultInstrumentationConfig() InstrumentationConfig {
	return InstrumentationConfig{
		Enabled:        true,
		RecordContent:  false,
		EstimateTokens: false,
	}
}

func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "llmtrace",
		SampleRate:   1.0,
	}
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:        "info",
		Format:       "json",
		OutputPaths:  []string{"stderr"},
		EnableCaller: false,
	}
}
