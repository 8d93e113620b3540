package utils

import "strconv"

const defaultOTLPEndpoint = "http://localhost:4318"

// TracingSettings is the OTEL_* environment as the router and the exporter read it.
type TracingSettings struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	// SampleRatio is the fraction of root spans kept, between 0 and 1.
	SampleRatio float64
	Environment string
}

func TracingSettingsFromEnv() TracingSettings {
	return TracingSettings{
		Enabled:     GetEnvBool("OTEL_TRACES_ENABLED", false),
		ServiceName: GetEnvTrimmedOrDefault("OTEL_SERVICE_NAME", "macro-app-api"),
		Endpoint:    GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", defaultOTLPEndpoint),
		SampleRatio: sampleRatio(GetEnvTrimmed("OTEL_TRACES_SAMPLER_ARG")),
		Environment: GetEnvTrimmedOrDefault("APP_ENV", "development"),
	}
}

func sampleRatio(raw string) float64 {
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return 1
	}
	return ratio
}
