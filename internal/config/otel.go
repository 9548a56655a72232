package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel/attribute"
)

// OTELConfig is the tracing setup of bsdproc, read from the standard
// OpenTelemetry environment variables. Tracing stays off until an endpoint
// is given.
type OTELConfig struct {
	ServiceName        string `env:"OTEL_SERVICE_NAME" envDefault:"bsdproc"`
	ResourceAttributes string `env:"OTEL_RESOURCE_ATTRIBUTES" envDefault:""`
	ExporterEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	TracesEndpoint     string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT" envDefault:""`
	// Disabled turns tracing off even when an endpoint is set.
	Disabled bool `env:"OTEL_SDK_DISABLED" envDefault:"false"`
}

// ParseOTELConfig parses OTEL configuration from environment variables
func ParseOTELConfig() (*OTELConfig, error) {
	var cfg OTELConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse OTEL config: %w", err)
	}
	return &cfg, nil
}

// Enabled reports whether bsdproc should export spans. Without an endpoint
// the inspector records into a no-op tracer.
func (c *OTELConfig) Enabled() bool {
	return !c.Disabled && c.GetEndpoint() != ""
}

// GetEndpoint returns the host:port spans are sent to.
// Priority: OTEL_EXPORTER_OTLP_TRACES_ENDPOINT > OTEL_EXPORTER_OTLP_ENDPOINT.
// Both may be given as URLs; only the host part is kept.
func (c *OTELConfig) GetEndpoint() string {
	endpoint := c.TracesEndpoint
	if endpoint == "" {
		endpoint = c.ExporterEndpoint
	}
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return endpoint
}

// ParseResourceAttributes turns OTEL_RESOURCE_ATTRIBUTES (key1=value1,key2=value2)
// into resource attributes attached to every bsdproc span. Pairs without
// a key are dropped.
func (c *OTELConfig) ParseResourceAttributes() []attribute.KeyValue {
	if c.ResourceAttributes == "" {
		return nil
	}

	var attrs []attribute.KeyValue
	for _, pair := range strings.Split(c.ResourceAttributes, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		attrs = append(attrs, attribute.String(key, strings.TrimSpace(value)))
	}
	return attrs
}
