package config

// Builder provides a fluent API for building configuration
type Builder struct {
	config *Config
}

// NewBuilder creates a new configuration builder with defaults
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// FromConfig creates a builder from an existing configuration
func FromConfig(config *Config) *Builder {
	builder := NewBuilder()
	*builder.config = *config
	return builder
}

// Channel Configuration

// WithFrameMax sets the largest frame a channel writes or accepts
func (b *Builder) WithFrameMax(frameMax uint32) *Builder {
	b.config.Channel.FrameMax = frameMax
	return b
}

// WithDeliveryTracking enables/disables local delivery tag checks
func (b *Builder) WithDeliveryTracking(enabled bool) *Builder {
	b.config.Channel.TrackDeliveries = enabled
	return b
}

// WithCapture records every frame read to a capture file
func (b *Builder) WithCapture(path string) *Builder {
	b.config.Channel.CapturePath = path
	return b
}

// Logging Configuration

// WithLogLevel sets the log level
func (b *Builder) WithLogLevel(level string) *Builder {
	b.config.Log.Level = level
	return b
}

// WithJSONLogs switches the encoder to JSON
func (b *Builder) WithJSONLogs() *Builder {
	b.config.Log.Format = "json"
	return b
}

// WithDevelopment enables development logging
func (b *Builder) WithDevelopment(enabled bool) *Builder {
	b.config.Log.Development = enabled
	return b
}

// WithLogFile writes logs to a rotated file
func (b *Builder) WithLogFile(path string, maxSizeMB, maxBackups, maxAgeDays int) *Builder {
	b.config.Log.File = path
	b.config.Log.MaxSizeMB = maxSizeMB
	b.config.Log.MaxBackups = maxBackups
	b.config.Log.MaxAgeDays = maxAgeDays
	return b
}

// Metrics Configuration

// WithMetrics enables the Prometheus exporter on addr
func (b *Builder) WithMetrics(namespace, addr string) *Builder {
	b.config.Metrics.Enabled = true
	b.config.Metrics.Namespace = namespace
	b.config.Metrics.Address = addr
	return b
}

// Build returns the configured Config
func (b *Builder) Build() (*Config, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// BuildUnsafe returns the configured Config without validation
func (b *Builder) BuildUnsafe() *Config {
	return b.config
}
