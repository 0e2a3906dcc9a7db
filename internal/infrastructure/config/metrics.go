package config

// MetricsConfig controls the daemon's Prometheus endpoint
type MetricsConfig struct {
	// Off by default; the game and request collectors are only registered when set
	Enabled bool `mapstructure:"enabled"`

	// Scrape endpoint, served at Host:Port/Path (defaults localhost:9190/metrics)
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Host string `mapstructure:"host"`
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`

	// Histogram buckets in seconds for request timings; empty uses the collector's defaults
	DurationBuckets []float64 `mapstructure:"duration_buckets" validate:"omitempty,ascending,dive,gt=0"`
}
