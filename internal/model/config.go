package model

import "time"

// Config holds the full process configuration. Values come from (highest to
// lowest priority) CLI flags, AGENTSTATS_* environment variables, the config
// file, and the defaults below.
type Config struct {
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Stats    StatsConfig    `yaml:"stats" mapstructure:"stats"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy" mapstructure:"taxonomy"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Slack    SlackConfig    `yaml:"slack" mapstructure:"slack"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig selects and configures the record source.
type SourceConfig struct {
	// Driver is one of "file", "sqlite", "postgres".
	Driver string `yaml:"driver" mapstructure:"driver"`

	// Path is the snapshot location for the file and sqlite drivers.
	Path string `yaml:"path" mapstructure:"path"`

	// DSN is the connection string for the postgres driver.
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	// PageSize bounds how many records one Fetch returns.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
}

// StatsConfig carries the business-tunable aggregation constants. The
// automation-score weighting has no documented derivation; it is kept
// overridable pending product confirmation.
type StatsConfig struct {
	Mode           string  `yaml:"mode" mapstructure:"mode"`
	AccuracyWeight float64 `yaml:"accuracy_weight" mapstructure:"accuracy_weight"`
	VolumeWeight   float64 `yaml:"volume_weight" mapstructure:"volume_weight"`
}

// TaxonomyConfig points at an optional taxonomy override file.
type TaxonomyConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig configures the layered result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ServerConfig configures the HTTP API host.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// RatePerSecond and Burst bound requests per client address.
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	Burst         int     `yaml:"burst" mapstructure:"burst"`

	// RefreshSpec is a cron expression for warming the result cache.
	// Empty disables scheduled refresh.
	RefreshSpec string `yaml:"refresh_spec" mapstructure:"refresh_spec"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LLMConfig configures the optional insight summarizer.
type LLMConfig struct {
	// Provider is "openai", "anthropic", or "" (disabled).
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// SlackConfig configures optional report delivery to a Slack channel.
type SlackConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Token   string `yaml:"-" mapstructure:"token"`
	Channel string `yaml:"channel" mapstructure:"channel"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Driver:   "file",
			Path:     "records.json",
			PageSize: 5000,
		},
		Stats: StatsConfig{
			Mode:           "quality",
			AccuracyWeight: 0.7,
			VolumeWeight:   0.3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   time.Hour,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RatePerSecond:   10,
			Burst:           20,
			ShutdownTimeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
