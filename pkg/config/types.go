package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment   string              `mapstructure:"environment"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	AssemblyAI    AssemblyAIConfig    `mapstructure:"assemblyai"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Translation   TranslationConfig   `mapstructure:"translation"`
	Validation    ValidationConfig    `mapstructure:"validation"`
	Cache         CacheConfig         `mapstructure:"cache"`
	RateLimiting  RateLimitConfig     `mapstructure:"rate_limiting"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Monitoring    MonitoringConfig    `mapstructure:"monitoring"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains history database settings.
// An empty path disables the history log.
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// AssemblyAIConfig contains speech-to-text provider settings
type AssemblyAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PollProfile bounds how long a transcription job is waited on
type PollProfile struct {
	Interval     time.Duration `mapstructure:"interval"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	MaxFileBytes int64         `mapstructure:"max_file_bytes"`
}

// Budget returns the total wait budget of the profile
func (p PollProfile) Budget() time.Duration {
	return p.Interval * time.Duration(p.MaxAttempts)
}

// TranscriptionConfig contains job polling settings
type TranscriptionConfig struct {
	Profile         string                 `mapstructure:"profile"`
	Profiles        map[string]PollProfile `mapstructure:"profiles"`
	DefaultModel    string                 `mapstructure:"default_model"`
	DefaultLanguage string                 `mapstructure:"default_language"`
	EmptyText       string                 `mapstructure:"empty_text"`
}

// TranslationConfig contains chat-completion provider and dispatch settings
type TranslationConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	APIURL            string        `mapstructure:"api_url"`
	Model             string        `mapstructure:"model"`
	TargetLanguage    string        `mapstructure:"target_language"`
	MaxTokens         int           `mapstructure:"max_tokens"`
	Temperature       float64       `mapstructure:"temperature"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxSegmentLength  int           `mapstructure:"max_segment_length"`
	Attempts          int           `mapstructure:"attempts"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Deadline          time.Duration `mapstructure:"deadline"`
	FailureMarker     string        `mapstructure:"failure_marker"`
	Separator         string        `mapstructure:"separator"`
}

// ValidationConfig contains audio URL precondition settings
type ValidationConfig struct {
	AllowedHosts      []string      `mapstructure:"allowed_hosts"`
	PublicDomain      string        `mapstructure:"public_domain"`
	AllowedMimeTypes  []string      `mapstructure:"allowed_mime_types"`
	MetadataTimeout   time.Duration `mapstructure:"metadata_timeout"`
	AllowGitHubRawURL bool          `mapstructure:"allow_github_raw"`
}

// CacheConfig contains translation cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	MaxSizeMB int64         `mapstructure:"max_size_mb"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig contains per-client API rate limiting settings
type RateLimitConfig struct {
	Enabled   bool                 `mapstructure:"enabled"`
	Endpoints map[string]RateLimit `mapstructure:"endpoints"`
}

// RateLimit is a requests-per-second and burst pair
type RateLimit struct {
	RPS   int `mapstructure:"rps"`
	Burst int `mapstructure:"burst"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MonitoringConfig contains monitoring settings
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}
