package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. SCRIBE_SERVER_PORT
	EnvPrefix = "SCRIBE"

	ProfileStandard = "standard"
	ProfileExtended = "extended"
)

var (
	once    sync.Once
	initErr error

	configPath = "./config/settings.yaml"
	envFiles   = []string{".env.local", ".env"}
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Earlier files win; godotenv never overrides variables already set
		for _, f := range envFiles {
			if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
				initErr = fmt.Errorf("error loading env file %s: %w", f, err)
				return
			}
		}

		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		path := filepath.Clean(configPath)
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", path, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// Reset clears loaded state so Init can run again. Intended for tests.
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

// SetConfigFile overrides the settings file read by Init
func SetConfigFile(path string) {
	configPath = path
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// AllSettings returns every resolved setting as a nested map
func AllSettings() map[string]any {
	return viper.AllSettings()
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// ActiveProfile resolves the configured poll profile
func (t TranscriptionConfig) ActiveProfile() (PollProfile, error) {
	return t.Lookup(t.Profile)
}

// Lookup returns the named poll profile
func (t TranscriptionConfig) Lookup(name string) (PollProfile, error) {
	if name == "" {
		name = ProfileStandard
	}
	p, ok := t.Profiles[strings.ToLower(name)]
	if !ok {
		return PollProfile{}, fmt.Errorf("unknown transcription profile %q", name)
	}
	if p.Interval <= 0 || p.MaxAttempts <= 0 {
		return PollProfile{}, fmt.Errorf("transcription profile %q has no poll budget", name)
	}
	return p, nil
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	profile := strings.ToLower(viper.GetString("transcription.profile"))
	if profile != ProfileStandard && profile != ProfileExtended {
		return fmt.Errorf("invalid transcription profile: %q", profile)
	}

	if viper.GetInt("translation.attempts") <= 0 {
		viper.Set("translation.attempts", 2)
	}
	if viper.GetInt("translation.max_segment_length") <= 0 {
		viper.Set("translation.max_segment_length", 3000)
	}
	if viper.GetInt("translation.max_concurrent") < 0 {
		viper.Set("translation.max_concurrent", 0)
	}

	return nil
}

// validateAPIKeys validates that API keys are not using placeholder values
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	keys := map[string]string{
		"AssemblyAI API key":  viper.GetString("assemblyai.api_key"),
		"translation API key": viper.GetString("translation.api_key"),
	}

	for name, value := range keys {
		if !isPlaceholder(value) {
			continue
		}
		if isProduction {
			return fmt.Errorf("invalid %s: cannot use placeholder values in production", name)
		}
		fmt.Fprintf(os.Stderr, "Warning: %s is not set or uses a placeholder value\n", name)
	}

	return nil
}

func isPlaceholder(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "YOUR_KEY_HERE", "YOUR_API_KEY", "changeme", "CHANGEME":
		return true
	}
	return false
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := c.Transcription.ActiveProfile(); err != nil {
		return err
	}

	if c.Translation.Attempts <= 0 {
		c.Translation.Attempts = 2
	}

	if c.Translation.MaxSegmentLength <= 0 {
		c.Translation.MaxSegmentLength = 3000
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	// Transcription requests hold the connection for the whole poll budget
	viper.SetDefault("server.write_timeout", 65*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 10*1024*1024)

	// Database defaults; empty path disables history
	viper.SetDefault("database.path", "./data/scribe.db")
	viper.SetDefault("database.verbose", false)

	// AssemblyAI defaults
	viper.SetDefault("assemblyai.api_key", "")
	viper.SetDefault("assemblyai.base_url", "https://api.assemblyai.com")
	viper.SetDefault("assemblyai.timeout", 30*time.Second)

	// Transcription defaults
	viper.SetDefault("transcription.profile", ProfileStandard)
	viper.SetDefault("transcription.profiles", map[string]any{
		ProfileStandard: map[string]any{
			"interval":       3 * time.Second,
			"max_attempts":   200,
			"max_file_bytes": 50 * 1024 * 1024,
		},
		ProfileExtended: map[string]any{
			"interval":       5 * time.Second,
			"max_attempts":   720,
			"max_file_bytes": 200 * 1024 * 1024,
		},
	})
	viper.SetDefault("transcription.default_model", "best")
	viper.SetDefault("transcription.default_language", "zh")
	viper.SetDefault("transcription.empty_text", "(no speech detected)")

	// Translation defaults
	viper.SetDefault("translation.api_key", "")
	viper.SetDefault("translation.api_url", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("translation.model", "gpt-4o-mini")
	viper.SetDefault("translation.target_language", "Simplified Chinese")
	viper.SetDefault("translation.max_tokens", 3000)
	viper.SetDefault("translation.temperature", 0.2)
	viper.SetDefault("translation.timeout", 2*time.Minute)
	viper.SetDefault("translation.max_segment_length", 3000)
	viper.SetDefault("translation.attempts", 2)
	viper.SetDefault("translation.retry_delay", 0)
	viper.SetDefault("translation.max_concurrent", 8)
	viper.SetDefault("translation.requests_per_minute", 0)
	viper.SetDefault("translation.deadline", 300*time.Second)
	viper.SetDefault("translation.failure_marker", "[segment translation failed]")
	viper.SetDefault("translation.separator", "\n\n")

	// Validation defaults
	viper.SetDefault("validation.allowed_hosts", []string{"raw.githubusercontent.com"})
	viper.SetDefault("validation.allow_github_raw", true)
	viper.SetDefault("validation.public_domain", "")
	viper.SetDefault("validation.allowed_mime_types", []string{
		"audio/mpeg", "audio/wav", "audio/flac", "audio/mp4", "audio/x-m4a",
	})
	viper.SetDefault("validation.metadata_timeout", 10*time.Second)

	// Cache defaults
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size_mb", 64)
	viper.SetDefault("cache.ttl", 24*time.Hour)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.endpoints", map[string]any{
		"transcribe": map[string]any{"rps": 1, "burst": 3},
		"translate":  map[string]any{"rps": 2, "burst": 5},
		"default":    map[string]any{"rps": 10, "burst": 20},
	})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", false)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
}
