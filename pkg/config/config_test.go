package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		env      map[string]string
		wantErr  bool
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "load from settings file",
			settings: `
server:
  host: "127.0.0.1"
  port: 8181
transcription:
  profile: extended
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8181, cfg.Server.Port)
				p, err := cfg.Transcription.ActiveProfile()
				require.NoError(t, err)
				assert.Equal(t, 5*time.Second, p.Interval)
				assert.Equal(t, 720, p.MaxAttempts)
			},
		},
		{
			name:     "environment variable override",
			settings: "server:\n  port: 8080\n",
			env:      map[string]string{"SCRIBE_SERVER_PORT": "9090", "SCRIBE_TRANSLATION_ATTEMPTS": "4"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 4, cfg.Translation.Attempts)
			},
		},
		{
			name: "missing settings file uses defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 2, cfg.Translation.Attempts)
				assert.Equal(t, 3000, cfg.Translation.MaxSegmentLength)
				assert.Equal(t, 300*time.Second, cfg.Translation.Deadline)
				assert.Equal(t, "\n\n", cfg.Translation.Separator)

				p, err := cfg.Transcription.ActiveProfile()
				require.NoError(t, err)
				assert.Equal(t, 3*time.Second, p.Interval)
				assert.Equal(t, 200, p.MaxAttempts)
				assert.Equal(t, int64(50*1024*1024), p.MaxFileBytes)
			},
		},
		{
			name:     "non-positive attempts are corrected",
			settings: "translation:\n  attempts: 0\n  max_segment_length: -1\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Translation.Attempts)
				assert.Equal(t, 3000, cfg.Translation.MaxSegmentLength)
			},
		},
		{
			name:     "invalid port",
			settings: "server:\n  port: 70000\n",
			wantErr:  true,
		},
		{
			name:     "unknown profile",
			settings: "transcription:\n  profile: forever\n",
			wantErr:  true,
		},
		{
			name:    "placeholder keys rejected in production",
			env:     map[string]string{"SCRIBE_ENVIRONMENT": "production", "SCRIBE_ASSEMBLYAI_API_KEY": "changeme"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)

			path := filepath.Join(t.TempDir(), "absent.yaml")
			if tt.settings != "" {
				path = writeSettings(t, tt.settings)
			}
			SetConfigFile(path)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := Init()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			cfg, err := GetConfig()
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	profiles := map[string]PollProfile{
		ProfileStandard: {Interval: 3 * time.Second, MaxAttempts: 200},
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server:        ServerConfig{Host: "localhost", Port: 8080},
				Transcription: TranscriptionConfig{Profile: ProfileStandard, Profiles: profiles},
			},
		},
		{
			name: "invalid port",
			config: &Config{
				Server:        ServerConfig{Host: "localhost", Port: 0},
				Transcription: TranscriptionConfig{Profiles: profiles},
			},
			wantErr: true,
		},
		{
			name: "missing profile",
			config: &Config{
				Server:        ServerConfig{Port: 8080},
				Transcription: TranscriptionConfig{Profile: ProfileExtended, Profiles: profiles},
			},
			wantErr: true,
		},
		{
			name: "empty database path is allowed",
			config: &Config{
				Server:        ServerConfig{Port: 8080},
				Database:      DatabaseConfig{Path: ""},
				Transcription: TranscriptionConfig{Profiles: profiles},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 2, tt.config.Translation.Attempts)
		})
	}
}

func TestPollProfile_Budget(t *testing.T) {
	p := PollProfile{Interval: 3 * time.Second, MaxAttempts: 200}
	assert.Equal(t, 10*time.Minute, p.Budget())
}
