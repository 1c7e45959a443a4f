package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/scribe-api/internal/models"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "version command shows build and models",
			args:     []string{"version"},
			contains: []string{"Scribe API", "Version:        v" + Version, "Git Commit:", "Platform:", "Speech models:  best, fast"},
		},
		{
			name:     "version command with --short flag",
			args:     []string{"version", "--short"},
			contains: []string{"v" + Version},
			excludes: []string{"Git Commit:", "Speech models:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestVersionCommandJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--json")
	require.NoError(t, err)

	var got versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, currentBuild(), got.BuildInfo)
	assert.Equal(t, []models.SpeechModel{models.SpeechModelBest, models.SpeechModelFast}, got.SpeechModels)
	assert.NotEmpty(t, got.Platform)
}

func TestVersionCommandRejectsArgs(t *testing.T) {
	_, _, err := execute(t, "", "version", "extra")
	assert.Error(t, err)
}

func TestVersionCommandFlags(t *testing.T) {
	versionCmd, _, err := NewRootCmd().Find([]string{"version"})
	require.NoError(t, err)
	assert.NotNil(t, versionCmd.Flags().Lookup("short"))
	assert.NotNil(t, versionCmd.Flags().Lookup("json"))
}
