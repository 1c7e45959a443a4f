package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/killallgit/scribe-api/pkg/config"
)

// secretKeys are masked in config output
var secretKeys = map[string]bool{"api_key": true}

// configCmd prints the resolved configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as YAML",
	Long: `Print every setting after defaults, the settings file, .env files and
SCRIBE_* environment variables have been applied. API keys are masked
unless --show-secrets is given.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("show-secrets", false, "print API keys unmasked")
}

func runConfig(cmd *cobra.Command, args []string) error {
	settings := config.AllSettings()
	if show, _ := cmd.Flags().GetBool("show-secrets"); !show {
		maskSecrets(settings)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(settings)
}

func maskSecrets(m map[string]any) {
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			maskSecrets(val)
		case string:
			if secretKeys[k] && val != "" {
				m[k] = "********"
			}
		}
	}
}
