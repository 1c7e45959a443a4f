package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/killallgit/scribe-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe-api",
	Short: "Scribe API server",
	Long: `Scribe API - audio transcription and long-text translation

Transcribes hosted audio files through AssemblyAI and translates long
text through an OpenAI-compatible chat completions endpoint.

Features:
  • Audio URL validation (allowed origins, size and type)
  • Submit-then-poll transcription with bounded wait profiles
  • Sentence-aware segmentation with concurrent, retried translation
  • Segment translation cache and optional result history`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "settings file (default ./config/settings.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// skipConfig lists commands that run without configuration
var skipConfig = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
	"scribe-api": true,
}

// loadConfig initializes configuration before a command that needs it runs
func loadConfig(cmd *cobra.Command, args []string) error {
	if skipConfig[cmd.Name()] {
		return nil
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		config.SetConfigFile(path)
	}

	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	// Flags win over file and environment only when set explicitly
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		viper.Set("logging.level", f.Value.String())
	}
	if f := cmd.Flags().Lookup("json-logs"); f != nil && f.Changed {
		if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
			viper.Set("logging.format", "json")
		} else {
			viper.Set("logging.format", "text")
		}
	}

	setupLogging(config.GetString("logging.level"), config.GetString("logging.format"), cmd.ErrOrStderr())
	return nil
}
