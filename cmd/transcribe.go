package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/scribe-api/internal/models"
	"github.com/killallgit/scribe-api/pkg/config"
)

// transcribeCmd runs one transcription without starting the server
var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-url>",
	Short: "Transcribe a hosted audio file",
	Long: `Validate the audio URL, submit a transcription job and wait for the result.

The command blocks for up to the active poll profile's budget.

Example:
  scribe-api transcribe https://raw.githubusercontent.com/user/repo/main/talk.mp3
  scribe-api transcribe --model fast --language auto <url>
  scribe-api transcribe --translate <url>`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().String("model", "", "speech model: best or fast (default from config)")
	transcribeCmd.Flags().String("language", "", "language code or auto (default from config)")
	transcribeCmd.Flags().String("profile", "", "poll profile: standard or extended (overrides config)")
	transcribeCmd.Flags().Bool("translate", false, "translate the transcript after it completes")
	transcribeCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		cfg.Transcription.Profile = strings.ToLower(profile)
	}

	a, err := buildApp(cfg, wireOptions{withHistory: true})
	if err != nil {
		return err
	}
	defer a.Close()

	model, _ := cmd.Flags().GetString("model")
	language, _ := cmd.Flags().GetString("language")
	result, err := a.pipeline.Transcribe(cmd.Context(), models.TranscriptionRequest{
		AudioURL: args[0],
		Model:    models.SpeechModel(strings.ToLower(model)),
		Language: language,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	withTranslation, _ := cmd.Flags().GetBool("translate")

	var outcome *models.TranslationOutcome
	if withTranslation {
		o, err := a.pipeline.Translate(cmd.Context(), result.Text)
		if err != nil {
			return err
		}
		outcome = &o
	}

	if asJSON {
		payload := map[string]interface{}{"jobId": result.JobID, "text": result.Text}
		if result.DurationSeconds != nil {
			payload["duration"] = *result.DurationSeconds
		}
		if outcome != nil {
			payload["translation"] = outcome.JoinedText
			payload["failedSegments"] = outcome.Failed()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprintln(out, result.Text)
	if outcome != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, outcome.JoinedText)
	}
	return nil
}
