package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/killallgit/scribe-api/pkg/config"
)

// translateCmd runs one translation without starting the server
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text from a file or stdin",
	Long: `Segment the input, translate every segment concurrently and print the joined result.

Segments that fail after all attempts are replaced by the configured
failure marker; a summary of failed segments is written to stderr.

Example:
  scribe-api translate --file notes.txt
  cat notes.txt | scribe-api translate`,
	Args: cobra.NoArgs,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringP("file", "f", "", "input file (stdin when omitted)")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	a, err := buildApp(cfg, wireOptions{withHistory: true})
	if err != nil {
		return err
	}
	defer a.Close()

	outcome, err := a.pipeline.Translate(cmd.Context(), string(text))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), outcome.JoinedText)
	if failed := outcome.Failed(); failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d segments could not be translated\n", failed, len(outcome.Segments))
	}
	return nil
}
