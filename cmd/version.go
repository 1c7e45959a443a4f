package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/scribe-api/api/types"
	"github.com/killallgit/scribe-api/internal/models"
)

// Build variables - these will be set during build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// versionInfo is what `version --json` prints; the embedded build info
// is the same the /version endpoint serves
type versionInfo struct {
	types.BuildInfo
	GoVersion    string               `json:"go_version"`
	Platform     string               `json:"platform"`
	SpeechModels []models.SpeechModel `json:"speech_models"`
}

func currentBuild() types.BuildInfo {
	return types.BuildInfo{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
}

func currentVersion() versionInfo {
	return versionInfo{
		BuildInfo:    currentBuild(),
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		SpeechModels: []models.SpeechModel{models.SpeechModelBest, models.SpeechModelFast},
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the build of this scribe-api binary and the speech models it accepts.

Use --short for the bare version or --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	info := currentVersion()

	if short, _ := cmd.Flags().GetBool("short"); short {
		_, err := fmt.Fprintf(out, "v%s\n", info.Version)
		return err
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return printVersion(out, info)
}

func printVersion(out io.Writer, info versionInfo) error {
	rule := strings.Repeat("-", 40)
	modelNames := make([]string, len(info.SpeechModels))
	for i, m := range info.SpeechModels {
		modelNames[i] = string(m)
	}

	_, err := fmt.Fprintf(out, "Scribe API\n%s\n"+
		"Version:        v%s\n"+
		"Git Commit:     %s\n"+
		"Build Time:     %s\n"+
		"Go Version:     %s\n"+
		"Platform:       %s\n"+
		"Speech models:  %s\n%s\n",
		rule, info.Version, info.GitCommit, info.BuildTime,
		info.GoVersion, info.Platform, strings.Join(modelNames, ", "), rule)
	return err
}
