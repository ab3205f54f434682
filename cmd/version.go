package cmd

import (
	"fmt"

	"github.com/s0up4200/srtran-gateway/internal/api"
	"github.com/spf13/cobra"
)

var (
	// Version information
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func buildInfo() api.BuildInfo {
	return api.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of srtran-gateway",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("srtran-gateway v%s\n", Version)
		if verbose {
			fmt.Printf("Build Time: %s\n", BuildTime)
			fmt.Printf("Git Commit: %s\n", GitCommit)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
