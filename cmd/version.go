package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"ikdashboard/internal/config"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of ikdashboard.",
	// config is not needed to print the version
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nGo: %s\nOS/Arch: %s/%s\n",
			config.GetVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
