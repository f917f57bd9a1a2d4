// Dialctl is the operator console for the VocalQ outbound call engine.
//
// It shows live engine status (run state, queue depth, active call) and
// submits batches of phone numbers for dialing. The engine itself runs
// elsewhere; this tool only talks to its HTTP API.
//
// Usage:
//
//	dialctl [command] [flags]
//
// Running without arguments launches the interactive console.
// See 'dialctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vocalq/dialctl/internal/logging"
	"github.com/vocalq/dialctl/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dialctl",
	Short: "VocalQ Outbound Call Engine Console",
	Long: `Operator console for the VocalQ outbound call engine.

Shows live engine status and submits batches of phone numbers for
dialing over the engine's HTTP API.

If no command is specified, the interactive console will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive console when no subcommand provided
		return runConsole(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dialctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
