package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the asanasync application
var rootCmd = &cobra.Command{
	Use:   "asanasync",
	Short: "Mirrors Asana tasks into Google Tasks and completions back",
	Long: `asanasync keeps a Google Tasks list in step with your Asana My Tasks list.

Incomplete Asana tasks with a due date are mirrored into Google Tasks;
completing a mirror task completes the task in Asana. Asana remains the
source of truth for everything else.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "asanasync version %s\n" .Version}}`)

	// If no subcommand is provided, run the sync command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "sync")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
