package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/authorityshow/editor-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "editor-api",
	Short: "Podcast Editor API server",
	Long: `Podcast Editor API - An AI-assisted audio editing pipeline service

The service executes caller-selected editing steps (transcription, AI cut
suggestions, manual cuts, sound-effect planning and mixing, voice operations,
and text generation) against uploaded audio, metering each step against a
per-user credit balance and producing one final artifact plus a structured
report.`,
	SilenceUsage: true,
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
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// loadConfig loads the configuration when a command needs it. The version
// and help commands run without it.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
