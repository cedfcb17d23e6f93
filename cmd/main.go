package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	appName = "FocusBoard"
	appID   = "com.focusboard.app"
)

var (
	// Global flags
	verbose bool
	dataDir string
	webAddr string

	// Subcommand flags
	username string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "focusboard",
	Short: "Focus Board - daily tasks with a focus timer",
	Long: `Focus Board keeps a daily task list, a notepad for status updates and a
focus/break/water timer with reminders.

Run without arguments to open the desktop app.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Inspect a user's task list",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print today's tasks and progress",
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Work with a user's daily updates",
}

var updatesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the daily updates text",
	Args:  cobra.NoArgs,
	RunE:  runUpdatesShow,
}

var updatesCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the daily updates text to the clipboard",
	Args:  cobra.NoArgs,
	RunE:  runUpdatesCopy,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding focusboard.db (default: user config dir)")
	rootCmd.Flags().StringVar(&webAddr, "web-addr", "", "Loopback address of the browser timer (overrides settings; \"off\" disables)")

	for _, cmd := range []*cobra.Command{tasksListCmd, updatesShowCmd, updatesCopyCmd} {
		cmd.Flags().StringVarP(&username, "user", "u", "", "User name (required)")
		_ = cmd.MarkFlagRequired("user")
	}

	tasksCmd.AddCommand(tasksListCmd)
	updatesCmd.AddCommand(updatesShowCmd)
	updatesCmd.AddCommand(updatesCopyCmd)

	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(updatesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
