package cmd

import (
	"fmt"
	"os"

	"pastectl/pkg/completions"
	"pastectl/pkg/errors"
	"pastectl/pkg/logger"

	"github.com/spf13/cobra"
)

const unknownValue = "unknown"

var (
	Version   string
	BuildTime string
	GitCommit string
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "pastectl",
	Short: "Clipboard materializer",
	Long: `CLI tool that writes the current clipboard content into a destination
directory. File references are copied under timestamped names, raster images
are saved as PNG, and plain text is echoed in a fenced block. Also ships a
small date-formatting helper.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set log level: explicit flag takes precedence over env var
		level := logLevel
		if !cmd.Flags().Changed("log-level") {
			if envLevel := os.Getenv("PASTECTL_LOG_LEVEL"); envLevel != "" {
				level = envLevel
			}
		}
		logger.SetLevel(level)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		ver := Version
		if ver == "" {
			ver = "dev"
		}
		bt := BuildTime
		if bt == "" {
			bt = unknownValue
		}
		gc := GitCommit
		if gc == "" {
			gc = unknownValue
		}

		fmt.Printf("pastectl version %s\n", ver)
		fmt.Printf("Built: %s\n", bt)
		fmt.Printf("Git commit: %s\n", gc)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitCode := errors.HandleReturn(err)
		os.Exit(int(exitCode))
	}
}

func init() {
	RegisterCommands(rootCmd)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, fatal, panic)")

	completions.RegisterCompletions(rootCmd)
}
