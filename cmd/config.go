package cmd

import (
	"fmt"

	"pastectl/pkg/config"
	"pastectl/pkg/errors"

	"github.com/spf13/cobra"
)

var (
	configWorkDir     string
	configDateFormat  string
	configLogLevel    string
	configUniqueNames bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pastectl configuration",
	Long:  `Show and update the pastectl configuration file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after environment overrides and defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Println("Current Configuration:")
		fmt.Println("======================")
		fmt.Printf("Work Dir: %s\n", func() string {
			if cfg.Paste.WorkDir == "" {
				return "(not set)"
			}
			return cfg.Paste.WorkDir
		}())
		fmt.Printf("Unique Names: %t\n", cfg.Paste.UniqueNames)
		fmt.Printf("Date Format: %s\n", cfg.Date.Format)
		fmt.Printf("Log Level: %s\n", cfg.Log.Level)

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update configuration values",
	Long:  `Update one or more configuration values and write them to the config file.`,
	Example: `  # Default working directory for paste
  pastectl config set --work-dir ~/notes

  # Default date format
  pastectl config set --date-format "%Y-%m-%d"

  # Collision-proof artifact names
  pastectl config set --unique-names`,
	RunE: func(cmd *cobra.Command, args []string) error {
		changed := false
		for _, flag := range []string{"work-dir", "date-format", "log-level", "unique-names"} {
			if cmd.Flags().Changed(flag) {
				changed = true
			}
		}
		if !changed {
			return errors.ConfigError("nothing to set (use --work-dir, --date-format, --log-level or --unique-names)")
		}

		cfg, err := config.Load()
		if err != nil {
			cfg = &config.Config{}
		}

		if cmd.Flags().Changed("work-dir") {
			cfg.Paste.WorkDir = configWorkDir
		}
		if cmd.Flags().Changed("date-format") {
			cfg.Date.Format = configDateFormat
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = configLogLevel
		}
		if cmd.Flags().Changed("unique-names") {
			cfg.Paste.UniqueNames = configUniqueNames
		}

		if err := config.Save(cfg); err != nil {
			return err
		}

		fmt.Println("Configuration saved.")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&configWorkDir, "work-dir", "", "Default working directory for paste")
	configSetCmd.Flags().StringVar(&configDateFormat, "date-format", "", "Default strftime format for date")
	configSetCmd.Flags().StringVar(&configLogLevel, "log-level", "", "Default log level")
	configSetCmd.Flags().BoolVar(&configUniqueNames, "unique-names", false, "Append a random suffix to artifact names")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
