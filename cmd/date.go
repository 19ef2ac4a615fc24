package cmd

import (
	"fmt"
	"time"

	"pastectl/pkg/config"
	"pastectl/pkg/dateutil"

	"github.com/spf13/cobra"
)

var dateFormat string

var dateCmd = &cobra.Command{
	Use:       "date <yesterday|today|tomorrow|next-week>",
	Short:     "Print a relative date",
	ValidArgs: dateutil.RelativeDays,
	Long: `Compute and print one timestamp for a symbolic relative day. yesterday,
today and tomorrow shift the current UTC time by whole days; next-week is the
upcoming Monday (a full week ahead when today is Monday).`,
	Example: `  # Today in the default format (%d/%m/%y)
  pastectl date today

  # Next Monday as an ISO date
  pastectl date next-week --format %Y-%m-%d`,
	Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		format := cfg.Date.Format
		if cmd.Flags().Changed("format") {
			format = dateFormat
		}

		t, err := dateutil.Resolve(args[0], time.Now())
		if err != nil {
			return err
		}

		out, err := dateutil.Format(t, format)
		if err != nil {
			return err
		}

		fmt.Println(out)
		return nil
	},
}

func init() {
	dateCmd.Flags().StringVar(&dateFormat, "format", config.DefaultDateFormat, "strftime format string (env PASTECTL_DATE_FORMAT)")
}
