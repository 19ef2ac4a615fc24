package completions

import (
	"strings"

	"github.com/spf13/cobra"
)

type Completer struct{}

func NewCompleter() *Completer {
	return &Completer{}
}

// CompleteDateFormat offers a handful of common strftime presets.
func (c *Completer) CompleteDateFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{
		"%d/%m/%y\tDay/month/year (default)",
		"%Y-%m-%d\tISO date",
		"%d %b %Y\tDay month-name year",
		"%A\tWeekday name",
		"%Y-%m-%dT%H:%M:%S\tISO timestamp",
	}

	return c.filterPrefix(formats, toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// CompleteWorkDir restricts --cd completion to directories.
func (c *Completer) CompleteWorkDir(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func (c *Completer) filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		itemName := strings.Split(item, "\t")[0]
		if strings.HasPrefix(strings.ToLower(itemName), strings.ToLower(prefix)) {
			result = append(result, item)
		}
	}
	return result
}

func RegisterCompletions(rootCmd *cobra.Command) {
	completer := NewCompleter()

	dateCmd, _, _ := rootCmd.Find([]string{"date"})
	if dateCmd != nil {
		dateCmd.RegisterFlagCompletionFunc("format", completer.CompleteDateFormat)
	}

	pasteCmd, _, _ := rootCmd.Find([]string{"paste"})
	if pasteCmd != nil {
		pasteCmd.RegisterFlagCompletionFunc("cd", completer.CompleteWorkDir)
	}
}
