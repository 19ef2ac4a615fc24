package cmd

import (
	"os"

	"pastectl/pkg/clipboard"
	"pastectl/pkg/config"
	"pastectl/pkg/errors"
	"pastectl/pkg/logger"
	"pastectl/pkg/paste"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	pasteWorkDir     string
	pasteUniqueNames bool
)

var pasteCmd = &cobra.Command{
	Use:   "paste <dest_dir>",
	Short: "Write clipboard content into a directory",
	Long: `Read the system clipboard and materialize its content under <dest_dir>.
A file list is copied file by file under timestamped names, a raster image is
saved as PNG, and plain text is printed in a fenced block. One Markdown
reference per artifact goes to stdout. An empty clipboard is a no-op.`,
	Example: `  # Save whatever is on the clipboard into ./attachments
  pastectl paste attachments

  # Resolve relative paths against another working directory
  pastectl paste attachments --cd ~/notes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		workDir := cfg.Paste.WorkDir
		if cmd.Flags().Changed("cd") {
			workDir = pasteWorkDir
		}
		uniqueNames := cfg.Paste.UniqueNames
		if cmd.Flags().Changed("unique-names") {
			uniqueNames = pasteUniqueNames
		}

		reader, err := clipboard.NewSystemReader()
		if err != nil {
			return errors.ClipboardUnavailableError(err)
		}

		logger.Debug().
			Str("run_id", uuid.NewString()).
			Str("dest_dir", args[0]).
			Str("work_dir", workDir).
			Msg("starting paste run")

		opts := paste.Options{
			DestDir:     args[0],
			WorkDir:     workDir,
			UniqueNames: uniqueNames,
		}
		return paste.Run(reader, opts, os.Stdout)
	},
}

func init() {
	pasteCmd.Flags().StringVar(&pasteWorkDir, "cd", "", "Working directory for resolving relative paths (env PASTECTL_WORK_DIR)")
	pasteCmd.Flags().BoolVar(&pasteUniqueNames, "unique-names", false, "Append a random suffix to artifact names")
}
