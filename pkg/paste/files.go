package paste

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pastectl/pkg/errors"
	"pastectl/pkg/logger"
)

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
	"webp": true,
}

// materializeFiles copies each referenced file into the destination directory
// under a timestamped name and prints one Markdown reference per file, in
// input order. The first failure aborts the run; files copied before it stay
// on disk.
func materializeFiles(files []string, opts Options, w io.Writer) error {
	destDir := opts.resolve(opts.DestDir)

	for _, file := range files {
		src := opts.resolve(file)

		stem, ext, err := splitName(file)
		if err != nil {
			return err
		}

		mark := ""
		if imageExtensions[strings.ToLower(ext)] {
			mark = "!"
		}

		name := opts.artifactName(stem, ext)
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return errors.CopyFailedError(file, err)
		}
		destPath := filepath.Join(destDir, name)

		if err := copyFile(src, destPath); err != nil {
			return errors.CopyFailedError(file, err)
		}

		logger.Debug().Str("src", src).Str("dest", destPath).Msg("copied file")
		fmt.Fprintf(w, "%s[%s](%s)\n", mark, stem, destPath)
	}

	return nil
}

// splitName extracts the stem and extension of a path's final element. The
// stem has spaces replaced by underscores. A leading dot (hidden files) does
// not start an extension.
func splitName(path string) (stem, ext string, err error) {
	base := filepath.Base(path)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", "", errors.MissingFilenameError(path)
	}

	dot := strings.LastIndex(base, ".")
	if dot <= 0 || dot == len(base)-1 {
		return "", "", errors.MissingExtensionError(path)
	}

	stem = strings.ReplaceAll(base[:dot], " ", "_")
	return stem, base[dot+1:], nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
