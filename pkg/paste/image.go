package paste

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"pastectl/pkg/clipboard"
	"pastectl/pkg/errors"
	"pastectl/pkg/logger"
)

// materializeImage validates the raw RGBA buffer, encodes it as PNG into the
// destination directory and prints the Markdown image reference.
func materializeImage(img clipboard.Image, opts Options, w io.Writer) error {
	if len(img.Pix) != img.Width*img.Height*4 {
		return errors.InvalidImageBufferError(img.Width, img.Height, len(img.Pix))
	}

	grid, err := buildImage(img)
	if err != nil {
		return err
	}

	destDir := opts.resolve(opts.DestDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create destination directory", err)
	}

	name := opts.artifactName("img", "png")
	destPath := filepath.Join(destDir, name)

	out, err := os.Create(destPath)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create image file", err)
	}
	defer out.Close()

	if err := png.Encode(out, grid); err != nil {
		return errors.EncodeFailedError(err)
	}

	logger.Debug().Int("width", img.Width).Int("height", img.Height).Str("dest", destPath).Msg("encoded image")
	fmt.Fprintf(w, "![](%s)\n", destPath)
	return nil
}

// buildImage wraps the validated buffer in a pixel grid. The dimension check
// is defensive: a negative-by-negative pair can pass the length check with a
// positive product.
func buildImage(img clipboard.Image) (image.Image, error) {
	if img.Width <= 0 || img.Height <= 0 {
		return nil, errors.ImageDecodeFailedError(img.Width, img.Height)
	}

	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: 4 * img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}, nil
}
