package clipboard

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/png"
	"strings"

	"pastectl/pkg/logger"

	atotto "github.com/atotto/clipboard"
	xclip "golang.design/x/clipboard"
)

// SystemReader reads the real system clipboard. The primary backend is
// golang.design/x/clipboard (text + image); when its display init fails, for
// example in a headless session, atotto/clipboard serves text-only reads via
// the platform paste utilities.
type SystemReader struct {
	textOnly bool
}

// NewSystemReader opens the system clipboard. It fails only when no backend
// can be initialised at all.
func NewSystemReader() (*SystemReader, error) {
	err := xclip.Init()
	if err == nil {
		return &SystemReader{}, nil
	}

	logger.Debug().Err(err).Msg("display clipboard unavailable, falling back to text-only backend")
	if atotto.Unsupported {
		return nil, err
	}
	return &SystemReader{textOnly: true}, nil
}

// Read resolves the snapshot in priority order: file list, image, text.
func (r *SystemReader) Read() (Snapshot, error) {
	if r.textOnly {
		return fallbackRead(atotto.ReadAll()), nil
	}

	text := string(xclip.Read(xclip.FmtText))
	if files, ok := ParseFileList(text); ok {
		return Snapshot{Kind: KindFileList, Files: files}, nil
	}

	if data := xclip.Read(xclip.FmtImage); len(data) > 0 {
		if img, ok := decodeImage(data); ok {
			return Snapshot{Kind: KindImage, Image: img}, nil
		}
		// Undecodable image data is a dispatch miss, not a fatal error.
		logger.Debug().Int("bytes", len(data)).Msg("clipboard image data did not decode, trying text")
	}

	return classifyText(text), nil
}

// fallbackRead maps the text-only backend's result onto the snapshot model.
// A failed text query is a content miss (nothing usable on the clipboard),
// not a clipboard failure; the backend itself was already opened at
// construction time.
func fallbackRead(text string, err error) Snapshot {
	if err != nil {
		logger.Debug().Err(err).Msg("text query failed, treating clipboard as empty")
		return Snapshot{Kind: KindEmpty}
	}
	return classifyText(text)
}

func classifyText(text string) Snapshot {
	if files, ok := ParseFileList(text); ok {
		return Snapshot{Kind: KindFileList, Files: files}
	}
	if strings.TrimSpace(text) == "" {
		return Snapshot{Kind: KindEmpty}
	}
	return Snapshot{Kind: KindText, Text: text}
}

// decodeImage turns the backend's PNG bytes into the raw RGBA buffer the
// snapshot model carries.
func decodeImage(data []byte) (Image, bool) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, false
	}

	bounds := src.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    rgba.Pix,
	}, true
}
