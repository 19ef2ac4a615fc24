// Package paste materializes a clipboard snapshot into a destination
// directory: referenced files are copied under timestamped names, raw images
// are encoded to PNG, and plain text is echoed inside a fenced block. One
// snapshot, one handler, no state between runs.
package paste

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"pastectl/pkg/clipboard"
	"pastectl/pkg/errors"
	"pastectl/pkg/logger"

	"github.com/google/uuid"
)

// Options configures a single pipeline run. WorkDir, when set, anchors the
// destination directory and any relative source paths; it is passed explicitly
// instead of mutating the process working directory so runs stay isolated.
type Options struct {
	DestDir string
	WorkDir string

	// UniqueNames appends a random per-artifact suffix after the timestamp,
	// trading the plain naming scheme for collision-proof names.
	UniqueNames bool

	// Now supplies timestamps for artifact names. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// resolve anchors a possibly-relative path at the configured working
// directory.
func (o Options) resolve(path string) string {
	if o.WorkDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.WorkDir, path)
}

// Run reads one snapshot and dispatches to the matching handler. An empty
// clipboard (including whitespace-only text) is a successful no-op.
func Run(r clipboard.Reader, opts Options, w io.Writer) error {
	snap, err := r.Read()
	if err != nil {
		return errors.ClipboardUnavailableError(err)
	}

	logger.Debug().Stringer("kind", snap.Kind).Msg("clipboard snapshot read")

	switch snap.Kind {
	case clipboard.KindFileList:
		return materializeFiles(snap.Files, opts, w)
	case clipboard.KindImage:
		return materializeImage(snap.Image, opts, w)
	case clipboard.KindText:
		if strings.TrimSpace(snap.Text) == "" {
			return nil
		}
		emitText(snap.Text, w)
		return nil
	default:
		return nil
	}
}

func emitText(text string, w io.Writer) {
	fmt.Fprintln(w, "```")
	fmt.Fprintln(w, text)
	fmt.Fprintln(w, "```")
}

// timestamp renders t as YYYYMMDD_HHMMSS_mmm in UTC. Millisecond precision
// keeps same-run artifact names distinct under normal clock resolution; it is
// a heuristic, not a guarantee.
func timestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s_%03d", t.Format("20060102_150405"), t.Nanosecond()/1e6)
}

// artifactName builds "<stem>_<timestamp>.<ext>", with a random per-artifact
// fragment after the timestamp when UniqueNames is on.
func (o Options) artifactName(stem, ext string) string {
	ts := timestamp(o.now())
	if o.UniqueNames {
		ts += "_" + uuid.NewString()[:8]
	}
	return fmt.Sprintf("%s_%s.%s", stem, ts, ext)
}
