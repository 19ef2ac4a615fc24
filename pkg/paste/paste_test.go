package paste

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"pastectl/pkg/clipboard"
	"pastectl/pkg/errors"
)

type stubReader struct {
	snap clipboard.Snapshot
	err  error
}

func (r stubReader) Read() (clipboard.Snapshot, error) {
	return r.snap, r.err
}

var fixedNow = time.Date(2024, 3, 15, 10, 30, 45, 123*int(time.Millisecond), time.UTC)

const fixedStamp = "20240315_103045_123"

func fixedClock() time.Time {
	return fixedNow
}

func writeSourceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	return path
}

func TestTimestamp(t *testing.T) {
	if got := timestamp(fixedNow); got != fixedStamp {
		t.Errorf("timestamp() = %q, want %q", got, fixedStamp)
	}

	// Non-UTC input must render in UTC.
	cet := time.FixedZone("CET", 3600)
	local := time.Date(2024, 3, 15, 11, 30, 45, 123*int(time.Millisecond), cet)
	if got := timestamp(local); got != fixedStamp {
		t.Errorf("timestamp(CET) = %q, want %q", got, fixedStamp)
	}
}

func TestRun_FileList_SingleFile(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "dest")
	src := writeSourceFile(t, srcDir, "notes.txt", "some notes")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{src}}}
	opts := Options{DestDir: destDir, Now: fixedClock}

	if err := Run(r, opts, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	destPath := filepath.Join(destDir, "notes_"+fixedStamp+".txt")
	data, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("Expected copied file at %s: %v", destPath, err)
	}
	if string(data) != "some notes" {
		t.Errorf("Copied content = %q, want %q", string(data), "some notes")
	}

	want := fmt.Sprintf("[notes](%s)\n", destPath)
	if out.String() != want {
		t.Errorf("Output = %q, want %q", out.String(), want)
	}
}

func TestRun_FileList_ImageMark(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := writeSourceFile(t, srcDir, "photo.JPG", "not really a jpeg")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{src}}}

	if err := Run(r, Options{DestDir: destDir, Now: fixedClock}, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	// Image extensions are matched case-insensitively but the copied name
	// keeps the original extension.
	destPath := filepath.Join(destDir, "photo_"+fixedStamp+".JPG")
	if _, err := os.Stat(destPath); err != nil {
		t.Fatalf("Expected copied file at %s: %v", destPath, err)
	}
	want := fmt.Sprintf("![photo](%s)\n", destPath)
	if out.String() != want {
		t.Errorf("Output = %q, want %q", out.String(), want)
	}
}

func TestRun_FileList_SpacesInStem(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := writeSourceFile(t, srcDir, "my notes.txt", "x")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{src}}}

	if err := Run(r, Options{DestDir: destDir, Now: fixedClock}, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	destPath := filepath.Join(destDir, "my_notes_"+fixedStamp+".txt")
	if _, err := os.Stat(destPath); err != nil {
		t.Fatalf("Expected copied file at %s: %v", destPath, err)
	}
	if !strings.HasPrefix(out.String(), "[my_notes](") {
		t.Errorf("Output = %q, want stem with underscores", out.String())
	}
}

func TestRun_FileList_InputOrder(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	a := writeSourceFile(t, srcDir, "a.txt", "a")
	b := writeSourceFile(t, srcDir, "b.md", "b")
	c := writeSourceFile(t, srcDir, "c.png", "c")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{a, b, c}}}

	if err := Run(r, Options{DestDir: destDir, Now: fixedClock}, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 output lines, got %d: %q", len(lines), out.String())
	}
	for i, prefix := range []string{"[a](", "[b](", "![c]("} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("Line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestRun_FileList_MissingExtension(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := writeSourceFile(t, srcDir, "README", "x")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{src}}}

	err := Run(r, Options{DestDir: destDir, Now: fixedClock}, &out)
	if err == nil {
		t.Fatal("Run() expected error for file without extension")
	}
	if !errors.IsExitCode(err, errors.ExitCodeValidation) {
		t.Errorf("Expected validation exit code, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestRun_FileList_AbortsOnFirstFailure(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	ok1 := writeSourceFile(t, srcDir, "first.txt", "1")
	missing := filepath.Join(srcDir, "gone.txt")
	ok2 := writeSourceFile(t, srcDir, "third.txt", "3")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{ok1, missing, ok2}}}

	err := Run(r, Options{DestDir: destDir, Now: fixedClock}, &out)
	if !errors.IsExitCode(err, errors.ExitCodeFileOperation) {
		t.Fatalf("Expected file-operation exit code, got %v", err)
	}

	// The file before the failure stays on disk, the one after is never attempted.
	if _, err := os.Stat(filepath.Join(destDir, "first_"+fixedStamp+".txt")); err != nil {
		t.Errorf("Expected first file to remain copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(destDir, "third_"+fixedStamp+".txt")); err == nil {
		t.Error("Expected third file to never be copied")
	}
	if got := strings.Count(out.String(), "\n"); got != 1 {
		t.Errorf("Expected exactly 1 output line before failure, got %d", got)
	}
}

func TestRun_Image_Valid(t *testing.T) {
	destDir := filepath.Join(t.TempDir(), "imgs")

	// 2x2 RGBA: red, green / blue, opaque white.
	pix := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	snap := clipboard.Snapshot{
		Kind:  clipboard.KindImage,
		Image: clipboard.Image{Width: 2, Height: 2, Pix: pix},
	}

	var out bytes.Buffer
	if err := Run(stubReader{snap: snap}, Options{DestDir: destDir, Now: fixedClock}, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	destPath := filepath.Join(destDir, "img_"+fixedStamp+".png")
	want := fmt.Sprintf("![](%s)\n", destPath)
	if out.String() != want {
		t.Errorf("Output = %q, want %q", out.String(), want)
	}

	f, err := os.Open(destPath)
	if err != nil {
		t.Fatalf("Expected PNG at %s: %v", destPath, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Produced file is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("PNG dimensions = %dx%d, want 2x2", img.Bounds().Dx(), img.Bounds().Dy())
	}

	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 || a>>8 != 255 {
		t.Errorf("Pixel (0,0) = (%d,%d,%d,%d), want opaque red", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestRun_Image_InvalidBuffer(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		pix    []byte
	}{
		{name: "short buffer", width: 2, height: 2, pix: make([]byte, 15)},
		{name: "long buffer", width: 2, height: 2, pix: make([]byte, 17)},
		{name: "zero dims with bytes", width: 0, height: 0, pix: make([]byte, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			destDir := filepath.Join(t.TempDir(), "dest")
			snap := clipboard.Snapshot{
				Kind:  clipboard.KindImage,
				Image: clipboard.Image{Width: tt.width, Height: tt.height, Pix: tt.pix},
			}

			var out bytes.Buffer
			err := Run(stubReader{snap: snap}, Options{DestDir: destDir, Now: fixedClock}, &out)
			if !errors.IsExitCode(err, errors.ExitCodeValidation) {
				t.Fatalf("Expected validation exit code, got %v", err)
			}
			if out.Len() != 0 {
				t.Errorf("Expected no output, got %q", out.String())
			}
			if _, statErr := os.Stat(destDir); statErr == nil {
				entries, _ := os.ReadDir(destDir)
				if len(entries) != 0 {
					t.Errorf("Expected no files written, found %d", len(entries))
				}
			}
		})
	}
}

func TestRun_Image_NonPositiveDimensions(t *testing.T) {
	// Passes the length check (0 == 0) but cannot form a pixel grid.
	snap := clipboard.Snapshot{
		Kind:  clipboard.KindImage,
		Image: clipboard.Image{Width: 0, Height: 0, Pix: nil},
	}

	var out bytes.Buffer
	err := Run(stubReader{snap: snap}, Options{DestDir: t.TempDir(), Now: fixedClock}, &out)
	if !errors.IsExitCode(err, errors.ExitCodeImage) {
		t.Fatalf("Expected image exit code, got %v", err)
	}
}

func TestRun_Text(t *testing.T) {
	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindText, Text: "hello"}}

	if err := Run(r, Options{DestDir: t.TempDir()}, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	want := "```\nhello\n```\n"
	if out.String() != want {
		t.Errorf("Output = %q, want %q", out.String(), want)
	}
}

func TestRun_Text_WhitespaceOnly(t *testing.T) {
	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindText, Text: "  \n\t "}}

	if err := Run(r, Options{DestDir: t.TempDir()}, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output for whitespace-only text, got %q", out.String())
	}
}

func TestRun_EmptyClipboard(t *testing.T) {
	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindEmpty}}

	if err := Run(r, Options{DestDir: t.TempDir()}, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output for empty clipboard, got %q", out.String())
	}
}

func TestRun_ReaderError(t *testing.T) {
	var out bytes.Buffer
	r := stubReader{err: fmt.Errorf("no display")}

	err := Run(r, Options{DestDir: t.TempDir()}, &out)
	if !errors.IsExitCode(err, errors.ExitCodeClipboard) {
		t.Fatalf("Expected clipboard exit code, got %v", err)
	}
}

func TestRun_WorkDirResolution(t *testing.T) {
	workDir := t.TempDir()
	writeSourceFile(t, workDir, "rel.txt", "relative")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{"rel.txt"}}}
	opts := Options{DestDir: "out", WorkDir: workDir, Now: fixedClock}

	if err := Run(r, opts, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	destPath := filepath.Join(workDir, "out", "rel_"+fixedStamp+".txt")
	if _, err := os.Stat(destPath); err != nil {
		t.Fatalf("Expected copy under work dir at %s: %v", destPath, err)
	}
}

func TestRun_UniqueNames(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	a := writeSourceFile(t, srcDir, "report.txt", "a")
	b := writeSourceFile(t, srcDir, "report.txt.bak", "b")

	var out bytes.Buffer
	r := stubReader{snap: clipboard.Snapshot{Kind: clipboard.KindFileList, Files: []string{a, b}}}
	opts := Options{DestDir: destDir, Now: fixedClock, UniqueNames: true}

	if err := Run(r, opts, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatalf("Failed to read dest dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 artifacts, got %d", len(entries))
	}

	// Same fixed clock for both artifacts; the random fragment keeps the
	// names apart.
	pattern := regexp.MustCompile(`^report(\.txt)?_` + fixedStamp + `_[0-9a-f]{8}\.(txt|bak)$`)
	for _, entry := range entries {
		if !pattern.MatchString(entry.Name()) {
			t.Errorf("Artifact name %q does not match %v", entry.Name(), pattern)
		}
	}
	if entries[0].Name() == entries[1].Name() {
		t.Errorf("Expected distinct artifact names, both are %q", entries[0].Name())
	}
}

func TestRun_Image_UniqueName(t *testing.T) {
	destDir := t.TempDir()
	pix := make([]byte, 4)
	pix[3] = 255
	snap := clipboard.Snapshot{
		Kind:  clipboard.KindImage,
		Image: clipboard.Image{Width: 1, Height: 1, Pix: pix},
	}

	var out bytes.Buffer
	opts := Options{DestDir: destDir, Now: fixedClock, UniqueNames: true}
	if err := Run(stubReader{snap: snap}, opts, &out); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	pattern := regexp.MustCompile(`^img_` + fixedStamp + `_[0-9a-f]{8}\.png$`)
	entries, _ := os.ReadDir(destDir)
	if len(entries) != 1 || !pattern.MatchString(entries[0].Name()) {
		t.Errorf("Expected one PNG matching %v, got %v", pattern, entries)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantStem string
		wantExt  string
		wantCode errors.ExitCode
	}{
		{name: "simple", path: "/tmp/notes.txt", wantStem: "notes", wantExt: "txt"},
		{name: "spaces replaced", path: "my file.tar", wantStem: "my_file", wantExt: "tar"},
		{name: "multiple dots", path: "archive.tar.gz", wantStem: "archive.tar", wantExt: "gz"},
		{name: "no extension", path: "/tmp/README", wantCode: errors.ExitCodeValidation},
		{name: "hidden file", path: ".gitignore", wantCode: errors.ExitCodeValidation},
		{name: "trailing dot", path: "weird.", wantCode: errors.ExitCodeValidation},
		{name: "dot path", path: ".", wantCode: errors.ExitCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext, err := splitName(tt.path)
			if tt.wantCode != 0 {
				if !errors.IsExitCode(err, tt.wantCode) {
					t.Fatalf("splitName(%q) error = %v, want exit code %d", tt.path, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitName(%q) returned error: %v", tt.path, err)
			}
			if stem != tt.wantStem || ext != tt.wantExt {
				t.Errorf("splitName(%q) = (%q, %q), want (%q, %q)", tt.path, stem, ext, tt.wantStem, tt.wantExt)
			}
		})
	}
}
