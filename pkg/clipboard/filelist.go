package clipboard

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"
)

// ParseFileList reports whether clipboard text represents a list of local
// files, and returns the resolved paths in order. Two encodings are
// recognised: a JSON array of paths (used by some clipboard managers) and the
// newline-separated text/uri-list convention, where each entry is either a
// file:// URI or a plain path. Every entry must resolve to an existing file;
// a single miss rejects the whole list.
func ParseFileList(text string) ([]string, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	if paths, ok := parseJSONFileList(text); ok {
		return paths, true
	}

	var paths []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			// uri-list comment lines
			continue
		}

		path, ok := resolveEntry(line)
		if !ok {
			return nil, false
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		return nil, false
	}
	return paths, true
}

func parseJSONFileList(text string) ([]string, bool) {
	var entries []string
	if err := json.Unmarshal([]byte(text), &entries); err != nil || len(entries) == 0 {
		return nil, false
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path, ok := resolveEntry(entry)
		if !ok {
			return nil, false
		}
		paths = append(paths, path)
	}
	return paths, true
}

func resolveEntry(entry string) (string, bool) {
	path := entry
	if strings.HasPrefix(entry, "file://") {
		u, err := url.Parse(entry)
		if err != nil || u.Path == "" {
			return "", false
		}
		path = u.Path
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
