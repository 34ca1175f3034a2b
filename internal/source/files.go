package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects the files scanned when a directory is given.
const DefaultPattern = "**/*.{txt,md,markdown}"

// IsMarkdown reports whether path names a Markdown file.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ReadFile reads path into an Input, reducing Markdown files to prose.
// The size limit applies to the raw file.
func ReadFile(path string, maxLen int) (Input, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Input{}, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if maxLen > 0 && info.Size() > int64(maxLen) {
		return Input{}, fmt.Errorf("%s: %w: %d bytes exceeds limit of %d", path, ErrInputTooLarge, info.Size(), maxLen)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text := string(data)
	if IsMarkdown(path) {
		text = MarkdownText(data)
	}
	if err := Guard(text, 0); err != nil {
		return Input{}, fmt.Errorf("%s: %w", path, err)
	}
	return Input{Name: path, Text: text}, nil
}

// ExpandPaths resolves files, directories and glob patterns into a list of
// files. Directories are searched with pattern (DefaultPattern when empty),
// skipping hidden entries. Results keep argument order; files found inside
// one directory or glob are sorted. Duplicates are dropped.
func ExpandPaths(paths []string, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		if containsGlob(path) {
			matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("glob error for %s: %w", path, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match pattern: %s", path)
			}
			sort.Strings(matches)
			for _, m := range matches {
				add(m)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(path), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if isHidden(m) {
				continue
			}
			add(filepath.Join(path, filepath.FromSlash(m)))
		}
	}

	return files, nil
}

// containsGlob checks if a path contains glob characters.
func containsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// isHidden reports whether any element of a slash-separated relative path
// starts with a dot.
func isHidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
