package levels

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Read returns the raw bytes of a level, preferring the copy on disk under
// levels/ so edits show up without a rebuild.
func Read(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(diskLevelPath(clean)); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

// IsFileOf reports whether path is the file that Load(name) reads. The
// level's own name field plays no part.
func IsFileOf(path, name string) bool {
	clean := cleanLevelPath(name)
	if clean == "" || path == "" {
		return false
	}
	return filepath.Base(filepath.FromSlash(path)) == filepath.Base(filepath.FromSlash(clean))
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isLevelFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names
}

func cleanLevelPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "levels/")
	if !isLevelFile(s) {
		s += ".yaml"
	}
	return s
}

func diskLevelPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}

func isLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
