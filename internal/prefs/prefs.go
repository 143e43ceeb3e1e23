// Package prefs keeps the terminal browser's theme and show sort between
// runs, in ~/.config/setlist/prefs.toml unless another path is given.
//
// Load never fails. A missing, unreadable or malformed file reads as the
// defaults, and an empty field or unknown sort key reads as that field's
// default. Save replaces the file atomically.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is what the browser remembers.
type Prefs struct {
	Theme string `toml:"theme"`
	// Sort is the last show sort key picked with s.
	Sort string `toml:"sort"`
}

const (
	defaultPrefsPath = "~/.config/setlist/prefs.toml"
	defaultTheme     = "Nightfox"
	defaultSort      = "date"
)

// sortKeys lists the values of query.SortKey.
var sortKeys = []string{"date", "title", "price"}

// Default returns the browser's initial look.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, Sort: defaultSort}
}

// DefaultPath returns the unexpanded default file location.
func DefaultPath() string {
	return defaultPrefsPath
}

// normalized trims both fields and replaces empty or unknown values with
// their defaults. Any non-empty theme is kept; the browser resolves names.
func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.Sort = strings.ToLower(strings.TrimSpace(p.Sort))
	if !slices.Contains(sortKeys, p.Sort) {
		p.Sort = defaultSort
	}
	return p
}

// Load returns the stored preferences, or defaults for anything it cannot
// read. The error is always nil.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := toml.Unmarshal(raw, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

// Save writes p through a temp file in the target directory and renames it
// into place.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	encoded, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmpName, resolved); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
