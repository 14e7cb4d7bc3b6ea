// Package paths resolves the project's working directories below an explicit
// root. Nothing here discovers the root on its own; callers pass it in
// (usually from config or the --root flag).
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dirs resolves storage and resource directories below Root.
type Dirs struct {
	Root string
}

// New returns Dirs rooted at the absolute form of root.
func New(root string) (*Dirs, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	return &Dirs{Root: abs}, nil
}

// Storage returns <root>/storage[/sub]. The directory is created only when
// create is true.
func (d *Dirs) Storage(sub string, create bool) (string, error) {
	dir := join(filepath.Join(d.Root, "storage"), sub)
	if create {
		if err := ensure(dir); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// Resource returns <root>/resource[/sub] without touching the filesystem.
func (d *Dirs) Resource(sub string) string {
	return join(filepath.Join(d.Root, "resource"), sub)
}

// Task returns <root>/storage/tasks[/sub], creating it if missing.
func (d *Dirs) Task(sub string) (string, error) {
	base, err := d.Storage("", false)
	if err != nil {
		return "", err
	}
	return ensured(join(filepath.Join(base, "tasks"), sub))
}

// Font returns <root>/resource/fonts[/sub], creating it if missing.
func (d *Dirs) Font(sub string) (string, error) {
	return ensured(join(d.Resource("fonts"), sub))
}

// Song returns <root>/resource/songs[/sub], creating it if missing.
func (d *Dirs) Song(sub string) (string, error) {
	return ensured(join(d.Resource("songs"), sub))
}

// Public returns <root>/resource/public[/sub], creating it if missing.
func (d *Dirs) Public(sub string) (string, error) {
	return ensured(join(d.Resource("public"), sub))
}

// ParseExtension returns the lower-cased extension of filename without the
// leading dot ("" when there is none).
func ParseExtension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func join(base, sub string) string {
	if sub == "" {
		return base
	}
	return filepath.Join(base, sub)
}

func ensured(dir string) (string, error) {
	if err := ensure(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func ensure(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
