package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts a game title to a lowercase directory-safe name.
func Slug(title string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "game"
	}
	return s
}

// OutputDir returns the run's output directory under root, named from the
// game title with a timestamp suffix so repeated runs don't collide.
func OutputDir(root, title string, now time.Time) string {
	return filepath.Join(root, fmt.Sprintf("%s-%s", Slug(title), now.Format("20060102-150405")))
}

// Write commits the file set to dir. The three files are first written to a
// temporary sibling directory, which is renamed into place only once all of
// them are on disk. A failed run therefore never leaves a partial output
// directory behind.
func Write(fs *FileSet, dir string) error {
	if err := fs.Validate(); err != nil {
		return err
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	tmp, err := os.MkdirTemp(parent, ".gameforge-")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	for _, r := range Roles() {
		path := filepath.Join(tmp, r.Filename())
		if err := os.WriteFile(path, []byte(fs.Content(r)), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.Filename(), err)
		}
	}

	if err := os.Rename(tmp, dir); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
