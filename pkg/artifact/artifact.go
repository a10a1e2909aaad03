package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/keerthikapopuri/gameforge/pkg/gamespec"
)

// Role identifies one of the three generated artifacts.
type Role string

const (
	RoleMarkup Role = "markup"
	RoleStyle  Role = "style"
	RoleScript Role = "script"
)

// Filename returns the on-disk name for the role.
func (r Role) Filename() string {
	switch r {
	case RoleMarkup:
		return "index.html"
	case RoleStyle:
		return "style.css"
	case RoleScript:
		return "game.js"
	}
	return string(r)
}

// Roles lists all artifact roles in write order.
func Roles() []Role {
	return []Role{RoleMarkup, RoleStyle, RoleScript}
}

// ErrMissingArtifact indicates the execution response did not contain all
// three artifacts. Nothing is written to disk when this is returned.
var ErrMissingArtifact = errors.New("missing artifact in model response")

// FileSet holds the content of the three generated files. All three must be
// populated before the set may be committed to disk.
type FileSet struct {
	Markup string
	Style  string
	Script string
}

// Content returns the file content for a role.
func (fs *FileSet) Content(r Role) string {
	switch r {
	case RoleMarkup:
		return fs.Markup
	case RoleStyle:
		return fs.Style
	case RoleScript:
		return fs.Script
	}
	return ""
}

// Validate checks that every role has non-empty content.
func (fs *FileSet) Validate() error {
	for _, r := range Roles() {
		if strings.TrimSpace(fs.Content(r)) == "" {
			return fmt.Errorf("%w: %s", ErrMissingArtifact, r.Filename())
		}
	}
	return nil
}

// Parse extracts the three artifacts from an execution-stage reply. The reply
// is expected to be a JSON object keyed by filename; surrounding code fences
// and prose are tolerated.
func Parse(response string) (*FileSet, error) {
	raw, err := gamespec.ExtractJSON(response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingArtifact, err)
	}

	var files map[string]string
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		return nil, fmt.Errorf("failed to parse game files: %w", err)
	}

	fs := &FileSet{
		Markup: files["index.html"],
		Style:  files["style.css"],
		Script: files["game.js"],
	}
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	return fs, nil
}
