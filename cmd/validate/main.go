package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <game-directory>\n", os.Args[0])
		os.Exit(1)
	}

	dir := os.Args[1]
	validator := &GameValidator{}

	if err := validator.validateDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Game directory is valid!")
}

// GameValidator checks a generated game directory against the house rules:
// all three files present, a canvas rendering surface, username capture
// backed by localStorage, and level/score logic in the script.
type GameValidator struct {
	errors []string
}

func (v *GameValidator) validateDir(dir string) error {
	fmt.Printf("Validating %s...\n", dir)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	v.errors = nil

	markup := v.readFile(dir, "index.html")
	style := v.readFile(dir, "style.css")
	script := v.readFile(dir, "game.js")

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", dir, strings.Join(v.errors, "\n"))
	}

	v.validateMarkup(markup)
	v.validateStyle(style)
	v.validateScript(script)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", dir, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *GameValidator) readFile(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		v.addError(fmt.Sprintf("missing artifact %s: %v", name, err))
		return ""
	}
	if strings.TrimSpace(string(data)) == "" {
		v.addError(fmt.Sprintf("artifact %s is empty", name))
	}
	return string(data)
}

func (v *GameValidator) validateMarkup(markup string) {
	if !strings.Contains(markup, "<canvas") {
		v.addError("index.html: no canvas element")
	}
	if !strings.Contains(markup, `id="username"`) {
		v.addError("index.html: no username input field")
	}
	if !strings.Contains(markup, "localStorage") {
		v.addError("index.html: username is not wired to localStorage")
	}
	if !strings.Contains(markup, "style.css") {
		v.addError("index.html: stylesheet is not linked")
	}
	if !strings.Contains(markup, "game.js") {
		v.addError("index.html: game script is not referenced")
	}
}

func (v *GameValidator) validateStyle(style string) {
	if !strings.Contains(style, ".level-popup") {
		v.addError("style.css: no level popup styles")
	}
}

func (v *GameValidator) validateScript(script string) {
	if !strings.Contains(script, "showLevelUp") {
		v.addError("game.js: no level-up popup logic")
	}
	if !strings.Contains(script, "score") {
		v.addError("game.js: no score logic")
	}
	if !strings.Contains(script, "level") {
		v.addError("game.js: no level logic")
	}
}

func (v *GameValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}
