// Package prompt loads and composes suggestion prompt templates.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// Prompt names shipped with the binary.
const (
	Tagline    = "tagline"
	ThemeColor = "theme-color"
)

// ErrEmpty indicates a prompt file exists but contains no content.
var ErrEmpty = errors.New("prompt: empty prompt file")

// Context holds the values interpolated into prompt templates.
type Context struct {
	FullName   string
	Role       string
	Company    string
	Profession string
}

// Loader reads prompt templates from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads <name>.md files from fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads the prompt file for name.
func (l *Loader) Load(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("prompt: invalid prompt name %q", name)
	}

	data, err := fs.ReadFile(l.fsys, name+".md")
	if err != nil {
		return "", fmt.Errorf("prompt: loading %s: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	return string(data), nil
}

// Compose loads a prompt template and interpolates ctx into it.
// The result is trimmed; a trailing newline in the file is not sent.
func (l *Loader) Compose(name string, ctx Context) (string, error) {
	raw, err := l.Load(name)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", fmt.Errorf("prompt: parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("prompt: executing template %s: %w", name, err)
	}

	return strings.TrimSpace(buf.String()), nil
}
