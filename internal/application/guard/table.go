// Package guard decides whether a page navigation proceeds or redirects,
// based on the route table and whether the visitor has a session.
package guard

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

// Route is one entry of the page route table.
type Route struct {
	Path     string `yaml:"path"`
	Name     string `yaml:"name"`
	Title    string `yaml:"title,omitempty"`
	Public   bool   `yaml:"public,omitempty"`
	Redirect string `yaml:"redirect,omitempty"`
}

// Table is the page route table plus the two paths the guard redirects to.
type Table struct {
	LoginPath   string  `yaml:"login"`
	DefaultPath string  `yaml:"default"`
	Routes      []Route `yaml:"routes"`

	byPath map[string]int
}

// DefaultTable returns the embedded route table.
func DefaultTable() (*Table, error) {
	return Parse(defaultRoutes)
}

// LoadTable reads the route table from path, falling back to the embedded
// table when path is empty.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML route table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}
	if err := t.index(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) index() error {
	if t.LoginPath == "" || t.DefaultPath == "" {
		return errors.New("routes: login and default paths are required")
	}
	t.byPath = make(map[string]int, len(t.Routes))
	for i, r := range t.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("routes: path %q must be absolute", r.Path)
		}
		if _, dup := t.byPath[r.Path]; dup {
			return fmt.Errorf("routes: duplicate path %q", r.Path)
		}
		t.byPath[r.Path] = i
	}
	i, ok := t.byPath[t.LoginPath]
	if !ok {
		return fmt.Errorf("routes: login path %q has no route", t.LoginPath)
	}
	if !t.Routes[i].Public {
		return fmt.Errorf("routes: login route %q must be public", t.LoginPath)
	}
	return nil
}

// Lookup returns the route registered for path.
func (t *Table) Lookup(path string) (Route, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return Route{}, false
	}
	return t.Routes[i], true
}

// IsPublic reports whether path is marked public. Unknown paths are not.
func (t *Table) IsPublic(path string) bool {
	r, ok := t.Lookup(path)
	return ok && r.Public
}
