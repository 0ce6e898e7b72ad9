package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ProjectInfo holds the values auto-filled when a project is selected
type ProjectInfo struct {
	Name     string
	Model    string
	Customer string `masq:"secret"`
}

// ProjectCatalog is the static project lookup table. Names are matched
// case-insensitively.
type ProjectCatalog struct {
	entries map[string]ProjectInfo
	order   []string // preserves registration order
}

// NewProjectCatalog creates a new empty ProjectCatalog
func NewProjectCatalog() *ProjectCatalog {
	return &ProjectCatalog{
		entries: make(map[string]ProjectInfo),
	}
}

// DefaultProjectCatalog returns the built-in catalog
func DefaultProjectCatalog() *ProjectCatalog {
	c := NewProjectCatalog()
	for _, p := range []ProjectInfo{
		{Name: "Orion", Model: "OR-200", Customer: "Acme Robotics"},
		{Name: "Atlas", Model: "AT-110", Customer: "Northwind Aerospace"},
		{Name: "Helix", Model: "HX-3", Customer: "Contoso Medical"},
		{Name: "Vega", Model: "VG-7", Customer: "Globex Energy"},
	} {
		_ = c.Register(p)
	}
	return c
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a project entry to the catalog
func (c *ProjectCatalog) Register(p ProjectInfo) error {
	key := catalogKey(p.Name)
	if key == "" {
		return goerr.Wrap(ErrInvalidProject, "project name is required")
	}
	if _, exists := c.entries[key]; exists {
		return goerr.Wrap(ErrDuplicateProject, "project already registered",
			goerr.V(ProjectNameKey, p.Name))
	}
	p.Name = strings.TrimSpace(p.Name)
	c.order = append(c.order, key)
	c.entries[key] = p
	return nil
}

// Lookup returns the auto-fill values of a project
func (c *ProjectCatalog) Lookup(name string) (ProjectInfo, bool) {
	if c == nil {
		return ProjectInfo{}, false
	}
	p, ok := c.entries[catalogKey(name)]
	return p, ok
}

// Get retrieves a project entry by name
func (c *ProjectCatalog) Get(name string) (ProjectInfo, error) {
	p, ok := c.Lookup(name)
	if !ok {
		return ProjectInfo{}, goerr.Wrap(ErrProjectNotFound, "project not found",
			goerr.V(ProjectNameKey, name))
	}
	return p, nil
}

// List returns all registered projects in registration order
func (c *ProjectCatalog) List() []ProjectInfo {
	result := make([]ProjectInfo, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, c.entries[key])
	}
	return result
}

// Names returns the registered project names in registration order
func (c *ProjectCatalog) Names() []string {
	names := make([]string, 0, len(c.order))
	for _, key := range c.order {
		names = append(names, c.entries[key].Name)
	}
	return names
}
