// Package catalog holds the portfolio content the desktop presents: the
// owner profile, contact links, dock apps, projects and terminal commands.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtin []byte

// Catalog is the full content set.
type Catalog struct {
	Owner      Owner     `yaml:"owner"`
	Contact    []Contact `yaml:"contact"`
	Apps       []App     `yaml:"apps"`
	Portfolios []Link    `yaml:"portfolios"`
	Projects   []Project `yaml:"projects"`
	Commands   []Command `yaml:"commands"`
}

// Owner is the person the portfolio belongs to.
type Owner struct {
	Name         string       `yaml:"name"`
	Role         string       `yaml:"role"`
	User         string       `yaml:"user"`
	Host         string       `yaml:"host"`
	Summary      string       `yaml:"summary"`
	Experience   []Experience `yaml:"experience"`
	Education    Education    `yaml:"education"`
	Achievements []string     `yaml:"achievements"`
}

// Experience is one job.
type Experience struct {
	Title  string   `yaml:"title"`
	Org    string   `yaml:"org"`
	Period string   `yaml:"period"`
	Points []string `yaml:"points"`
}

// Education is the owner's degree.
type Education struct {
	Degree string `yaml:"degree"`
	School string `yaml:"school"`
	Period string `yaml:"period"`
}

// Contact is one way to reach the owner.
type Contact struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	URL   string `yaml:"url"`
}

// App is a system app shown in the dock.
type App struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Link is a titled URL.
type Link struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Position is a desktop cell.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Project is a portfolio project. Each one gets a desktop icon and its own
// window.
type Project struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"`
	Status      string   `yaml:"status"`
	Icon        Position `yaml:"icon"`
	Description string   `yaml:"description"`
	Stack       []string `yaml:"stack"`
	Features    []string `yaml:"features"`
	Repo        string   `yaml:"repo"`
	Demo        string   `yaml:"demo"`
}

// Command is a terminal command. Commands without Output are computed from
// the rest of the catalog.
type Command struct {
	Name   string `yaml:"name"`
	About  string `yaml:"about"`
	Output string `yaml:"output"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that ids are present and unique across apps and projects.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	check := func(kind, id, name string) {
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("%s %q has no id", kind, name))
		case seen[id]:
			errs = append(errs, fmt.Errorf("duplicate id %q", id))
		case name == "":
			errs = append(errs, fmt.Errorf("%s %q has no name", kind, id))
		}
		seen[id] = true
	}
	for _, a := range c.Apps {
		check("app", a.ID, a.Name)
	}
	for _, p := range c.Projects {
		check("project", p.ID, p.Name)
	}
	cmds := make(map[string]bool)
	for _, cmd := range c.Commands {
		if cmd.Name == "" || cmds[cmd.Name] {
			errs = append(errs, fmt.Errorf("bad or duplicate command %q", cmd.Name))
		}
		cmds[cmd.Name] = true
	}
	return errors.Join(errs...)
}

// App returns a dock app by id.
func (c *Catalog) App(id string) (App, bool) {
	for _, a := range c.Apps {
		if a.ID == id {
			return a, true
		}
	}
	return App{}, false
}

// Project returns a project by id.
func (c *Catalog) Project(id string) (Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// Command returns a terminal command by name.
func (c *Catalog) Command(name string) (Command, bool) {
	for _, cmd := range c.Commands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// Title returns the window title for an app or project id.
func (c *Catalog) Title(id string) string {
	if a, ok := c.App(id); ok {
		return a.Name
	}
	if p, ok := c.Project(id); ok {
		return p.Name
	}
	return id
}
