package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration file
type AppConfig struct {
	Projects []Project `toml:"project"`
}

// Project is one entry of the project catalog
type Project struct {
	Name     string `toml:"name"`
	Model    string `toml:"model"`
	Customer string `toml:"customer" masq:"secret"`
}

// Validate checks if the Project is valid
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return goerr.Wrap(ErrMissingName, "project name is required")
	}
	if strings.TrimSpace(p.Model) == "" {
		return goerr.Wrap(ErrInvalidConfig, "project model is required", goerr.V(ProjectNameKey, p.Name))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	names := make(map[string]bool)
	for i, p := range a.Projects {
		if err := p.Validate(); err != nil {
			return goerr.Wrap(err, "invalid project", goerr.V(ProjectIndexKey, i))
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if names[key] {
			return goerr.Wrap(ErrDuplicateProject, "duplicate project",
				goerr.V(ProjectNameKey, p.Name),
				goerr.V(ProjectIndexKey, i))
		}
		names[key] = true
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// ToCatalog converts AppConfig to a domain project catalog
func (a *AppConfig) ToCatalog() (*model.ProjectCatalog, error) {
	catalog := model.NewProjectCatalog()
	for _, p := range a.Projects {
		if err := catalog.Register(model.ProjectInfo{
			Name:     p.Name,
			Model:    p.Model,
			Customer: p.Customer,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to register project", goerr.V(ProjectNameKey, p.Name))
		}
	}
	return catalog, nil
}

// Catalog holds the --project-catalog flag
type Catalog struct {
	path string
}

// Flags returns CLI flags for the project catalog
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project-catalog",
			Aliases:     []string{"p"},
			Usage:       "Path to TOML project catalog (built-in catalog if omitted)",
			Sources:     cli.EnvVars("BUILDNOTICE_PROJECT_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Configure loads the project catalog, falling back to the built-in one
func (c *Catalog) Configure() (*model.ProjectCatalog, error) {
	if c.path == "" {
		return model.DefaultProjectCatalog(), nil
	}

	cfg, err := LoadAppConfiguration(c.path)
	if err != nil {
		return nil, err
	}
	return cfg.ToCatalog()
}
