package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/buildnotice/pkg/cli/config"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  error
		projects int
	}{
		{
			name: "valid catalog",
			content: `
[[project]]
name = "Nova"
model = "NV-1"
customer = "Initech"

[[project]]
name = "Lyra"
model = "LY-2"
`,
			projects: 2,
		},
		{
			name:    "empty file",
			content: ``,
		},
		{
			name: "missing name",
			content: `
[[project]]
model = "NV-1"
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "missing model",
			content: `
[[project]]
name = "Nova"
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "duplicate name ignoring case",
			content: `
[[project]]
name = "Nova"
model = "NV-1"

[[project]]
name = "nova"
model = "NV-2"
`,
			wantErr: config.ErrDuplicateProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "catalog.toml", tt.content)
			cfg, err := config.LoadAppConfiguration(path)
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			gt.Array(t, cfg.Projects).Length(tt.projects)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "none.toml"))
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})

	t.Run("malformed TOML", func(t *testing.T) {
		path := writeFile(t, "bad.toml", "[[project]\nname=")
		_, err := config.LoadAppConfiguration(path)
		gt.Value(t, err).NotNil()
	})
}

func TestAppConfig_ToCatalog(t *testing.T) {
	cfg := &config.AppConfig{Projects: []config.Project{
		{Name: "Nova", Model: "NV-1", Customer: "Initech"},
		{Name: "Lyra", Model: "LY-2"},
	}}
	catalog, err := cfg.ToCatalog()
	gt.NoError(t, err).Required()
	gt.Value(t, catalog.Names()).Equal([]string{"Nova", "Lyra"})

	p, ok := catalog.Lookup("NOVA")
	gt.Bool(t, ok).True()
	gt.Value(t, p).Equal(model.ProjectInfo{Name: "Nova", Model: "NV-1", Customer: "Initech"})
}

func TestCatalog_Configure(t *testing.T) {
	t.Run("built-in catalog when no path", func(t *testing.T) {
		catalog, err := config.NewCatalogForTest("").Configure()
		gt.NoError(t, err).Required()
		_, ok := catalog.Lookup("Orion")
		gt.Bool(t, ok).True()
	})

	t.Run("file replaces built-in catalog", func(t *testing.T) {
		path := writeFile(t, "catalog.toml", "[[project]]\nname = \"Nova\"\nmodel = \"NV-1\"\n")
		catalog, err := config.NewCatalogForTest(path).Configure()
		gt.NoError(t, err).Required()
		_, ok := catalog.Lookup("Orion")
		gt.Bool(t, ok).False()
		_, ok = catalog.Lookup("Nova")
		gt.Bool(t, ok).True()
	})
}
