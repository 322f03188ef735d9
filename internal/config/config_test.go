package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "normal", cfg.Mode)
	assert.True(t, cfg.ReplaceExisting)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "tagtree.yaml", `
mode: start
select: li.item
add_classes:
  - done
styles:
  - "color:red"
replace_existing: "false"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "start", cfg.Mode)
	assert.Equal(t, "li.item", cfg.Select)
	assert.Equal(t, []string{"done"}, cfg.AddClasses)
	assert.Equal(t, []string{"color:red"}, cfg.Styles)
	assert.False(t, cfg.ReplaceExisting)
	assert.Equal(t, "\n", cfg.Separator, "defaults are kept")
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "tagtree.toml", `
mode = "self-closing"
attributes = ["id=main", "role=banner"]
data = ["state=open"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "self-closing", cfg.Mode)
	assert.Equal(t, []string{"id=main", "role=banner"}, cfg.Attributes)
	assert.Equal(t, []string{"state=open"}, cfg.Data)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "tagtree.json", `{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	_, err = Load(writeFile(t, "tagtree.yaml", "mode: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "tagtree.yaml", "unknown_key: 1"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "default", modify: func(c *Config) {}},
		{name: "bad mode", modify: func(c *Config) { c.Mode = "pretty" }, wantErr: true},
		{name: "extract without select", modify: func(c *Config) { c.Extract = true }, wantErr: true},
		{name: "bad attribute", modify: func(c *Config) { c.Attributes = []string{"novalue"} }, wantErr: true},
		{name: "bad data", modify: func(c *Config) { c.Data = []string{"=x"} }, wantErr: true},
		{name: "bad style", modify: func(c *Config) { c.Styles = []string{"color=red"} }, wantErr: true},
		{name: "valid edits", modify: func(c *Config) {
			c.Attributes = []string{"id=a"}
			c.Styles = []string{"background:url(http://x)"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitPair(t *testing.T) {
	key, value, err := SplitPair(" href =/a=b", "=")
	require.NoError(t, err)
	assert.Equal(t, "href", key)
	assert.Equal(t, "/a=b", value)

	_, _, err = SplitPair("novalue", "=")
	assert.Error(t, err)
}
