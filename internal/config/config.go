package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"tagtree/pkg/tag"
)

// Config holds the options of a rewrite: which edits are applied to which
// tags and how the result is rendered
type Config struct {
	// Mode is the render mode: normal, start, end or self-closing
	Mode string `mapstructure:"mode"`

	// Document parses the input as a whole HTML document instead of a fragment
	Document bool `mapstructure:"document"`

	// Select applies the edits to the descendants matching this CSS selector
	// instead of the root tag
	Select string `mapstructure:"select"`

	// Extract outputs the selected tags instead of the whole tree
	Extract bool `mapstructure:"extract"`

	// Separator is written between extracted tags
	Separator string `mapstructure:"separator"`

	// Attributes to set, as name=value
	Attributes []string `mapstructure:"attributes"`

	// Data attributes to set, as key=value; keys get a data- prefix
	Data []string `mapstructure:"data"`

	// AddClasses and RemoveClasses are space-separated class lists
	AddClasses    []string `mapstructure:"add_classes"`
	RemoveClasses []string `mapstructure:"remove_classes"`

	// Styles to set, as property:value
	Styles []string `mapstructure:"styles"`

	// RemoveStyles lists style properties to drop
	RemoveStyles []string `mapstructure:"remove_styles"`

	// ReplaceExisting lets attribute, data and style edits overwrite values
	// already present
	ReplaceExisting bool `mapstructure:"replace_existing"`
}

// Default returns a configuration that re-renders the input unchanged
func Default() Config {
	return Config{
		Mode:            tag.Normal.String(),
		Separator:       "\n",
		ReplaceExisting: true,
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file on top of the
// defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config file %s", path)
	}

	raw := map[string]interface{}{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return cfg, errors.Errorf("unsupported config file format %q", ext)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Decode decodes a generic map into cfg, keeping the fields it does not set
func Decode(raw map[string]interface{}, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate checks the values of the configuration
func (c Config) Validate() error {
	if _, err := tag.ParseRenderMode(c.Mode); err != nil {
		return err
	}
	if c.Extract && c.Select == "" {
		return errors.New("extract requires a selector")
	}
	for _, attr := range c.Attributes {
		if _, _, err := SplitPair(attr, "="); err != nil {
			return errors.Wrap(err, "invalid attribute")
		}
	}
	for _, data := range c.Data {
		if _, _, err := SplitPair(data, "="); err != nil {
			return errors.Wrap(err, "invalid data attribute")
		}
	}
	for _, style := range c.Styles {
		if _, _, err := SplitPair(style, ":"); err != nil {
			return errors.Wrap(err, "invalid style")
		}
	}
	return nil
}

// SplitPair splits "key<sep>value" on the first separator. The key is
// trimmed and must not be empty.
func SplitPair(s, sep string) (string, string, error) {
	key, value, found := strings.Cut(s, sep)
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", errors.Errorf("%q is not of the form key%svalue", s, sep)
	}
	return key, value, nil
}
