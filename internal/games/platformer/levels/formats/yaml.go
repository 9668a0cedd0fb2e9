// Package formats provides pluggable level file format parsers.
// A parser only extracts metadata and the raw grid text; the grid itself is
// validated by the engine.
package formats

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Order int    `yaml:"order,omitempty"`
	Rows  string `yaml:"rows"` // Literal block, one grid row per line
}

// Level is the format-independent result of parsing a level file.
type Level struct {
	ID    string
	Name  string
	Order int
	Rows  string
}

// ParseYAML parses a YAML level file. name is the file name, used for the ID
// and display name when the file omits them.
func ParseYAML(data []byte, name string) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(yl.Rows) == "" {
		return Level{}, fmt.Errorf("yaml level has no rows")
	}

	level := Level{
		ID:    yl.ID,
		Name:  yl.Name,
		Order: yl.Order,
		Rows:  yl.Rows,
	}
	fillDefaults(&level, name)
	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}

// fillDefaults derives missing ID and Name from the file name.
func fillDefaults(level *Level, name string) {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if level.ID == "" {
		level.ID = base
	}
	if level.Name == "" {
		level.Name = level.ID
	}
}
