// Package config provides YAML-based configuration loading for the
// platformer.
package config

import "fmt"

// PlatformerConfig contains all user-tunable settings of the platformer.
// Physics constants and driver timing are not configurable.
type PlatformerConfig struct {
	Input  InputConfig  `yaml:"input"`
	Render RenderConfig `yaml:"render"`
	Levels LevelsConfig `yaml:"levels"`
}

// InputConfig defines how terminal key presses turn into held keys.
type InputConfig struct {
	// HoldWindow is how long, in seconds, a direction stays held after its
	// last press or auto-repeat event. Terminals never report key releases.
	HoldWindow float64 `yaml:"hold_window"`
}

// RenderConfig defines how grid units map to terminal characters.
type RenderConfig struct {
	CellWidth  int `yaml:"cell_width"`  // Characters per grid unit horizontally
	CellHeight int `yaml:"cell_height"` // Characters per grid unit vertically
}

// LevelsConfig defines where levels come from.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`   // Directory of level files; empty uses the built-in campaign
	Start string `yaml:"start"` // ID of the first level to play; empty starts at the beginning
}

// Validate checks the configuration for values the game cannot run with.
func (c PlatformerConfig) Validate() error {
	if c.Input.HoldWindow <= 0 || c.Input.HoldWindow > 1 {
		return fmt.Errorf("config: input.hold_window must be in (0, 1], got %v", c.Input.HoldWindow)
	}
	if c.Render.CellWidth < 1 || c.Render.CellWidth > 4 {
		return fmt.Errorf("config: render.cell_width must be in [1, 4], got %d", c.Render.CellWidth)
	}
	if c.Render.CellHeight < 1 || c.Render.CellHeight > 4 {
		return fmt.Errorf("config: render.cell_height must be in [1, 4], got %d", c.Render.CellHeight)
	}
	return nil
}

// fillDefaults replaces zero values left by a partial YAML file.
func (c *PlatformerConfig) fillDefaults() {
	def := DefaultPlatformerConfig()
	if c.Input.HoldWindow == 0 {
		c.Input.HoldWindow = def.Input.HoldWindow
	}
	if c.Render.CellWidth == 0 {
		c.Render.CellWidth = def.Render.CellWidth
	}
	if c.Render.CellHeight == 0 {
		c.Render.CellHeight = def.Render.CellHeight
	}
}
