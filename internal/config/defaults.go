package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Input: InputConfig{
			HoldWindow: 0.15,
		},
		Render: RenderConfig{
			CellWidth:  2,
			CellHeight: 1,
		},
	}
}
