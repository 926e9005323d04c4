// Package layoutcfg loads user preferences that cannot be read off the
// device: friendly layer names and the host keyboard layout used when
// decoding macro text.
package layoutcfg

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/adrg/xdg"

	"github.com/viawatch/viawatch/pkg/macro"
)

// Config holds the loaded preferences. Zero value means all defaults.
type Config struct {
	LayerNames  map[uint8]string
	MacroLayout macro.Layout
}

// fileConfig is the on-disk JSON shape. Keys are strings because JSON
// objects cannot have numeric keys; layer numbers are decimal, layout
// codes accept 0x-prefixed hex.
type fileConfig struct {
	LayerNames  map[string]string `json:"layer_names"`
	MacroLayout map[string]string `json:"macro_layout"`
}

var defaultLayerNames = map[uint8]string{
	0: "Base",
	1: "Game",
	2: "Lower",
	3: "Raise",
	4: "Adjust",
	5: "Mouse",
	6: "Extra",
}

// DefaultPath resolves the config location under the XDG config directory,
// creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.ConfigFile("viawatch/config.json")
}

// Load reads the config file at path. A missing file is not an error and
// yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("no config file, using defaults", slog.String("path", path))
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(fc.LayerNames) > 0 {
		cfg.LayerNames = make(map[uint8]string, len(fc.LayerNames))
		for key, name := range fc.LayerNames {
			layer, err := strconv.ParseUint(key, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("config %s: bad layer number %q: %w", path, key, err)
			}
			cfg.LayerNames[uint8(layer)] = name
		}
	}

	if len(fc.MacroLayout) > 0 {
		cfg.MacroLayout = make(macro.Layout, len(fc.MacroLayout))
		for key, s := range fc.MacroLayout {
			code, err := strconv.ParseUint(key, 0, 8)
			if err != nil {
				return nil, fmt.Errorf("config %s: bad layout code %q: %w", path, key, err)
			}
			runes := []rune(s)
			if len(runes) != 1 {
				return nil, fmt.Errorf("config %s: layout value %q must be a single character", path, s)
			}
			cfg.MacroLayout[uint8(code)] = runes[0]
		}
	}

	return cfg, nil
}

// LayerName returns the configured or built-in name for a layer, falling
// back to "Layer N".
func (c *Config) LayerName(layer uint8) string {
	if c != nil {
		if name, ok := c.LayerNames[layer]; ok {
			return name
		}
	}
	if name, ok := defaultLayerNames[layer]; ok {
		return name
	}
	return fmt.Sprintf("Layer %d", layer)
}
