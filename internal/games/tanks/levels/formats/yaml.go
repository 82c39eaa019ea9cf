// Package formats provides level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

// ErrBadLayout is returned when a layout is not a square of GridSize rows.
var ErrBadLayout = errors.New("bad layout")

// YAMLLevel represents the YAML structure for a level file.
// Layout holds one string per tile row, one character per tile.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Stage    int               `yaml:"stage"`
	Layout   []string          `yaml:"layout"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Stage    int
	Tiles    []sim.Tile
	Metadata map[string]string
}

// Legend maps layout characters to tile kinds.
var Legend = map[rune]sim.TileKind{
	'.': sim.TileEmpty,
	'#': sim.TileBrick,
	'@': sim.TileSteel,
	'~': sim.TileWater,
	'%': sim.TileGrass,
	'-': sim.TileFrozen,
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	tiles, err := ParseLayout(yl.Layout)
	if err != nil {
		return Level{}, err
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Stage:    yl.Stage,
		Tiles:    tiles,
		Metadata: yl.Metadata,
	}, nil
}

// ParseLayout converts layout rows into tiles in row-major order.
// Empty cells produce no tile.
func ParseLayout(rows []string) ([]sim.Tile, error) {
	if len(rows) != sim.GridSize {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBadLayout, len(rows), sim.GridSize)
	}

	var tiles []sim.Tile
	for row, line := range rows {
		cells := []rune(line)
		if len(cells) != sim.GridSize {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLayout, row, len(cells), sim.GridSize)
		}
		for col, ch := range cells {
			kind, ok := Legend[ch]
			if !ok {
				return nil, fmt.Errorf("%w: unknown tile %q at row %d col %d", ErrBadLayout, ch, row, col)
			}
			if kind == sim.TileEmpty {
				continue
			}
			tiles = append(tiles, sim.TileAt(col, row, kind))
		}
	}
	return tiles, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
