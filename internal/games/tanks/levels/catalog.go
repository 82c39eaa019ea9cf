package levels

import "github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"

// Catalog is an ordered stage list. Stages past the end wrap around to the
// first level, so play continues indefinitely.
type Catalog struct {
	levels []Level
}

// NewCatalog creates a catalog from levels in play order.
func NewCatalog(levels []Level) *Catalog {
	return &Catalog{levels: levels}
}

// Level returns the tiles of stage (1-based).
func (c *Catalog) Level(stage int) ([]sim.Tile, bool) {
	lvl, ok := c.Stage(stage)
	if !ok {
		return nil, false
	}
	return lvl.Tiles, true
}

// Stage returns the level played as stage (1-based).
func (c *Catalog) Stage(stage int) (Level, bool) {
	if stage < 1 || len(c.levels) == 0 {
		return Level{}, false
	}
	return c.levels[(stage-1)%len(c.levels)], true
}

// Len returns the number of distinct levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Levels returns the levels in play order.
func (c *Catalog) Levels() []Level {
	return c.levels
}

var _ sim.LevelSource = (*Catalog)(nil)
