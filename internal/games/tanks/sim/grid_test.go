package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

func testRewards() config.TanksRewards {
	return config.DefaultTanksConfig().Rewards
}

func TestGridObstaclesStartWithCastle(t *testing.T) {
	g := NewGrid([]Tile{
		TileAt(1, 1, TileBrick),
		TileAt(2, 1, TileGrass),
		TileAt(3, 1, TileWater),
		TileAt(4, 1, TileSteel),
		TileAt(5, 1, TileFrozen),
		TileAt(12, 24, TileBrick), // under the castle
		TileAt(6, 1, TileEmpty),
	}, testRewards())

	obs := g.Obstacles()
	require.Len(t, obs, 4)
	assert.Equal(t, CastleRect, obs[0])
	assert.Equal(t, TileAt(1, 1, TileBrick).Rect(), obs[1])
	assert.Equal(t, TileAt(3, 1, TileWater).Rect(), obs[2])
	assert.Equal(t, TileAt(4, 1, TileSteel).Rect(), obs[3])
	assert.Len(t, g.Tiles(), 5)
}

func TestGridHitTile(t *testing.T) {
	rw := testRewards()
	tests := []struct {
		name         string
		kind         TileKind
		power        int
		attributable bool
		wantStopped  bool
		wantDelta    float64
		wantRemains  bool
	}{
		{"brick by player", TileBrick, 1, true, true, rw.Brick, false},
		{"brick by enemy", TileBrick, 1, false, true, 0, false},
		{"steel weak", TileSteel, 1, true, true, -rw.SteelHit, true},
		{"steel strong", TileSteel, 2, true, true, rw.SteelBreak - rw.SteelHit, false},
		{"steel strong by enemy", TileSteel, 2, false, true, 0, false},
		{"water passes", TileWater, 2, true, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := TileAt(5, 5, tt.kind)
			g := NewGrid([]Tile{tile}, rw)

			stopped, delta := g.HitTile(tile.Pos, tt.power, tt.attributable)

			assert.Equal(t, tt.wantStopped, stopped)
			assert.InDelta(t, tt.wantDelta, delta, 1e-9)
			_, ok := g.Tile(tile.Pos)
			assert.Equal(t, tt.wantRemains, ok)
			if !tt.wantRemains {
				assert.False(t, g.ObstaclesAt(tile.Rect()))
			}
		})
	}
}

func TestGridCastleStopsButSurvives(t *testing.T) {
	g := NewGrid(nil, testRewards())

	for range 3 {
		stopped, delta := g.HitTile(CastleRect.TopLeft(), 2, true)
		assert.True(t, stopped)
		assert.Zero(t, delta)
	}
	assert.True(t, g.ObstaclesAt(CastleRect))
}

func TestGridGrassIsNotAnObstacle(t *testing.T) {
	g := NewGrid([]Tile{TileAt(3, 3, TileGrass)}, testRewards())

	assert.False(t, g.ObstaclesAt(TileAt(3, 3, TileGrass).Rect()))
	assert.Empty(t, g.overlapping(core.NewRect(3*TileSize, 3*TileSize, 6, 8)))
}

func TestGridBuildFortress(t *testing.T) {
	var tiles []Tile
	for _, p := range FortressPositions {
		tiles = append(tiles, Tile{Pos: p, Kind: TileBrick})
	}
	tiles = append(tiles, TileAt(0, 0, TileBrick))
	g := NewGrid(tiles, testRewards())

	g.BuildFortress(TileSteel)
	assert.Equal(t, 8, g.CountKind(TileSteel))
	assert.Equal(t, 1, g.CountKind(TileBrick))

	g.BuildFortress(TileBrick)
	assert.Equal(t, 0, g.CountKind(TileSteel))
	assert.Equal(t, 9, g.CountKind(TileBrick))
	assert.Len(t, g.Obstacles(), 10)
}

func TestGridToggleWater(t *testing.T) {
	g := NewGrid(nil, testRewards())
	assert.Equal(t, 0, g.WaterFrame())
	g.ToggleWater()
	assert.Equal(t, 1, g.WaterFrame())
	g.ToggleWater()
	assert.Equal(t, 0, g.WaterFrame())
}
