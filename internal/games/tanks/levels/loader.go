// Package levels provides stage terrain for the tank arena.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels/formats"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

//go:embed data/*.yaml
var builtin embed.FS

// Level represents a complete stage definition.
type Level struct {
	ID       string
	Name     string
	Stage    int
	Tiles    []sim.Tile
	Metadata map[string]string
	FilePath string
}

// Loader handles loading levels from a file system tree.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader reading level files under root on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Builtin returns a loader over the levels shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtin, "data")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Loader{fsys: sub, root: "builtin"}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by stage, then ID, for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking levels in %s: %w", l.root, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Stage != levels[j].Stage {
			return levels[i].Stage < levels[j].Stage
		}
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Level{
		ID:       id,
		Name:     parsed.Name,
		Stage:    parsed.Stage,
		Tiles:    parsed.Tiles,
		Metadata: parsed.Metadata,
		FilePath: path,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// Catalog loads every level and wraps them for the engine.
func (l *Loader) Catalog() (*Catalog, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels in %s", l.root)
	}
	return NewCatalog(levels), nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, e := range formats.FormatExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}
