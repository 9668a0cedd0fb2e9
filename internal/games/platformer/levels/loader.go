// Package levels provides level loading for the platformer.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned by LoadByID for an unknown level ID.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Order    int
	Grid     *core.Level
	FilePath string
}

// Loader handles loading levels from a file system.
type Loader struct {
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader creates a loader over fsys. Paths passed to LoadFile are
// relative to the root of fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, logger: log.Default()}
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// Builtin returns a loader for the embedded campaign.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return NewLoader(sub)
}

// WithLogger sets the logger used for skipped-file warnings.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped with a warning. Levels are sorted by order,
// then by ID; when two files share an ID the first one in that order wins.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := l.walk(func(p string) {
		level, err := l.LoadFile(p)
		if err != nil {
			l.logger.Warn("skipping level file", "path", p, "err", err)
			return
		}
		levels = append(levels, level)
	})
	if err != nil {
		return nil, err
	}

	sortLevels(levels)

	seen := make(map[string]bool, len(levels))
	unique := levels[:0]
	for _, lvl := range levels {
		if seen[lvl.ID] {
			l.logger.Warn("duplicate level id", "id", lvl.ID, "path", lvl.FilePath)
			continue
		}
		seen[lvl.ID] = true
		unique = append(unique, lvl)
	}
	return unique, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, p)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	grid, err := core.ParseLevel(parsed.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if !grid.HasPlayer() {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, core.ErrMissingPlayer)
	}
	grid.ID = parsed.ID
	grid.Name = parsed.Name

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Order:    parsed.Order,
		Grid:     grid,
		FilePath: p,
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

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in campaign order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Problem is one invalid level file reported by Validate.
type Problem struct {
	Path string
	Err  error
}

// Validate loads every level file and reports each one that fails.
// A nil slice means every file is valid.
func (l *Loader) Validate() ([]Problem, error) {
	var problems []Problem
	err := l.walk(func(p string) {
		if _, err := l.LoadFile(p); err != nil {
			problems = append(problems, Problem{Path: p, Err: err})
		}
	})
	return problems, err
}

// walk calls fn for every supported file under the loader root.
func (l *Loader) walk(fn func(p string)) error {
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}
		fn(p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking levels: %w", err)
	}
	return nil
}

func sortLevels(levels []Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, p string) (formats.Level, error) {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return formats.ParseYAML(data, p)
	case ".txt":
		return formats.ParseText(data, p)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", path.Ext(p))
	}
}
