package core

import (
	"fmt"
	"strings"
)

// CellKind is the static content of one grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellWall
	CellLava
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellLava:
		return "lava"
	default:
		return "unknown"
	}
}

// Legend characters.
const (
	CharEmpty     = '.'
	CharWall      = '#'
	CharLava      = '+'
	CharPlayer    = '@'
	CharCoin      = 'o'
	CharLavaHoriz = '='
	CharLavaVert  = '|'
	CharLavaDrip  = 'v'
)

// Spawn is an actor descriptor extracted from the level text.
// Pos is the top-left corner of the marker cell.
type Spawn struct {
	Kind ActorKind
	Char rune
	Pos  Vec
}

// Level is a parsed, immutable grid plus its initial actor spawns.
// A Level is shared read-only by every World built from it.
type Level struct {
	ID     string
	Name   string
	Width  int
	Height int

	rows   [][]CellKind
	spawns []Spawn
}

// ParseLevel builds a Level from rows of legend characters.
// Leading and trailing blank lines are ignored; every remaining row must have
// the same length and contain only legend characters.
func ParseLevel(text string) (*Level, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &LevelFormatError{Code: CodeEmpty, Row: 0, Col: -1, Message: "level has no rows"}
	}

	lines := strings.Split(text, "\n")
	level := &Level{
		Height: len(lines),
		rows:   make([][]CellKind, len(lines)),
	}

	players := 0
	for y, line := range lines {
		row := []rune(strings.TrimRight(line, "\r"))
		if y == 0 {
			level.Width = len(row)
		} else if len(row) != level.Width {
			return nil, &LevelFormatError{
				Code:    CodeRaggedRow,
				Row:     y,
				Col:     -1,
				Message: fmt.Sprintf("row has %d cells, expected %d", len(row), level.Width),
			}
		}

		level.rows[y] = make([]CellKind, len(row))
		for x, ch := range row {
			entry, ok := legend[ch]
			if !ok {
				return nil, &LevelFormatError{
					Code:    CodeUnknownChar,
					Row:     y,
					Col:     x,
					Message: fmt.Sprintf("unknown character %q", ch),
				}
			}
			level.rows[y][x] = entry.cell
			if !entry.spawn {
				continue
			}
			if entry.kind == KindPlayer {
				players++
				if players > 1 {
					return nil, &LevelFormatError{
						Code:    CodeDuplicatePlayer,
						Row:     y,
						Col:     x,
						Message: "level has more than one player spawn",
					}
				}
			}
			level.spawns = append(level.spawns, Spawn{
				Kind: entry.kind,
				Char: ch,
				Pos:  V(float64(x), float64(y)),
			})
		}
	}

	return level, nil
}

// legendEntry is what one legend character places in the grid.
type legendEntry struct {
	cell  CellKind
	spawn bool
	kind  ActorKind
}

var legend = map[rune]legendEntry{
	CharEmpty:     {cell: CellEmpty},
	CharWall:      {cell: CellWall},
	CharLava:      {cell: CellLava},
	CharPlayer:    {cell: CellEmpty, spawn: true, kind: KindPlayer},
	CharCoin:      {cell: CellEmpty, spawn: true, kind: KindCoin},
	CharLavaHoriz: {cell: CellEmpty, spawn: true, kind: KindHazard},
	CharLavaVert:  {cell: CellEmpty, spawn: true, kind: KindHazard},
	CharLavaDrip:  {cell: CellEmpty, spawn: true, kind: KindHazard},
}

// At returns the cell at (x, y). Anything outside the grid is a wall.
func (l *Level) At(x, y int) CellKind {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return CellWall
	}
	return l.rows[y][x]
}

// Spawns returns a copy of the actor descriptors in reading order.
func (l *Level) Spawns() []Spawn {
	out := make([]Spawn, len(l.spawns))
	copy(out, l.spawns)
	return out
}

// HasPlayer reports whether the level contains a player spawn.
func (l *Level) HasPlayer() bool {
	for _, s := range l.spawns {
		if s.Kind == KindPlayer {
			return true
		}
	}
	return false
}
