package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

func TestParseLevelGrid(t *testing.T) {
	level, err := core.ParseLevel(`
#..+
#@o#
####`)
	if err != nil {
		t.Fatalf("ParseLevel() failed: %v", err)
	}

	if level.Width != 4 || level.Height != 3 {
		t.Fatalf("expected 4x3 level, got %dx%d", level.Width, level.Height)
	}

	testCases := []struct {
		x, y     int
		expected core.CellKind
	}{
		{0, 0, core.CellWall},
		{1, 0, core.CellEmpty},
		{3, 0, core.CellLava},
		{1, 1, core.CellEmpty}, // player marker
		{2, 1, core.CellEmpty}, // coin marker
		{3, 2, core.CellWall},
	}

	for _, tc := range testCases {
		if got := level.At(tc.x, tc.y); got != tc.expected {
			t.Errorf("At(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestParseLevelSpawns(t *testing.T) {
	level, err := core.ParseLevel("@o=|v\n.....")
	if err != nil {
		t.Fatalf("ParseLevel() failed: %v", err)
	}

	spawns := level.Spawns()
	if len(spawns) != 5 {
		t.Fatalf("expected 5 spawns, got %d", len(spawns))
	}

	expected := []struct {
		kind core.ActorKind
		char rune
		x    float64
	}{
		{core.KindPlayer, '@', 0},
		{core.KindCoin, 'o', 1},
		{core.KindHazard, '=', 2},
		{core.KindHazard, '|', 3},
		{core.KindHazard, 'v', 4},
	}

	for i, e := range expected {
		s := spawns[i]
		if s.Kind != e.kind || s.Char != e.char || s.Pos != core.V(e.x, 0) {
			t.Errorf("spawn %d = %+v, expected kind=%v char=%q pos=(%v,0)", i, s, e.kind, e.char, e.x)
		}
	}

	if !level.HasPlayer() {
		t.Error("HasPlayer() should be true")
	}
}

func TestParseLevelSpawnsCopy(t *testing.T) {
	level, err := core.ParseLevel("@o")
	if err != nil {
		t.Fatalf("ParseLevel() failed: %v", err)
	}

	spawns := level.Spawns()
	spawns[0].Pos = core.V(99, 99)

	if level.Spawns()[0].Pos != core.V(0, 0) {
		t.Error("Spawns() must not expose the level's internal slice")
	}
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
		row  int
		col  int
	}{
		{"empty", "", core.CodeEmpty, 0, -1},
		{"whitespace only", "\n  \n", core.CodeEmpty, 0, -1},
		{"ragged row", "@..\n..\n...", core.CodeRaggedRow, 1, -1},
		{"unknown character", "@..\n.x.", core.CodeUnknownChar, 1, 1},
		{"space inside row", "@ .", core.CodeUnknownChar, 0, 1},
		{"duplicate player", "@.@", core.CodeDuplicatePlayer, 0, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.ParseLevel(tc.text)
			if err == nil {
				t.Fatal("expected an error")
			}

			var fe *core.LevelFormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *LevelFormatError, got %T", err)
			}
			if fe.Code != tc.code {
				t.Errorf("Code = %s, expected %s", fe.Code, tc.code)
			}
			if fe.Row != tc.row || fe.Col != tc.col {
				t.Errorf("position = (%d, %d), expected (%d, %d)", fe.Row, fe.Col, tc.row, tc.col)
			}
			if fe.Error() == "" {
				t.Error("Error() should describe the failure")
			}
		})
	}
}

func TestParseLevelAcceptsCRLF(t *testing.T) {
	level, err := core.ParseLevel("@.\r\n##\r\n")
	if err != nil {
		t.Fatalf("ParseLevel() failed: %v", err)
	}
	if level.Width != 2 || level.Height != 2 {
		t.Errorf("expected 2x2 level, got %dx%d", level.Width, level.Height)
	}
}

func TestLevelOutsideIsWall(t *testing.T) {
	level, err := core.ParseLevel("@.\n..")
	if err != nil {
		t.Fatalf("ParseLevel() failed: %v", err)
	}

	outside := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}}
	for _, c := range outside {
		if got := level.At(c[0], c[1]); got != core.CellWall {
			t.Errorf("At(%d, %d) = %v, expected wall", c[0], c[1], got)
		}
	}
}

func TestCellKindString(t *testing.T) {
	if core.CellEmpty.String() != "empty" || core.CellWall.String() != "wall" || core.CellLava.String() != "lava" {
		t.Error("unexpected CellKind names")
	}
}
