package levels_test

import (
	"errors"
	"io"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

func testFS() fstest.MapFS {
	fsys := fstest.MapFS{}
	add := func(name, data string) {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}

	add("b.yaml", "id: second\nname: Second\norder: 2\nrows: |\n  @.o\n  ###\n")
	add("a.yaml", "id: first\nname: First\norder: 1\nrows: |\n  @o.\n  ###\n")
	add("extra/bonus.txt", "@.o.o\n#####\n")
	add("broken.yaml", "id: broken\nrows: |\n  @..\n  ##\n")
	add("noplayer.yml", "id: noplayer\nrows: |\n  ..o\n  ###\n")
	add("README.md", "not a level")
	return fsys
}

func quietLoader(fsys fstest.MapFS) *levels.Loader {
	return levels.NewLoader(fsys).WithLogger(log.New(io.Discard))
}

func TestLoaderLoadAll(t *testing.T) {
	lvls, err := quietLoader(testFS()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	want := []string{"bonus", "first", "second"}
	if len(lvls) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(lvls))
	}
	for i, id := range want {
		if lvls[i].ID != id {
			t.Errorf("level %d = %q, expected %q", i, lvls[i].ID, id)
		}
	}
}

func TestLoaderLoadFile(t *testing.T) {
	lvl, err := quietLoader(testFS()).LoadFile("a.yaml")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if lvl.Name != "First" || lvl.Order != 1 || lvl.FilePath != "a.yaml" {
		t.Errorf("unexpected metadata: %+v", lvl)
	}
	if lvl.Grid.Width != 3 || lvl.Grid.Height != 2 {
		t.Errorf("expected 3x2, got %dx%d", lvl.Grid.Width, lvl.Grid.Height)
	}
	if lvl.Grid.ID != "first" {
		t.Errorf("grid ID = %q, expected first", lvl.Grid.ID)
	}
}

func TestLoaderLoadFileErrors(t *testing.T) {
	loader := quietLoader(testFS())

	_, err := loader.LoadFile("broken.yaml")
	var fe *core.LevelFormatError
	if !errors.As(err, &fe) || fe.Code != core.CodeRaggedRow {
		t.Errorf("expected ragged row error, got %v", err)
	}

	_, err = loader.LoadFile("noplayer.yml")
	if !errors.Is(err, core.ErrMissingPlayer) {
		t.Errorf("expected ErrMissingPlayer, got %v", err)
	}

	if _, err := loader.LoadFile("missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := quietLoader(testFS())

	lvl, err := loader.LoadByID("bonus")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.FilePath != "extra/bonus.txt" {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}

	if _, err := loader.LoadByID("nope"); !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"one.yaml": {Data: []byte("id: same\nname: One\norder: 1\nrows: |\n  @o\n")},
		"two.yaml": {Data: []byte("id: same\nname: Two\norder: 2\nrows: |\n  @o\n")},
	}

	lvls, err := quietLoader(fsys).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 1 || lvls[0].Name != "One" {
		t.Errorf("expected only the first duplicate, got %+v", lvls)
	}
}

func TestLoaderValidate(t *testing.T) {
	problems, err := quietLoader(testFS()).Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	got := map[string]bool{}
	for _, p := range problems {
		got[p.Path] = true
	}
	if len(problems) != 2 || !got["broken.yaml"] || !got["noplayer.yml"] {
		t.Errorf("unexpected problems: %+v", problems)
	}
}

func TestBuiltinCampaign(t *testing.T) {
	loader := levels.Builtin().WithLogger(log.New(io.Discard))

	problems, err := loader.Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	for _, p := range problems {
		t.Errorf("builtin level %s invalid: %v", p.Path, p.Err)
	}

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	want := []string{"first-steps", "stepping-stones", "drip-cave", "lava-lake"}
	if len(ids) != len(want) {
		t.Fatalf("ListIDs() = %v, expected %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ListIDs()[%d] = %q, expected %q", i, ids[i], want[i])
		}
	}

	for _, id := range ids {
		lvl, err := loader.LoadByID(id)
		if err != nil {
			t.Fatalf("LoadByID(%q) failed: %v", id, err)
		}
		w, err := core.NewWorld(lvl.Grid, nil)
		if err != nil {
			t.Fatalf("NewWorld(%q) failed: %v", id, err)
		}
		if w.CoinsLeft() == 0 {
			t.Errorf("level %q has no coins", id)
		}
	}
}
