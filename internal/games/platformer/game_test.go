package platformer

import (
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// Levels used by the driver tests. "a" and "b" are won on the first step,
// "lava" is always lost.
const (
	instantWin = "id: %s\nname: %s\norder: %d\nrows: |\n  ...\n  ...\n  .o.\n  .@.\n  ###\n"
	lavaPit    = "id: lava\nname: Lava Pit\norder: 9\nrows: |\n  ...\n  ...\n  .@.\n  .+.\n  ###\n"
)

func yamlLevel(id, name string, order int) string {
	return fmt.Sprintf(instantWin, id, name, order)
}

func testLoader(files map[string]string) *levels.Loader {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return levels.NewLoader(fsys).WithLogger(log.New(io.Discard))
}

func newTestGame(t *testing.T, mode Mode, files map[string]string) *Game {
	t.Helper()
	g := New(mode, Options{Loader: testLoader(files), Logger: log.New(io.Discard)})
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func twoWins() map[string]string {
	return map[string]string{
		"a.yaml": yamlLevel("a", "Alpha", 1),
		"b.yaml": yamlLevel("b", "Beta", 2),
	}
}

// runUntilEvent steps until an event is emitted and returns it with the
// number of steps taken.
func runUntilEvent(t *testing.T, g *Game, dt float64, in platformcore.InputFrame) (platformcore.Event, int) {
	t.Helper()
	for i := 1; i <= 1000; i++ {
		res := g.Step(dt, in)
		if len(res.Events) > 0 {
			if len(res.Events) != 1 {
				t.Fatalf("expected one event per step, got %d", len(res.Events))
			}
			return res.Events[0], i
		}
	}
	t.Fatal("no event after 1000 steps")
	return platformcore.Event{}, 0
}

func TestLingerThenAdvance(t *testing.T) {
	g := newTestGame(t, ModeCampaign, twoWins())

	res := g.Step(0.1, platformcore.NewInputFrame())
	if res.State.Status != "won" {
		t.Fatalf("Status = %q after first step, expected won", res.State.Status)
	}
	if res.State.LevelIndex != 0 || len(res.Events) != 0 {
		t.Fatal("level must linger before finishing")
	}

	ev, steps := runUntilEvent(t, g, 0.1, platformcore.NewInputFrame())
	// Eleven lingering steps bring the timer below zero, the next one finishes.
	if steps != 12 {
		t.Errorf("finished after %d more steps, expected 12", steps)
	}
	if ev.Kind != platformcore.EventLevelFinished || ev.LevelID != "a" || ev.Status != "won" || ev.Deaths != 0 {
		t.Errorf("unexpected event: %+v", ev)
	}
	if math.Abs(ev.Elapsed-1.2) > 1e-9 {
		t.Errorf("Elapsed = %v, expected 1.2", ev.Elapsed)
	}

	st := g.State()
	if st.LevelIndex != 1 || st.LevelID != "b" || st.Status != "playing" {
		t.Errorf("expected to advance to b, got %+v", st)
	}
	if st.Score != 1 {
		t.Errorf("Score = %d, expected 1", st.Score)
	}
}

func TestLossRetriesLevel(t *testing.T) {
	g := newTestGame(t, ModeCampaign, map[string]string{"lava.yaml": lavaPit})

	for death := 1; death <= 2; death++ {
		ev, _ := runUntilEvent(t, g, 1.0/30, platformcore.NewInputFrame())
		if ev.Status != "lost" || ev.Deaths != death {
			t.Errorf("attempt %d: unexpected event %+v", death, ev)
		}

		st := g.State()
		if st.LevelID != "lava" || st.Deaths != death || st.Status != "playing" || st.GameOver {
			t.Errorf("attempt %d: expected a fresh retry, got %+v", death, st)
		}
	}
}

func TestCampaignCompleteAndRestart(t *testing.T) {
	g := newTestGame(t, ModeCampaign, twoWins())

	var finished []string
	for len(finished) < 2 {
		ev, _ := runUntilEvent(t, g, 0.1, platformcore.NewInputFrame())
		finished = append(finished, ev.LevelID)
	}
	if finished[0] != "a" || finished[1] != "b" {
		t.Errorf("finished %v, expected [a b]", finished)
	}

	st := g.State()
	if !st.GameOver || st.Score != 2 {
		t.Fatalf("expected campaign over with score 2, got %+v", st)
	}

	// Further steps are inert until restart
	if res := g.Step(0.1, platformcore.NewInputFrame()); len(res.Events) != 0 || !res.State.GameOver {
		t.Error("finished campaign should not emit events")
	}

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionRestart)
	st = g.Step(0.1, in).State
	if st.GameOver || st.Score != 0 || st.LevelIndex != 0 || st.LevelID != "a" {
		t.Errorf("restart should start a new campaign, got %+v", st)
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, ModeCampaign, map[string]string{"lava.yaml": lavaPit})
	before := g.World()

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionRestart)
	g.Step(0.01, in)

	if g.World() == before {
		t.Error("restart during play should be treated as a normal step")
	}
}

func TestPracticeRepeatsLevel(t *testing.T) {
	g := newTestGame(t, ModePractice, twoWins())

	for i := 0; i < 3; i++ {
		ev, _ := runUntilEvent(t, g, 0.1, platformcore.NewInputFrame())
		if ev.LevelID != "a" || ev.Status != "won" {
			t.Errorf("run %d: unexpected event %+v", i, ev)
		}
	}

	st := g.State()
	if st.GameOver || st.LevelIndex != 0 || st.Score != 3 {
		t.Errorf("practice should keep replaying level a, got %+v", st)
	}
	if g.ID() != PracticeID {
		t.Errorf("ID() = %q, expected %q", g.ID(), PracticeID)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newTestGame(t, ModeCampaign, map[string]string{"lava.yaml": lavaPit})

	pause := platformcore.NewInputFrame()
	pause.Set(platformcore.ActionPause)

	if st := g.Step(0.1, pause).State; !st.Paused {
		t.Fatal("expected paused state")
	}
	frozen := g.World()
	for i := 0; i < 10; i++ {
		g.Step(0.1, platformcore.NewInputFrame())
	}
	if g.World() != frozen {
		t.Error("world advanced while paused")
	}

	if st := g.Step(0.1, pause).State; st.Paused {
		t.Error("second pause should resume")
	}
	if g.World() == frozen {
		t.Error("world should advance after resuming")
	}
}

func TestDeltaIsCapped(t *testing.T) {
	files := map[string]string{"lava.yaml": lavaPit}
	long := newTestGame(t, ModeCampaign, files)
	capped := newTestGame(t, ModeCampaign, files)

	long.Step(5, platformcore.NewInputFrame())
	capped.Step(core.MaxStep, platformcore.NewInputFrame())

	if long.World().Player() != capped.World().Player() {
		t.Errorf("long frame not capped: %+v vs %+v", long.World().Player(), capped.World().Player())
	}

	// Negative frame times are treated as zero
	g := newTestGame(t, ModeCampaign, files)
	start := g.World().Player()
	g.Step(-1, platformcore.NewInputFrame())
	if g.World().Player().Pos != start.Pos {
		t.Error("negative dt moved the player")
	}
}

func TestInputMovesPlayer(t *testing.T) {
	g := newTestGame(t, ModeCampaign, map[string]string{
		"run.txt": "..........\n..........\n..@..o....\n##########\n",
	})
	startX := g.World().Player().Pos.X

	right := platformcore.NewInputFrame()
	right.Set(platformcore.ActionRight)
	for i := 0; i < 5; i++ {
		g.Step(0.05, right)
	}

	if x := g.World().Player().Pos.X; x <= startX+1 {
		t.Errorf("player x = %v, expected it to move right from %v", x, startX)
	}
}

func TestStartLevel(t *testing.T) {
	g := New(ModeCampaign, Options{Loader: testLoader(twoWins()), Logger: log.New(io.Discard)})
	g.SetStartLevel("b")
	g.Reset(platformcore.DefaultConfig())
	if st := g.State(); st.LevelID != "b" || st.LevelIndex != 1 {
		t.Errorf("expected to start at b, got %+v", st)
	}

	g.SetStartLevel("missing")
	g.Reset(platformcore.DefaultConfig())
	if st := g.State(); st.LevelID != "a" {
		t.Errorf("unknown start level should fall back to the first, got %+v", st)
	}
}

func TestSeedDeterminism(t *testing.T) {
	files := map[string]string{"coins.txt": "@.o.o.o.o\n#########\n"}
	g1 := newTestGame(t, ModeCampaign, files)
	g2 := newTestGame(t, ModeCampaign, files)

	for i := 0; i < 20; i++ {
		g1.Step(1.0/60, platformcore.NewInputFrame())
		g2.Step(1.0/60, platformcore.NewInputFrame())
	}

	a1, a2 := g1.World().Actors(), g2.World().Actors()
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Errorf("actor %d differs for equal seeds", i)
		}
	}
}

func TestNoLevels(t *testing.T) {
	g := newTestGame(t, ModeCampaign, map[string]string{"broken.yaml": "id: x\n"})

	st := g.State()
	if !st.GameOver || g.World() != nil || st.LevelCount != 0 {
		t.Errorf("expected empty game over state, got %+v", st)
	}

	screen := platformcore.NewScreen(60, 16)
	g.Render(screen)
	if !strings.Contains(screen.String(), "No levels found") {
		t.Error("expected a no-levels message")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeCampaign, map[string]string{"lava.yaml": lavaPit})
	g.Resize(60, 16)

	screen := platformcore.NewScreen(60, 16)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Lava Pit") || !strings.Contains(hud, "Deaths: 0") {
		t.Errorf("HUD = %q", hud)
	}
	if footer := screen.Row(15); !strings.Contains(footer, "Jump") {
		t.Errorf("footer = %q", footer)
	}

	playerCell := platformcore.Cell{Rune: '█', Color: platformcore.ColorBrightBlue}
	var player, lava, wall bool
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			switch {
			case c == playerCell:
				player = true
			case c == lavaCell:
				lava = true
			case c == wallCell:
				wall = true
			}
		}
	}
	if !player || !lava || !wall {
		t.Errorf("missing sprites: player=%v lava=%v wall=%v\n%s", player, lava, wall, screen)
	}

	small := platformcore.NewScreen(20, 4)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Error("expected too-small message")
	}
}

func TestRenderPausedOverlay(t *testing.T) {
	g := newTestGame(t, ModeCampaign, map[string]string{"lava.yaml": lavaPit})
	pause := platformcore.NewInputFrame()
	pause.Set(platformcore.ActionPause)
	g.Step(0.1, pause)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("expected paused overlay")
	}
}
