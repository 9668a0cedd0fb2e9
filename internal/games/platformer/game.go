// Package platformer provides the tile platformer for the arcade platform.
// The Game type is the frame driver around the pure engine in the core
// subpackage: it caps frame time, lingers on finished levels and sequences
// the campaign.
package platformer

import (
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Game IDs registered with the arcade registry.
const (
	CampaignID = "platformer"
	PracticeID = "platformer_practice"
)

// Mode selects what happens after a level is won.
type Mode int

const (
	ModeCampaign Mode = iota // Advance to the next level
	ModePractice             // Replay the same level
)

// Options configures new games.
type Options struct {
	Config config.PlatformerConfig
	Loader *levels.Loader // nil uses the built-in campaign
	Logger *log.Logger    // nil uses the default logger
}

// Package-level defaults for games created through the registry.
var (
	defaultsMu sync.RWMutex
	defaults   = Options{Config: config.DefaultPlatformerConfig()}
)

// Configure sets the options used by games created through the registry.
// Call it before the first game is created.
func Configure(o Options) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = o
}

func currentOptions() Options {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// LoadLevels returns the levels the registry games will play, in order.
func LoadLevels() ([]levels.Level, error) {
	return currentOptions().loader().LoadAll()
}

func (o Options) loader() *levels.Loader {
	if o.Loader != nil {
		return o.Loader
	}
	return levels.Builtin().WithLogger(o.logger())
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func init() {
	registry.Register(CampaignID, func() registry.Game {
		return New(ModeCampaign, currentOptions())
	})
	registry.Register(PracticeID, func() registry.Game {
		return New(ModePractice, currentOptions())
	})
}

// Game implements the platformer frame driver and level sequencer.
type Game struct {
	mode   Mode
	opts   Options
	rng    *rand.Rand
	levels []levels.Level

	// Current attempt
	index   int
	world   *core.World
	linger  float64 // Seconds left to animate once the world is terminal
	elapsed float64 // Simulated seconds in this attempt
	deaths  int     // Deaths on the current level

	// Run status
	score      int
	gameOver   bool
	paused     bool
	startLevel string
	runtime    platformcore.RuntimeConfig

	cam camera
}

// New creates a game in the given mode.
func New(mode Mode, opts Options) *Game {
	if opts.Config == (config.PlatformerConfig{}) {
		opts.Config = config.DefaultPlatformerConfig()
	}
	return &Game{
		mode:       mode,
		opts:       opts,
		startLevel: opts.Config.Levels.Start,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return PracticeID
	}
	return CampaignID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Platformer (practice)"
	}
	return "Platformer"
}

// SetStartLevel selects the level ID the next Reset starts at.
// An unknown ID starts at the first level.
func (g *Game) SetStartLevel(id string) {
	g.startLevel = id
}

// Reset loads the levels and starts the first attempt.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.index = 0
	g.world = nil

	lvls, err := g.opts.loader().LoadAll()
	if err != nil {
		g.opts.logger().Error("loading levels", "err", err)
	}
	g.levels = lvls
	if len(g.levels) == 0 {
		g.gameOver = true
		return
	}

	if g.startLevel != "" {
		found := false
		for i, lvl := range g.levels {
			if lvl.ID == g.startLevel {
				g.index = i
				found = true
				break
			}
		}
		if !found {
			g.opts.logger().Warn("unknown start level", "id", g.startLevel)
		}
	}

	g.deaths = 0
	g.startAttempt()
}

// startAttempt builds a fresh world for the current level.
func (g *Game) startAttempt() {
	lvl := g.levels[g.index]
	w, err := core.NewWorld(lvl.Grid, g.rng)
	if err != nil {
		// The loader rejects levels without a player.
		g.opts.logger().Error("starting level", "id", lvl.ID, "err", err)
		g.gameOver = true
		return
	}
	g.world = w
	g.linger = core.LingerTime
	g.elapsed = 0
	g.cam = camera{}
	g.cam.snap(w, g.viewport())
}

// Step advances the game by dt seconds of frame time.
func (g *Game) Step(dt float64, in platformcore.InputFrame) platformcore.StepResult {
	// Handle restart
	if in.Has(platformcore.ActionRestart) && g.gameOver {
		cfg := g.runtime
		cfg.Seed = g.rng.Int63()
		g.Reset(cfg)
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.world == nil {
		return platformcore.StepResult{State: g.State()}
	}

	dt = platformcore.ClampF(dt, 0, core.MaxStep)
	keys := core.KeyState{
		Left:  in.Has(platformcore.ActionLeft),
		Right: in.Has(platformcore.ActionRight),
		Up:    in.Has(platformcore.ActionUp),
		Down:  in.Has(platformcore.ActionDown),
	}

	var events []platformcore.Event
	switch {
	case g.world.Status() == core.StatusPlaying:
		g.advance(dt, keys)
	case g.linger > 0:
		g.advance(dt, keys)
		g.linger -= dt
	default:
		events = append(events, g.finishAttempt())
	}

	return platformcore.StepResult{State: g.State(), Events: events}
}

// advance steps the world and keeps the player in view.
func (g *Game) advance(dt float64, keys core.KeyState) {
	g.world = g.world.Step(dt, keys)
	g.elapsed += dt
	g.cam.follow(g.world, g.viewport())
}

// finishAttempt reports the ended attempt and moves on: a loss retries the
// level, a win advances the campaign or replays the level in practice mode.
func (g *Game) finishAttempt() platformcore.Event {
	lvl := g.levels[g.index]
	status := g.world.Status()

	if status == core.StatusLost {
		g.deaths++
	}
	ev := platformcore.Event{
		Kind:    platformcore.EventLevelFinished,
		LevelID: lvl.ID,
		Status:  status.String(),
		Elapsed: g.elapsed,
		Deaths:  g.deaths,
	}

	if status == core.StatusWon {
		g.score += coinCount(lvl)
		g.deaths = 0
		if g.mode == ModeCampaign {
			g.index++
		}
		if g.index >= len(g.levels) {
			g.gameOver = true
			return ev
		}
	}

	g.startAttempt()
	return ev
}

// coinCount returns the number of collectibles a level starts with.
func coinCount(lvl levels.Level) int {
	n := 0
	for _, s := range lvl.Grid.Spawns() {
		if s.Kind == core.KindCoin {
			n++
		}
	}
	return n
}

// Resize updates the screen dimensions without restarting the attempt.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.world != nil {
		g.cam.snap(g.world, g.viewport())
	}
}

// World returns the current engine snapshot, or nil when no level is loaded.
func (g *Game) World() *core.World {
	return g.world
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:      g.score,
		GameOver:   g.gameOver,
		Paused:     g.paused,
		LevelIndex: g.index,
		LevelCount: len(g.levels),
		Deaths:     g.deaths,
	}
	if g.world != nil && g.index < len(g.levels) {
		st.LevelID = g.levels[g.index].ID
		st.Status = g.world.Status().String()
		st.CoinsLeft = g.world.CoinsLeft()
	}
	return st
}
