package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Options tunes the frame loop.
type Options struct {
	HoldWindow float64            // Seconds a direction stays held after a press; 0 uses the default
	Logger     *log.Logger        // nil uses the default logger
	Renderer   *lipgloss.Renderer // nil uses the default renderer
}

func (o Options) withDefaults() Options {
	if o.HoldWindow <= 0 {
		o.HoldWindow = config.DefaultPlatformerConfig().Input.HoldWindow
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	renderer  *ScreenRenderer
	store     *storage.Store
	config    core.RuntimeConfig
	logger    *log.Logger
	keyMapper *KeyMapper
	keys      *KeyTracker
	clock     func() time.Time
	gameState core.GameState
	runID     string    // Groups the level results of one campaign run
	lastTick  time.Time // Timestamp of the previous frame

	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	opts = opts.withDefaults()

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:  NewScreenRenderer(opts.Renderer),
		store:     store,
		config:    cfg,
		logger:    opts.Logger,
		keyMapper: NewKeyMapper(),
		keys:      NewKeyTracker(opts.HoldWindow),
		clock:     time.Now,
		runID:     storage.NewRunID(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when nothing is in progress
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.keys.Press(action, m.clock())
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick advances the game by the real time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	wasOver := m.gameState.GameOver
	result := m.game.Step(dt, m.keys.Frame(now))
	m.gameState = result.State

	// A restart begins a new run
	if wasOver && !m.gameState.GameOver {
		m.runID = storage.NewRunID()
		m.scoreSaved = false
	}

	m.recordEvents(result.Events)

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.logger.Warn("saving score", "game", m.game.ID(), "err", err)
			}
		}
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// recordEvents stores finished level attempts.
func (m Model) recordEvents(events []core.Event) {
	for _, ev := range events {
		if ev.Kind != core.EventLevelFinished {
			continue
		}
		m.logger.Debug("level finished",
			"run", m.runID,
			"level", ev.LevelID,
			"status", ev.Status,
			"elapsed", ev.Elapsed,
			"deaths", ev.Deaths,
		)
		if m.store == nil {
			continue
		}
		_, err := m.store.SaveResult(storage.LevelResult{
			RunID:   m.runID,
			LevelID: ev.LevelID,
			Status:  ev.Status,
			Elapsed: ev.Elapsed,
			Deaths:  ev.Deaths,
		})
		if err != nil {
			m.logger.Warn("saving level result", "level", ev.LevelID, "err", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunID returns the identifier under which level results are stored.
func (m Model) RunID() string {
	return m.runID
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
