// platformer is a tile platformer for the terminal.
//
// Usage:
//
//	platformer list              - List game modes and levels
//	platformer play [level]      - Play the campaign, optionally from a level
//	platformer menu              - Pick levels interactively
//	platformer check <path>      - Validate level files
//	platformer results [level]   - Show stored level results
//	platformer serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/platformer.db)
//	--config <path>      - Use a custom config YAML
//	--levels <dir>       - Load levels from a directory instead of the built-in campaign
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLevels   string
	flagLogLevel string
	flagLogFile  string

	logger    = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "platformer"})
	appConfig = config.DefaultPlatformerConfig()
	logFile   *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - collect every coin, avoid the lava",
	Long: `TUI Platformer is a tile-grid platform game for the terminal.

Run, jump and collect every coin in a level without touching lava.
Finished levels are recorded so you can chase your best times.

Available commands:
  list     - Show game modes and levels
  play     - Play the campaign directly
  menu     - Interactive level picker
  check    - Validate level files
  results  - View stored level results
  serve    - Start SSH server for remote play

Examples:
  platformer list
  platformer play
  platformer play lava-lake --practice
  platformer check ./my-levels
  platformer serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/platformer.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a file (local play discards logs otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup configures logging, loads the config and points the game at its levels.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagLogFile != "" {
		f, err := os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger.SetOutput(f)
	}

	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return err
	}
	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	appConfig = cfg
	logger.Debug("config loaded", "levels", cfg.Levels.Dir, "hold_window", cfg.Input.HoldWindow)

	platformer.Configure(platformer.Options{
		Config: cfg,
		Loader: levelLoader(cfg),
		Logger: logger,
	})
	return nil
}

// levelLoader returns the loader for the configured level source.
func levelLoader(cfg config.PlatformerConfig) *levels.Loader {
	if cfg.Levels.Dir == "" {
		return levels.Builtin().WithLogger(logger)
	}
	return levels.NewDirLoader(expandHome(cfg.Levels.Dir)).WithLogger(logger)
}

// frameOptions returns the frame loop settings for local and remote play.
func frameOptions() tui.Options {
	return tui.Options{
		HoldWindow: appConfig.Input.HoldWindow,
		Logger:     logger,
	}
}

// quietTerminal stops log output from drawing over the full-screen UI.
func quietTerminal() {
	if logFile == nil {
		logger.SetOutput(io.Discard)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
