package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Validate level files",
	Long: `Check a level file, or every level file in a directory, and report
all format errors with their row and column.

Examples:
  platformer check ./levels/castle.yaml
  platformer check ./levels`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, args []string) error {
	target := expandHome(args[0])
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	var problems []levels.Problem
	checked := 0

	if info.IsDir() {
		loader := levels.NewDirLoader(target).WithLogger(logger)
		problems, err = loader.Validate()
		if err != nil {
			return err
		}
		lvls, err := loader.LoadAll()
		if err != nil {
			return err
		}
		checked = len(lvls) + len(problems)
		for _, l := range lvls {
			fmt.Printf("ok    %s (%s)\n", l.FilePath, l.ID)
		}
	} else {
		loader := levels.NewDirLoader(filepath.Dir(target)).WithLogger(logger)
		l, err := loader.LoadFile(filepath.Base(target))
		checked = 1
		if err != nil {
			problems = append(problems, levels.Problem{Path: filepath.Base(target), Err: err})
		} else {
			fmt.Printf("ok    %s (%s)\n", l.FilePath, l.ID)
		}
	}

	for _, p := range problems {
		fmt.Printf("FAIL  %s: %v\n", p.Path, p.Err)
		if errors.Is(p.Err, core.ErrMissingPlayer) {
			fmt.Printf("      add one '%c' to mark where the player starts\n", core.CharPlayer)
		}
	}

	fmt.Printf("\n%d checked, %d failed\n", checked, len(problems))
	if len(problems) > 0 {
		return fmt.Errorf("%d invalid level file(s)", len(problems))
	}
	return nil
}
