package platformer

import (
	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

// view is the visible part of the level in grid units.
type view struct {
	W, H float64
}

// camera is the top-left corner of the view in grid units.
type camera struct {
	Left, Top float64
}

// follow scrolls just enough to keep the player's centre out of the outer
// thirds of the view.
func (c *camera) follow(w *core.World, v view) {
	p := w.Player()
	center := p.Pos.Add(p.Size.Scale(0.5))
	marginX, marginY := v.W/3, v.H/3

	if center.X < c.Left+marginX {
		c.Left = center.X - marginX
	} else if center.X > c.Left+v.W-marginX {
		c.Left = center.X + marginX - v.W
	}
	if center.Y < c.Top+marginY {
		c.Top = center.Y - marginY
	} else if center.Y > c.Top+v.H-marginY {
		c.Top = center.Y + marginY - v.H
	}

	c.clamp(w.Level(), v)
}

// snap centres the view on the player.
func (c *camera) snap(w *core.World, v view) {
	p := w.Player()
	center := p.Pos.Add(p.Size.Scale(0.5))
	c.Left = center.X - v.W/2
	c.Top = center.Y - v.H/2
	c.clamp(w.Level(), v)
}

// clamp keeps the view inside the level. A level smaller than the view is
// centred on that axis.
func (c *camera) clamp(l *core.Level, v view) {
	c.Left = clampAxis(c.Left, float64(l.Width), v.W)
	c.Top = clampAxis(c.Top, float64(l.Height), v.H)
}

func clampAxis(pos, size, visible float64) float64 {
	if size <= visible {
		return (size - visible) / 2
	}
	return platformcore.ClampF(pos, 0, size-visible)
}
