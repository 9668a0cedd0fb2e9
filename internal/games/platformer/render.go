package platformer

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

// Screen layout: HUD line and separator on top, controls hint at the bottom.
const (
	hudRows    = 2
	footerRows = 1
	minScreenW = 24
	minScreenH = hudRows + footerRows + 4
)

var (
	wallCell   = platformcore.Cell{Rune: '█', Color: platformcore.ColorWhite}
	lavaCell   = platformcore.Cell{Rune: '▓', Color: platformcore.ColorRed}
	coinCell   = platformcore.Cell{Rune: '●', Color: platformcore.ColorBrightYellow}
	hazardCell = platformcore.Cell{Rune: '▓', Color: platformcore.ColorOrange}
)

// viewport returns the visible area in grid units for the current screen.
func (g *Game) viewport() view {
	return g.viewFor(g.runtime.ScreenW, g.runtime.ScreenH)
}

func (g *Game) viewFor(screenW, screenH int) view {
	r := g.opts.Config.Render
	cw, ch := platformcore.Max(r.CellWidth, 1), platformcore.Max(r.CellHeight, 1)
	rows := platformcore.Max(screenH-hudRows-footerRows, 0)
	return view{
		W: float64(screenW) / float64(cw),
		H: float64(rows) / float64(ch),
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawText(0, 0, "Window too small")
		return
	}

	if g.world == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}

	g.renderHUD(dst)
	g.renderWorld(dst)
	dst.DrawTextColor(0, dst.Height()-1, " ←/→: Move | ↑/Space: Jump | P: Pause | Q: Quit", platformcore.ColorGray)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "All levels cleared!", fmt.Sprintf("Score: %d | Press R to play again", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status line tinted by the attempt status.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	i := platformcore.Min(g.index, len(g.levels)-1)
	status := g.world.Status()

	hud := fmt.Sprintf(" %s | %d/%d %s | Coins: %d | Deaths: %d | Score: %d",
		g.Title(), i+1, len(g.levels), g.levels[i].Name,
		g.world.CoinsLeft(), g.deaths, g.score)

	color := platformcore.ColorCyan
	switch status {
	case core.StatusWon:
		hud += " | Level complete!"
		color = platformcore.ColorBrightGreen
	case core.StatusLost:
		hud += " | Ouch!"
		color = platformcore.ColorBrightRed
	}
	dst.DrawTextColor(0, 0, hud, color)

	// Separator
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, 1, '─', platformcore.ColorGray)
	}
}

// renderWorld draws the visible grid cells, then the actors on top.
func (g *Game) renderWorld(dst *platformcore.Screen) {
	v := g.viewFor(dst.Width(), dst.Height())
	area := platformcore.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows-footerRows)
	level := g.world.Level()

	x0 := platformcore.Max(int(math.Floor(g.cam.Left)), 0)
	y0 := platformcore.Max(int(math.Floor(g.cam.Top)), 0)
	x1 := platformcore.Min(int(math.Ceil(g.cam.Left+v.W)), level.Width)
	y1 := platformcore.Min(int(math.Ceil(g.cam.Top+v.H)), level.Height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			switch level.At(x, y) {
			case core.CellWall:
				g.fillUnits(dst, area, float64(x), float64(y), 1, 1, wallCell)
			case core.CellLava:
				g.fillUnits(dst, area, float64(x), float64(y), 1, 1, lavaCell)
			}
		}
	}

	for _, a := range g.world.Actors() {
		g.fillUnits(dst, area, a.Pos.X, a.Pos.Y, a.Size.X, a.Size.Y, g.actorCell(a))
	}
}

func (g *Game) actorCell(a core.Actor) platformcore.Cell {
	switch a.Kind {
	case core.KindPlayer:
		switch g.world.Status() {
		case core.StatusWon:
			return platformcore.Cell{Rune: '█', Color: platformcore.ColorBrightGreen}
		case core.StatusLost:
			return platformcore.Cell{Rune: '█', Color: platformcore.ColorBrightRed}
		}
		return platformcore.Cell{Rune: '█', Color: platformcore.ColorBrightBlue}
	case core.KindCoin:
		return coinCell
	default:
		return hazardCell
	}
}

// fillUnits fills the screen cells covered by a box given in grid units,
// clipped to area. Every box covers at least one character.
func (g *Game) fillUnits(dst *platformcore.Screen, area platformcore.Rect, x, y, w, h float64, c platformcore.Cell) {
	r := g.opts.Config.Render
	cw, ch := float64(platformcore.Max(r.CellWidth, 1)), float64(platformcore.Max(r.CellHeight, 1))

	sx0 := int(math.Round((x - g.cam.Left) * cw))
	sx1 := int(math.Round((x + w - g.cam.Left) * cw))
	sy0 := int(math.Round((y - g.cam.Top) * ch))
	sy1 := int(math.Round((y + h - g.cam.Top) * ch))
	box := platformcore.NewRect(area.X+sx0, area.Y+sy0, platformcore.Max(sx1-sx0, 1), platformcore.Max(sy1-sy0, 1))

	if !box.Intersects(area) {
		return
	}
	dst.DrawRect(box.Intersect(area), c)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := platformcore.Max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, platformcore.Cell{Rune: ' '})
	dst.DrawBox(box, platformcore.ColorCyan)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorGray)
}
