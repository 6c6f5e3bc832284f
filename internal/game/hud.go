package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// drawHUD renders the round status and keyboard hints in the bottom-left
// corner. Text is drawn into hudBuf at 1x then composited at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.world.State

	speedStr := "1x"
	switch {
	case g.simSpeed == 0:
		speedStr = "PAUSED"
	case g.simSpeed != 1:
		speedStr = fmt.Sprintf("%gx", g.simSpeed)
	}

	lines := []string{
		fmt.Sprintf("ROUND %d  %02d:%02d  SIM: %s",
			g.world.Round(),
			int(g.world.Countdown())/60, int(g.world.Countdown())%60,
			speedStr),
		fmt.Sprintf("points %d/%d   coins %d", st.Points, st.PointTarget, st.Money),
	}
	if len(st.ActiveModifiers) > 0 {
		mods := ""
		for i, m := range st.ActiveModifiers {
			if i > 0 {
				mods += ", "
			}
			mods += m.Name()
		}
		lines = append(lines, "mods: "+mods)
	}
	if len(st.Charms) > 0 {
		charms := ""
		for i, c := range st.Charms {
			if i > 0 {
				charms += ", "
			}
			charms += c.Name()
		}
		lines = append(lines, fmt.Sprintf("charms (%d/%d): %s", len(st.Charms), st.MaxCharms, charms))
	}
	for _, ev := range g.world.Feedback.Recent(4) {
		lines = append(lines, "> "+ev.Text)
	}
	lines = append(lines,
		"WASD=move  Space=bark  T=teleport",
		"P=pause ,/.=speed  click=inspect  H=hide",
	)

	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)

	bufH := float32(g.height / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH,
		color.RGBA{R: 8, G: 12, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 90, G: 110, B: 60, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1,
		1.0, color.RGBA{R: 120, G: 150, B: 80, A: 80}, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

// overlayPanel dims the screen and draws a centred panel, returning its
// top-left corner for content placement.
func (g *Game) overlayPanel(screen *ebiten.Image, w, h float32) (float32, float32) {
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height),
		color.RGBA{A: 140}, false)
	px := (float32(g.width) - w) / 2
	py := (float32(g.height) - h) / 2
	vector.FillRect(screen, px, py, w, h, color.RGBA{R: 16, G: 22, B: 12, A: 240}, false)
	vector.StrokeRect(screen, px, py, w, h, 1.5, color.RGBA{R: 110, G: 130, B: 70, A: 255}, false)
	return px, py
}

func overlayTitle(screen *ebiten.Image, title string, px, py float32) {
	text.Draw(screen, title, basicfont.Face7x13, int(px)+16, int(py)+24,
		color.RGBA{R: 235, G: 230, B: 200, A: 255})
}

// drawChoiceOverlay renders the end-of-round modifier pick.
func (g *Game) drawChoiceOverlay(screen *ebiten.Image) {
	info := g.world.RoundChoices()
	px, py := g.overlayPanel(screen, 420, 220)
	overlayTitle(screen, fmt.Sprintf("ROUND %d CLEARED - PICK TONIGHT'S DREAM", g.world.Round()), px, py)

	y := int(py) + 44
	if info.HasRemoved {
		ebitenutil.DebugPrintAt(screen, "faded away: "+info.Removed.Name(), int(px)+16, y)
		y += 18
	}
	for i, m := range info.Choices {
		d := m.Difficulty()
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("[%d] %s  (%s, +%d coins)", i+1, m.Name(), d, d.CoinsGiven()),
			int(px)+16, y)
		y += 14
		ebitenutil.DebugPrintAt(screen, "    "+m.Description(), int(px)+16, y)
		y += 20
	}
	ebitenutil.DebugPrintAt(screen, "press 1 or 2", int(px)+16, int(py)+190)
}

// drawShopOverlay renders the between-rounds shop.
func (g *Game) drawShopOverlay(screen *ebiten.Image) {
	st := g.world.State
	px, py := g.overlayPanel(screen, 460, 300)
	overlayTitle(screen, fmt.Sprintf("DREAM SHOP - %d COINS", st.Money), px, py)

	y := int(py) + 44
	for i, item := range g.world.Shop.Items {
		if item == nil {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%d] (sold)", i+1), int(px)+16, y)
			y += 20
			continue
		}
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("[%d] %s %s - %dc", i+1, item.KindLabel(), item.Name(), item.Price()),
			int(px)+16, y)
		y += 14
		ebitenutil.DebugPrintAt(screen, "    "+item.Description(), int(px)+16, y)
		y += 20
	}

	y += 6
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("charms %d/%d (4-7 to sell):", len(st.Charms), st.MaxCharms),
		int(px)+16, y)
	y += 16
	for i, c := range st.Charms {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("  [%d] %s (sell +%dc)", i+4, c.Name(), c.SellRefund()),
			int(px)+16, y)
		y += 14
	}

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("1-3=buy  R=reroll (%dc)  Enter=next round", rerollCost),
		int(px)+16, int(py)+274)
}

// drawGameOverOverlay renders the end-of-run screen.
func (g *Game) drawGameOverOverlay(screen *ebiten.Image) {
	st := g.world.State
	px, py := g.overlayPanel(screen, 360, 160)
	overlayTitle(screen, "THE DREAM ENDS", px, py)

	y := int(py) + 44
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("rounds survived: %d", g.world.Round()-1), int(px)+16, y)
	y += 16
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("final tally: %d/%d points, %d coins", st.Points, st.PointTarget, st.Money),
		int(px)+16, y)
	y += 16
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("sheep counted this round: %d", st.SheepCounted), int(px)+16, y)

	ebitenutil.DebugPrintAt(screen, "press Enter to drift off again", int(px)+16, int(py)+134)
}
