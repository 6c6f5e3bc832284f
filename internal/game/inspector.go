package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel — rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 200 // buffer width in pixels
	inspBufH  = 230 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
)

// Inspector holds the selected sheep and view toggle state. Selection is by
// id so despawns (scoring, abduction) clear it naturally.
type Inspector struct {
	selectedID int
	rawView    bool // false = curated, true = raw dump
}

// handleInspectorClick checks if a mouse click hit a sheep and selects it.
// Returns true if a sheep was hit.
func (g *Game) handleInspectorClick(mx, my int) bool {
	// Inverse of Draw camera transform:
	//   screen = (buf - cam) * zoom + vpHalf + offset
	//   buf    = (screen - offset - vpHalf) / zoom + cam
	vpW := float64(g.gameWidth)
	vpH := float64(g.gameHeight)
	bx := (float64(mx)-float64(g.offX)-vpW/2)/g.camZoom + g.camX
	by := (float64(my)-float64(g.offY)-vpH/2)/g.camZoom + g.camY

	// Pick radius: 14 screen pixels expressed in buffer space.
	clickRadius := 14.0 / g.camZoom
	clickRadius2 := clickRadius * clickRadius
	best2 := math.MaxFloat64
	hit := -1
	for _, s := range g.world.sheep {
		sx, sy := g.worldToBuf(s.pos)
		dx := float64(sx) - bx
		dy := float64(sy) - by
		d2 := dx*dx + dy*dy
		if d2 < clickRadius2 && d2 < best2 {
			best2 = d2
			hit = s.id
		}
	}
	if hit >= 0 {
		g.inspector.selectedID = hit
		return true
	}
	// Click on empty space: deselect.
	g.inspector.selectedID = -1
	return false
}

// drawInspector renders the inspector panel into an offscreen buffer at 1×,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	s := findSheep(g.world.sheep, g.inspector.selectedID)
	if s == nil {
		return
	}

	buf := g.inspBuf
	buf.Clear()
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 14, G: 18, B: 12, A: 230}
	panelBorder := color.RGBA{R: 80, G: 100, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	vector.StrokeLine(buf, 1, 1, bw-1, 1, 1.0, color.RGBA{R: 110, G: 140, B: 70, A: 60}, false)

	lx := inspPad
	ly := inspPad

	title := fmt.Sprintf("[ %s %s ]", s.color, s.label)
	ebitenutil.DebugPrintAt(buf, title, lx, ly)
	ly += inspLineH + 2

	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), lx, ly)
	ly += inspLineH + 4

	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	if g.inspector.rawView {
		g.drawInspectorRaw(buf, s, lx, ly)
	} else {
		g.drawInspectorCurated(buf, s, lx, ly)
	}

	px := g.width - inspBufW*inspScale - g.offX/2
	py := g.height - inspBufH*inspScale - g.offY/2
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

// drawInspectorCurated draws the organised, human-readable inspector view.
func (g *Game) drawInspectorCurated(buf *ebiten.Image, s *Sheep, lx, ly int) {
	line := func(text string) {
		ebitenutil.DebugPrintAt(buf, text, lx, ly)
		ly += inspLineH
	}
	section := func(title string) {
		ly += 3
		ebitenutil.DebugPrintAt(buf, "-- "+title+" --", lx, ly)
		ly += inspLineH
	}

	section("BEHAVIOUR")
	line(fmt.Sprintf("state: %s", s.state.tag()))
	switch st := s.state.(type) {
	case stateWander:
		line(fmt.Sprintf("next plan in %.1fs", st.wait-st.elapsed))
	case stateEvading:
		line(fmt.Sprintf("danger:(%.1f,%.1f)", st.danger.X, st.danger.Z))
	case stateSpooked:
		line(fmt.Sprintf("fled from:(%.1f,%.1f)", st.danger.X, st.danger.Z))
		line(fmt.Sprintf("dist: %.1f", s.pos.Dist(st.danger)))
	case stateAbducted:
		line(fmt.Sprintf("altitude: %.1f", s.height))
	}

	section("FLOCK")
	line(fmt.Sprintf("herd dir:(%.2f,%.2f)", s.herdDir.X, s.herdDir.Z))
	if stale, ok := g.world.flock.StalenessOf(s.id); ok {
		line(fmt.Sprintf("refreshed %.2fs ago", stale))
	} else {
		line("never refreshed")
	}

	section("MOVEMENT")
	line(fmt.Sprintf("pos:(%.1f,%.1f) h=%.1f", s.pos.X, s.pos.Z, s.height))
	line(fmt.Sprintf("intent:(%.1f,%.1f)", s.hop.Intent.X, s.hop.Intent.Z))
	airborne := "grounded"
	if s.hop.Airborne() {
		airborne = "airborne"
	}
	line(fmt.Sprintf("%s  step=%.1f", airborne, s.stepDistance))
	if goal, ok := g.world.Goal(); ok {
		line(fmt.Sprintf("goal dist: %.1f", s.pos.Dist(goal)))
	}
}

// drawInspectorRaw dumps the sheep's fields verbatim.
func (g *Game) drawInspectorRaw(buf *ebiten.Image, s *Sheep, lx, ly int) {
	line := func(text string) {
		ebitenutil.DebugPrintAt(buf, text, lx, ly)
		ly += inspLineH
	}

	line(fmt.Sprintf("id=%d %s color=%d", s.id, s.label, s.color))
	line(fmt.Sprintf("pos=(%.2f,%.2f) h=%.2f", s.pos.X, s.pos.Z, s.height))
	line(fmt.Sprintf("facing=%.2f state=%d", s.facing, s.state.tag()))
	line(fmt.Sprintf("herdDir=(%.3f,%.3f)", s.herdDir.X, s.herdDir.Z))
	line(fmt.Sprintf("step=%.2f wait=[%.1f,%.1f]", s.stepDistance, s.minWait, s.maxWait))
	line(fmt.Sprintf("spdMult=%.2f/%.2f", s.defaultSpeedMult, s.spookedSpeedMult))
	line("-- hop --")
	h := &s.hop
	line(fmt.Sprintf("intent=(%.2f,%.2f)", h.Intent.X, h.Intent.Z))
	line(fmt.Sprintf("air=%v tbh=%.2f len=%.2f", h.airborne, h.TimeBetweenHops, h.HopTimeLength))
	line(fmt.Sprintf("mult move=%.2f hop=%.2f", h.MoveSpeedMult, h.HopSpeedMult))
	line(fmt.Sprintf("jump=%.2f glide=%v", h.JumpHeightMult, h.Glide))
	if src, dest, ok := h.HopEndpoints(); ok {
		line(fmt.Sprintf("src=(%.1f,%.1f)", src.X, src.Z))
		line(fmt.Sprintf("dst=(%.1f,%.1f) t=%.2f", dest.X, dest.Z, h.timer.fraction()))
	}
	if stale, ok := g.world.flock.StalenessOf(s.id); ok {
		line(fmt.Sprintf("staleness=%.3fs", stale))
	}
}
