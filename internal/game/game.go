package game

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap between the window edge and the pasture.
const borderWidth = 24

// hudScale is the integer upscale factor applied to all HUD text.
const hudScale = 2

// pxPerUnit converts simulation units to screen pixels.
const pxPerUnit = 14.0

const (
	sheepDrawRadius  = 7.0
	playerDrawRadius = 8.0
	ufoDrawRadius    = 16.0
)

// sheepColors maps each SheepColor to its fleece render colour.
var sheepColors = [colorCount]color.RGBA{
	ColorWhite: {R: 235, G: 232, B: 222, A: 255},
	ColorBlack: {R: 48, G: 44, B: 52, A: 255},
	ColorBlue:  {R: 86, G: 124, B: 224, A: 255},
	ColorRed:   {R: 214, G: 72, B: 56, A: 255},
	ColorGold:  {R: 238, G: 192, B: 62, A: 255},
}

type Game struct {
	world *World

	width      int
	height     int
	gameWidth  int // pasture width in pixels (inside border)
	gameHeight int // pasture depth in pixels
	offX       int
	offY       int

	// Offscreen buffer for the pasture — camera transform applied on blit.
	worldBuf *ebiten.Image
	// Offscreen buffer for HUD text — rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image
	// Offscreen buffer for the inspector panel.
	inspBuf *ebiten.Image

	// Camera: centred on the pasture at zoom 1, follows the player zoomed in.
	camX    float64
	camY    float64
	camZoom float64

	showHUD       bool
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64

	// Per-frame directional input, applied at the start of each sim tick.
	moveDir   Vec2
	barkFlash int // ticks left on the bark radius flash

	// Sheep speech bubbles.
	speechBubbles  []*SpeechBubble
	speechRng      *rand.Rand
	lastSpeechTick map[int]int

	// Sheep inspector (click-to-select panel).
	inspector Inspector

	// Deterministic grass patches, generated once.
	terrainPatches []terrainPatch

	// Analytics reporter — collects herding stats periodically.
	reporter *SimReporter
}

// terrainPatch is a subtle ground colour variation tile.
type terrainPatch struct {
	x, y  float32
	w, h  float32
	shade uint8 // offset from base green
}

func New(t Tuning, seed int64) *Game {
	w := NewWorld(t, seed)
	w.StartRound()

	pastureW := int(w.Bounds.Width() * pxPerUnit)
	pastureH := int(w.Bounds.Depth() * pxPerUnit)
	g := &Game{
		world:          w,
		width:          borderWidth + pastureW + borderWidth,
		height:         borderWidth + pastureH + borderWidth,
		gameWidth:      pastureW,
		gameHeight:     pastureH,
		offX:           borderWidth,
		offY:           borderWidth,
		showHUD:        true,
		prevKeys:       make(map[ebiten.Key]bool),
		lastSpeechTick: make(map[int]int),
	}
	g.worldBuf = ebiten.NewImage(pastureW, pastureH)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	g.camX = float64(pastureW) / 2
	g.camY = float64(pastureH) / 2
	g.camZoom = 1.0
	g.simSpeed = 1.0
	g.speechRng = rand.New(rand.NewSource(seed + 9999)) // #nosec G404 -- cosmetic only
	g.reporter = NewSimReporter(reportWindowTicks, false)
	g.initTerrainPatches()
	return g
}

// initTerrainPatches generates deterministic subtle grass colour patches.
func (g *Game) initTerrainPatches() {
	rng := rand.New(rand.NewSource(54321)) // #nosec G404 -- cosmetic only
	count := 180
	g.terrainPatches = make([]terrainPatch, 0, count)
	for i := 0; i < count; i++ {
		w := float32(20 + rng.Intn(70))
		h := float32(20 + rng.Intn(70))
		x := float32(rng.Intn(g.gameWidth))
		y := float32(rng.Intn(g.gameHeight))
		shade := uint8(rng.Intn(13))
		g.terrainPatches = append(g.terrainPatches, terrainPatch{x: x, y: y, w: w, h: h, shade: shade})
	}
}

// worldToBuf converts a simulation position to worldBuf pixel coordinates.
func (g *Game) worldToBuf(p Vec2) (float32, float32) {
	b := g.world.Bounds
	return float32((p.X - b.Min.X) * pxPerUnit), float32((p.Z - b.Min.Z) * pxPerUnit)
}

func (g *Game) Update() error {
	g.handleInput()

	if g.simSpeed <= 0 {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick runs one simulation tick.
func (g *Game) simTick() {
	if g.barkFlash > 0 {
		g.barkFlash--
	}
	if g.world.Phase() != PhaseHerding {
		return
	}

	if p := g.world.Player(); p != nil && !g.moveDir.IsZero() {
		p.Move(g.moveDir, simDt)
	}
	g.world.Step(simDt)
	g.UpdateSpeech(g.speechRng)

	if g.world.CurrentTick()%60 == 0 && g.reporter != nil {
		g.reporter.Collect(g.world)
	}
}

// keyPressed records the key in the current-keys map and reports an
// edge-triggered press.
func (g *Game) keyPressed(current map[ebiten.Key]bool, k ebiten.Key) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	// Player movement: WASD or arrows, normalised so diagonals aren't faster.
	var dir Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Z -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Z += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X += 1
	}
	g.moveDir = dir.NormalizeOr(Vec2{})

	// Bark: Space or E. The cooldown gates repeats.
	if ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyE) {
		if g.world.Phase() == PhaseHerding && g.world.Bark() {
			g.barkFlash = 15
		}
	}

	// T: teleport the player out of a pile-up.
	if g.keyPressed(currentKeys, ebiten.KeyT) {
		g.world.TeleportPlayer()
	}

	// H: toggle HUD.
	if g.keyPressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// I: toggle inspector raw/curated view.
	if g.keyPressed(currentKeys, ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}

	// C: copy a debug report of the current round to the clipboard.
	if g.keyPressed(currentKeys, ebiten.KeyC) {
		_ = clipboard.WriteAll(g.roundDebugReport())
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if g.keyPressed(currentKeys, ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.keyPressed(currentKeys, ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.keyPressed(currentKeys, ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 {
				if speeds[i+1] > g.simSpeed {
					g.simSpeed = speeds[i+1]
					break
				}
			}
		}
	}

	// Round-phase menus.
	g.handlePhaseInput(currentKeys)

	// Camera zoom: mouse wheel. Zoomed in, the camera follows the player.
	const zoomMin, zoomMax = 1.0, 4.0
	_, wy := ebiten.Wheel()
	if wy > 0 {
		g.camZoom *= 1.12
	} else if wy < 0 {
		g.camZoom /= 1.12
	}
	if g.camZoom < zoomMin {
		g.camZoom = zoomMin
	}
	if g.camZoom > zoomMax {
		g.camZoom = zoomMax
	}
	if p := g.world.Player(); p != nil && g.camZoom > 1.0 {
		px, py := g.worldToBuf(p.Pos())
		g.camX += (float64(px) - g.camX) * 0.1
		g.camY += (float64(py) - g.camY) * 0.1
	} else {
		g.camX = float64(g.gameWidth) / 2
		g.camY = float64(g.gameHeight) / 2
	}
	halfVW := float64(g.gameWidth) / 2 / g.camZoom
	halfVH := float64(g.gameHeight) / 2 / g.camZoom
	if g.camX < halfVW {
		g.camX = halfVW
	}
	if g.camX > float64(g.gameWidth)-halfVW {
		g.camX = float64(g.gameWidth) - halfVW
	}
	if g.camY < halfVH {
		g.camY = halfVH
	}
	if g.camY > float64(g.gameHeight)-halfVH {
		g.camY = float64(g.gameHeight) - halfVH
	}

	// Left mouse click: try to select a sheep.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !g.prevMouseLeft {
			mx, my := ebiten.CursorPosition()
			g.handleInspectorClick(mx, my)
		}
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	g.prevKeys = currentKeys
}

// handlePhaseInput processes the modifier-choice, shop, and game-over menus.
func (g *Game) handlePhaseInput(currentKeys map[ebiten.Key]bool) {
	switch g.world.Phase() {
	case PhaseModifierChoice:
		if g.keyPressed(currentKeys, ebiten.Key1) {
			g.world.ChooseModifier(0)
		}
		if g.keyPressed(currentKeys, ebiten.Key2) {
			g.world.ChooseModifier(1)
		}

	case PhaseShop:
		buyKeys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
		for slot, k := range buyKeys {
			if g.keyPressed(currentKeys, k) {
				g.world.Shop.Buy(slot, g.world.State, g.world.rng)
			}
		}
		if g.keyPressed(currentKeys, ebiten.KeyR) {
			g.world.Shop.RerollPaid(g.world.rng, g.world.State)
		}
		sellKeys := []ebiten.Key{ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7}
		for idx, k := range sellKeys {
			if g.keyPressed(currentKeys, k) {
				SellCharm(idx, g.world.State)
			}
		}
		if g.keyPressed(currentKeys, ebiten.KeyEnter) {
			g.world.LeaveShop()
		}

	case PhaseGameOver:
		if g.keyPressed(currentKeys, ebiten.KeyEnter) {
			g.restart()
		}
	}
}

// restart begins a fresh run with a new seed.
func (g *Game) restart() {
	t := g.world.Tuning
	g.world = NewWorld(t, time.Now().UnixNano())
	g.world.StartRound()
	g.speechBubbles = g.speechBubbles[:0]
	g.lastSpeechTick = make(map[int]int)
	g.inspector.selectedID = -1
	g.reporter = NewSimReporter(reportWindowTicks, false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 18, B: 12, A: 255})

	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf)

	// Camera transform: translate so camX/camY is at viewport centre, then scale.
	vpW := float64(g.gameWidth)
	vpH := float64(g.gameHeight)
	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(-g.camX, -g.camY)
	blit.GeoM.Scale(g.camZoom, g.camZoom)
	blit.GeoM.Translate(vpW/2, vpH/2)
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.worldBuf, &blit)

	// Pasture border frame.
	ox := float32(g.offX)
	oy := float32(g.offY)
	gw := float32(g.gameWidth)
	gh := float32(g.gameHeight)
	borderCol := color.RGBA{R: 88, G: 72, B: 48, A: 255}
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, borderCol, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0, color.RGBA{R: 58, G: 48, B: 32, A: 110}, false)

	if g.showHUD {
		g.drawHUD(screen)
	}

	switch g.world.Phase() {
	case PhaseModifierChoice:
		g.drawChoiceOverlay(screen)
	case PhaseShop:
		g.drawShopOverlay(screen)
	case PhaseGameOver:
		g.drawGameOverOverlay(screen)
	}

	if g.camZoom != 1.0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("zoom: %.1fx", g.camZoom), g.offX+6, g.offY+6)
	}

	g.drawInspector(screen)
}

func (g *Game) drawWorld(buf *ebiten.Image) {
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)

	// Grass fill.
	vector.FillRect(buf, 0, 0, gw, gh, color.RGBA{R: 58, G: 96, B: 52, A: 255}, false)

	// Grass noise patches — subtle colour variation.
	for _, tp := range g.terrainPatches {
		baseG := 96 + int(tp.shade) - 6
		baseR := 58 + int(tp.shade)/2 - 3
		baseB := 52 + int(tp.shade)/3 - 2
		vector.FillRect(buf, tp.x, tp.y, tp.w, tp.h,
			color.RGBA{R: uint8(baseR), G: uint8(baseG), B: uint8(baseB), A: 40}, false)
	}

	// Faint grid every 5 units.
	step := int(5 * pxPerUnit)
	gridCol := color.RGBA{R: 50, G: 84, B: 46, A: 255}
	for x := 0; x <= g.gameWidth; x += step {
		vector.StrokeLine(buf, float32(x), 0, float32(x), gh, 1.0, gridCol, false)
	}
	for y := 0; y <= g.gameHeight; y += step {
		vector.StrokeLine(buf, 0, float32(y), gw, float32(y), 1.0, gridCol, false)
	}

	g.drawGoal(buf)
	g.drawUfos(buf)
	g.drawSheep(buf)
	g.drawPlayer(buf)
	g.drawSpeechBubbles(buf)

	// Edge vignette.
	edge := float32(28)
	dark := color.RGBA{R: 0, G: 0, B: 0, A: 26}
	vector.FillRect(buf, 0, 0, gw, edge, dark, false)
	vector.FillRect(buf, 0, gh-edge, gw, edge, dark, false)
	vector.FillRect(buf, 0, 0, edge, gh, dark, false)
	vector.FillRect(buf, gw-edge, 0, edge, gh, dark, false)
}

func (g *Game) drawGoal(buf *ebiten.Image) {
	goal, ok := g.world.Goal()
	if !ok {
		return
	}
	gx, gy := g.worldToBuf(goal)
	r := float32(g.world.Tuning.GoalRadius * pxPerUnit)

	// Counting area: soft fill plus a dashed-looking double ring.
	vector.FillCircle(buf, gx, gy, r, color.RGBA{R: 240, G: 228, B: 140, A: 26}, true)
	vector.StrokeCircle(buf, gx, gy, r, 1.5, color.RGBA{R: 240, G: 228, B: 140, A: 120}, true)
	vector.StrokeCircle(buf, gx, gy, r-3, 0.8, color.RGBA{R: 240, G: 228, B: 140, A: 60}, true)
	// Scoring centre marker.
	vector.FillCircle(buf, gx, gy, 3.0, color.RGBA{R: 250, G: 240, B: 170, A: 200}, true)
}

func (g *Game) drawSheep(buf *ebiten.Image) {
	for _, s := range g.world.sheep {
		sx, sy := g.worldToBuf(s.pos)
		lift := float32(s.height) * pxPerUnit * 0.5

		// Ground shadow shrinks as the sheep rises.
		shadowR := sheepDrawRadius * (1.0 - 0.4*lift/(lift+24))
		vector.FillCircle(buf, sx, sy+2, shadowR, color.RGBA{A: 60}, true)

		body := sheepColors[s.color]
		if s.state.tag() == TagBeingAbducted {
			// Fade out on the way up.
			f := 1.0 - s.height/g.world.Tuning.UfoHeight
			if f < 0.25 {
				f = 0.25
			}
			body.A = uint8(255 * f)
		}
		by := sy - lift
		vector.FillCircle(buf, sx, by, sheepDrawRadius, body, true)
		// Head: small dot along the facing direction.
		head := FromAngle(s.facing).Scale(sheepDrawRadius * 0.8)
		vector.FillCircle(buf, sx+float32(head.X), by+float32(head.Z), sheepDrawRadius*0.45,
			color.RGBA{R: 70, G: 62, B: 58, A: body.A}, true)
		// Outline hints at the behaviour state.
		switch s.state.tag() {
		case TagSpooked:
			vector.StrokeCircle(buf, sx, by, sheepDrawRadius+1.5, 1.2,
				color.RGBA{R: 250, G: 120, B: 60, A: 200}, true)
		case TagBeingCounted:
			vector.StrokeCircle(buf, sx, by, sheepDrawRadius+1.5, 1.2,
				color.RGBA{R: 240, G: 228, B: 140, A: 180}, true)
		}

		// Selection ring for the inspector target.
		if g.inspector.selectedID == s.id {
			vector.StrokeCircle(buf, sx, by, sheepDrawRadius+4, 1.5,
				color.RGBA{R: 255, G: 240, B: 60, A: 220}, true)
		}
	}
}

func (g *Game) drawPlayer(buf *ebiten.Image) {
	p := g.world.Player()
	if p == nil {
		return
	}
	px, py := g.worldToBuf(p.Pos())
	lift := float32(p.Height()) * pxPerUnit * 0.5

	vector.FillCircle(buf, px, py+2, playerDrawRadius*0.9, color.RGBA{A: 60}, true)
	by := py - lift
	vector.FillCircle(buf, px, by, playerDrawRadius, color.RGBA{R: 122, G: 86, B: 52, A: 255}, true)
	// Snout along the facing direction.
	head := FromAngle(p.Facing()).Scale(playerDrawRadius * 0.9)
	vector.FillCircle(buf, px+float32(head.X), by+float32(head.Z), playerDrawRadius*0.4,
		color.RGBA{R: 60, G: 42, B: 26, A: 255}, true)

	// Bark flash: expanding ring out to the boosted bark radius.
	if g.barkFlash > 0 {
		t := 1.0 - float32(g.barkFlash)/15.0
		radius := g.world.Tuning.BarkRadius + g.world.State.BarkRadiusBonus
		r := float32(radius*pxPerUnit) * (0.3 + 0.7*t)
		a := uint8(180 * (1.0 - t))
		vector.StrokeCircle(buf, px, py, r, 2.0, color.RGBA{R: 255, G: 245, B: 220, A: a}, true)
	}
}

func (g *Game) drawUfos(buf *ebiten.Image) {
	t := &g.world.Tuning
	for _, u := range g.world.ufos {
		ux, uy := g.worldToBuf(u.Pos())

		// Abduction beam under the saucer.
		beamW := float32(t.SheepInteractRange * pxPerUnit * 0.4)
		vector.FillRect(buf, ux-beamW/2, uy-ufoDrawRadius, beamW, ufoDrawRadius*1.6,
			color.RGBA{R: 150, G: 255, B: 170, A: 34}, false)

		// Shadow on the grass, saucer body lifted to hover height.
		vector.FillCircle(buf, ux, uy, ufoDrawRadius*0.7, color.RGBA{A: 50}, true)
		by := uy - float32(t.UfoHeight)*pxPerUnit*0.5
		vector.FillCircle(buf, ux, by, ufoDrawRadius, color.RGBA{R: 150, G: 158, B: 170, A: 235}, true)
		vector.FillCircle(buf, ux, by-4, ufoDrawRadius*0.45, color.RGBA{R: 190, G: 235, B: 210, A: 220}, true)
		vector.StrokeCircle(buf, ux, by, ufoDrawRadius, 1.2, color.RGBA{R: 80, G: 88, B: 100, A: 255}, true)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// GameWidth returns the pasture width in pixels.
func (g *Game) GameWidth() int {
	return g.gameWidth
}
