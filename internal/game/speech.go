package game

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// speechLifetime is how many ticks a speech bubble stays visible (~2 seconds).
const speechLifetime = 120

// speechCooldown is the minimum ticks between bleats per sheep (~6 seconds).
const speechCooldown = 360

// SpeechBubble holds an active bleat above a sheep.
type SpeechBubble struct {
	sheepID int
	text    string
	age     int
	yOff    float32 // vertical offset to prevent overlaps
}

// bleatFor picks a phrase that reflects the sheep's state and colour.
func bleatFor(rng *rand.Rand, s *Sheep) string {
	switch s.state.tag() {
	case TagSpooked:
		texts := []string{"BAAA!", "BA-AAA!", "baaAAA!"}
		return texts[rng.Intn(len(texts))]
	case TagEvading:
		texts := []string{"Baa!", "Mehh!"}
		return texts[rng.Intn(len(texts))]
	case TagBeingCounted:
		return "Baa~"
	case TagBeingAbducted:
		return "BAAAA?!"
	}
	if s.color == ColorGold {
		return "Bling."
	}
	texts := []string{"Baa.", "Baaa?", "Mrrh.", "..."}
	return texts[rng.Intn(len(texts))]
}

// UpdateSpeech ticks all bubbles and occasionally lets a random sheep bleat.
func (g *Game) UpdateSpeech(rng *rand.Rand) {
	kept := g.speechBubbles[:0]
	for _, b := range g.speechBubbles {
		b.age++
		if b.age < speechLifetime {
			kept = append(kept, b)
		}
	}
	g.speechBubbles = kept

	flock := g.world.sheep
	if len(flock) == 0 {
		return
	}
	s := flock[rng.Intn(len(flock))]
	if g.world.CurrentTick()-g.lastSpeechTick[s.id] < speechCooldown {
		return
	}

	// Emission probability varies with how agitated the sheep is.
	switch s.state.tag() {
	case TagSpooked, TagBeingAbducted:
		// Always bleat.
	case TagEvading:
		if rng.Float64() > 0.30 {
			return
		}
	default:
		if rng.Float64() > 0.06 {
			return
		}
	}

	var yOff float32
	for _, existing := range g.speechBubbles {
		if existing.sheepID == s.id {
			yOff -= 18
		}
	}

	g.lastSpeechTick[s.id] = g.world.CurrentTick()
	g.speechBubbles = append(g.speechBubbles, &SpeechBubble{
		sheepID: s.id,
		text:    bleatFor(rng, s),
		yOff:    yOff,
	})
}

// drawSpeechBubbles renders active bleats above each sheep (world-space).
func (g *Game) drawSpeechBubbles(screen *ebiten.Image) {
	for _, b := range g.speechBubbles {
		s := findSheep(g.world.sheep, b.sheepID)
		if s == nil {
			continue
		}
		progress := float64(b.age) / float64(speechLifetime)
		alpha := float32(1.0)
		if progress > 0.70 {
			alpha = float32(1.0 - (progress-0.70)/0.30)
		}
		if alpha < 0.05 {
			continue
		}

		const charW = 6
		const lineH = 14
		const padX = 4
		const padY = 2

		textW := float32(len(b.text) * charW)
		bgW := textW + float32(padX*2)
		bgH := float32(lineH + padY*2)

		sx, sy := g.worldToBuf(s.pos)
		sy -= float32(s.height) * pxPerUnit * 0.5
		baseY := sy - sheepDrawRadius - bgH - 4 + b.yOff

		bgX := sx - bgW/2
		vector.FillRect(screen, bgX, baseY, bgW, bgH,
			color.RGBA{R: 22, G: 26, B: 20, A: uint8(210 * alpha)}, false)
		vector.StrokeRect(screen, bgX, baseY, bgW, bgH, 0.5,
			color.RGBA{R: 90, G: 85, B: 70, A: uint8(120 * alpha)}, false)
		ebitenutil.DebugPrintAt(screen, b.text, int(bgX)+padX, int(baseY)+padY)
		vector.StrokeLine(screen, sx, baseY+bgH, sx, sy-sheepDrawRadius,
			0.5, color.RGBA{R: 90, G: 85, B: 70, A: uint8(80 * alpha)}, false)
	}
}
