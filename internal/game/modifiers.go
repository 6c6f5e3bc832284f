package game

import "math/rand"

// Modifier is a temporary round rule drawn at the end of each round. At most
// three are active at a time; the oldest is evicted when a new one would
// make a fourth.
type Modifier int

const (
	ModHyperSheep Modifier = iota
	ModMoonGravity
	ModUfo
	ModFeverDream
	ModSpaceWalk
	modifierCount
)

func (m Modifier) String() string { return m.Name() }

func (m Modifier) Name() string {
	switch m {
	case ModHyperSheep:
		return "Hyper Sheep"
	case ModMoonGravity:
		return "Moon Gravity"
	case ModUfo:
		return "Visitors"
	case ModFeverDream:
		return "Fever Dream"
	case ModSpaceWalk:
		return "Space Walk"
	default:
		return "unknown"
	}
}

func (m Modifier) Description() string {
	switch m {
	case ModHyperSheep:
		return "Sheep move faster and hop more often."
	case ModMoonGravity:
		return "Lower gravity makes sheep floaty."
	case ModUfo:
		return "A UFO hunts your flock and abducts stragglers."
	case ModFeverDream:
		return "The visitors bring a friend."
	case ModSpaceWalk:
		return "You drift instead of hopping."
	default:
		return ""
	}
}

// ModifierDifficulty scales the coins granted for accepting a modifier.
type ModifierDifficulty int

const (
	DifficultyEasy ModifierDifficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d ModifierDifficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return "unknown"
	}
}

func (m Modifier) Difficulty() ModifierDifficulty {
	switch m {
	case ModHyperSheep:
		return DifficultyEasy
	case ModMoonGravity:
		return DifficultyMedium
	case ModUfo:
		return DifficultyHard
	case ModFeverDream:
		return DifficultyHard
	case ModSpaceWalk:
		return DifficultyEasy
	default:
		return DifficultyEasy
	}
}

// CoinsGiven is the money granted when the player picks a modifier.
func (d ModifierDifficulty) CoinsGiven() int {
	switch d {
	case DifficultyEasy:
		return 4
	case DifficultyMedium:
		return 5
	case DifficultyHard:
		return 6
	default:
		return 4
	}
}

// randomModifier draws a modifier uniformly from the full pool.
func randomModifier(rng *rand.Rand) Modifier {
	return Modifier(rng.Intn(int(modifierCount)))
}

// hopParams are the spawn-time movement knobs derived for each sheep.
// They are fixed at spawn and never re-derived, so a modifier expiring
// mid-round does not change sheep that already exist.
type hopParams struct {
	moveSpeedMult   float64
	hopSpeedMult    float64
	timeBetweenHops float64
	hopTimeLength   float64
	jumpHeightMult  float64
}

func defaultSheepHopParams() hopParams {
	return hopParams{
		moveSpeedMult:   1.0,
		hopSpeedMult:    1.0,
		timeBetweenHops: 0.2,
		hopTimeLength:   0.3,
		jumpHeightMult:  1.0,
	}
}

// modifierHopEffects is the registry of pure spawn-parameter effects, keyed
// by modifier. Decision points consult the registry instead of scattering
// modifier checks through the state machine.
var modifierHopEffects = map[Modifier]func(*hopParams){
	ModMoonGravity: func(p *hopParams) {
		p.hopSpeedMult *= 0.8
		p.hopTimeLength += 0.5
		p.jumpHeightMult *= 6.0
	},
	ModHyperSheep: func(p *hopParams) {
		p.hopSpeedMult *= 1.3
		p.moveSpeedMult *= 1.3
		p.timeBetweenHops *= 0.1
	},
}

// sheepHopParams derives the movement knobs for a newly spawned sheep from
// the currently active modifiers.
func sheepHopParams(active []Modifier) hopParams {
	p := defaultSheepHopParams()
	for _, m := range active {
		if effect, ok := modifierHopEffects[m]; ok {
			effect(&p)
		}
	}
	return p
}
