package game

import "math/rand"

// SheepColor is fixed at spawn. The only later change is the Rose Gold
// charm's roster reclassification (red to gold on first scoring).
type SheepColor int

const (
	ColorWhite SheepColor = iota
	ColorBlack
	ColorBlue
	ColorRed
	ColorGold
	colorCount
)

func (c SheepColor) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	case ColorBlue:
		return "blue"
	case ColorRed:
		return "red"
	case ColorGold:
		return "gold"
	default:
		return "unknown"
	}
}

// maxActiveModifiers bounds the modifier ring; the oldest is evicted at
// round advance once more than two are active.
const maxActiveModifiers = 3

// GameState holds the run- and round-scoped counters of the economy.
type GameState struct {
	Points      int
	PointTarget int
	Money       int

	// ActiveModifiers is ordered oldest-first; len never exceeds
	// maxActiveModifiers.
	ActiveModifiers []Modifier

	Charms    []Charm
	MaxCharms int

	// Roster is the persistent flock per colour, spawned every round.
	Roster [colorCount]int

	BarkRadiusBonus float64

	// Per-round counters; reset by NewRound. They gate first-of-round
	// effects (Rose Gold, Cloning Vat).
	SheepCounted      int
	WhiteSheepCounted int
	BlackSheepCounted int

	// WhiteCountedRun persists across rounds and drives Ewe-volution's
	// every-5th trigger. It is never reset by round advance.
	WhiteCountedRun int
}

// NewGameState returns the starting economy of a fresh run.
func NewGameState() *GameState {
	st := &GameState{
		PointTarget: 10,
		MaxCharms:   3,
	}
	st.Roster[ColorWhite] = 10
	st.Roster[ColorBlue] = 1
	st.Roster[ColorRed] = 1
	return st
}

func (st *GameState) IsModifierActive(m Modifier) bool {
	for _, a := range st.ActiveModifiers {
		if a == m {
			return true
		}
	}
	return false
}

func (st *GameState) IsCharmActive(c Charm) bool {
	return charmOwned(st.Charms, c)
}

func (st *GameState) CharmsFull() bool {
	return len(st.Charms) >= st.MaxCharms
}

// AddModifier appends a modifier to the ring. Eviction happens at round
// advance, not here, so a freshly chosen modifier can briefly be the third.
func (st *GameState) AddModifier(m Modifier) {
	st.ActiveModifiers = append(st.ActiveModifiers, m)
	if len(st.ActiveModifiers) > maxActiveModifiers {
		st.ActiveModifiers = st.ActiveModifiers[1:]
	}
}

// RoundInfo summarises a round advance for the UI.
type RoundInfo struct {
	Removed    Modifier
	HasRemoved bool
	Choices    []Modifier
}

// NewRound resets round-scoped counters, evicts the oldest modifier once
// more than two are active, raises the point target, and draws two unique
// modifier candidates for the player to choose from.
func (st *GameState) NewRound(rng *rand.Rand) RoundInfo {
	st.Points = 0
	st.SheepCounted = 0
	st.WhiteSheepCounted = 0
	st.BlackSheepCounted = 0

	info := RoundInfo{}
	if len(st.ActiveModifiers) > 2 {
		info.Removed = st.ActiveModifiers[0]
		info.HasRemoved = true
		st.ActiveModifiers = st.ActiveModifiers[1:]
	}
	info.Choices = st.pickModifierChoices(rng, 2)
	st.PointTarget += 2 + st.PointTarget/10
	return info
}

// pickModifierChoices draws count unique modifiers that are not currently
// active. Bounded attempts keep it total if the pool runs dry.
func (st *GameState) pickModifierChoices(rng *rand.Rand, count int) []Modifier {
	choices := make([]Modifier, 0, count)
	for attempts := 0; len(choices) < count && attempts < 100; attempts++ {
		m := randomModifier(rng)
		if st.IsModifierActive(m) || modifierListed(choices, m) {
			continue
		}
		choices = append(choices, m)
	}
	return choices
}

func modifierListed(list []Modifier, m Modifier) bool {
	for _, o := range list {
		if o == m {
			return true
		}
	}
	return false
}

// GoalResolution is the outcome of counting one sheep at the goal. It is
// produced by the pure resolver and applied by the world in one place.
type GoalResolution struct {
	ScoreDelta int
	MoneyDelta int

	// SpawnBlacks replacement black sheep appear at random in-bounds
	// positions (Mitosis).
	SpawnBlacks int
	// EvolveWhite permanently reclassifies one white roster unit as blue
	// (Ewe-volution's every-5th trigger).
	EvolveWhite bool
	// TurnGold keeps this red unit in the roster as gold instead of
	// shrinking the red roster (Rose Gold, first counted this round).
	TurnGold bool
	// Clone adds one roster unit of this colour (Cloning Vat, first
	// counted this round).
	Clone bool

	Feedback []string
}

// resolveGoal decides what counting a sheep of the given colour is worth.
// It is a pure function of the colour and the current economy; all
// mutation happens in applyResolution.
func resolveGoal(color SheepColor, st *GameState) GoalResolution {
	res := GoalResolution{}
	first := st.SheepCounted == 0

	switch color {
	case ColorWhite:
		if st.IsCharmActive(CharmEvolution) {
			if (st.WhiteCountedRun+1)%5 == 0 {
				res.EvolveWhite = true
				res.Feedback = append(res.Feedback, "Evolved")
			}
		} else {
			res.ScoreDelta = 1
			res.Feedback = append(res.Feedback, "+1 point")
		}
	case ColorBlue:
		res.ScoreDelta = 5
		res.Feedback = append(res.Feedback, "+5 points")
	case ColorRed:
		res.ScoreDelta = st.Points*3/2 - st.Points
		res.Feedback = append(res.Feedback, "Points x1.5")
		if first && st.IsCharmActive(CharmRoseGold) {
			res.TurnGold = true
			res.Feedback = append(res.Feedback, "Rose gold")
		}
	case ColorBlack:
		res.ScoreDelta = 1
		res.Feedback = append(res.Feedback, "+1 point")
		if st.IsCharmActive(CharmMitosis) {
			res.SpawnBlacks = 2
			res.Feedback = append(res.Feedback, "Mitosis")
		}
	case ColorGold:
		res.MoneyDelta = 1
		res.Feedback = append(res.Feedback, "+1 money")
	}

	if first && st.IsCharmActive(CharmCloning) {
		res.Clone = true
		res.Feedback = append(res.Feedback, "Cloned")
	}
	return res
}

// applyResolution commits a goal resolution to the economy. The counted
// sheep itself is always removed by the caller; only tallies persist.
func (st *GameState) applyResolution(color SheepColor, res GoalResolution) {
	st.Points += res.ScoreDelta
	if st.Points < 0 {
		st.Points = 0
	}
	st.Money += res.MoneyDelta

	st.SheepCounted++
	switch color {
	case ColorWhite:
		st.WhiteSheepCounted++
		st.WhiteCountedRun++
	case ColorBlack:
		st.BlackSheepCounted++
	}

	if res.EvolveWhite && st.Roster[ColorWhite] > 0 {
		st.Roster[ColorWhite]--
		st.Roster[ColorBlue]++
	}
	if res.TurnGold && st.Roster[ColorRed] > 0 {
		st.Roster[ColorRed]--
		st.Roster[ColorGold]++
	}
	if res.Clone {
		st.Roster[color]++
	}
}

// spawnColors composes the colour list for a round's flock from the roster,
// the active charms, and the Frantic Herding doubling. White units may be
// reassigned at spawn time by the wool-chance charms; the rolls are checked
// in a fixed order (black, blue, red) with the first hit winning.
func (st *GameState) spawnColors(rng *rand.Rand) []SheepColor {
	mult := 1
	if st.IsCharmActive(CharmFranticHerding) {
		mult = 2
	}

	var colors []SheepColor
	for i := 0; i < st.Roster[ColorWhite]*mult; i++ {
		c := ColorWhite
		switch {
		case st.IsCharmActive(CharmBlackWool) && rng.Float64() < 0.2:
			c = ColorBlack
		case st.IsCharmActive(CharmBlueChance) && rng.Float64() < 0.1:
			c = ColorBlue
		case st.IsCharmActive(CharmRedChance) && rng.Float64() < 0.1:
			c = ColorRed
		}
		colors = append(colors, c)
	}
	for _, fixed := range []SheepColor{ColorBlack, ColorBlue, ColorRed, ColorGold} {
		for i := 0; i < st.Roster[fixed]*mult; i++ {
			colors = append(colors, fixed)
		}
	}
	if st.IsCharmActive(CharmGoldenSheep) {
		colors = append(colors, ColorGold)
	}
	return colors
}
