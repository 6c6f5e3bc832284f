package game

import (
	"fmt"
	"math/rand"
	"testing"
)

func testRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- test determinism
}

// --- resolveGoal ---

func TestResolveGoal_WhiteScoresOne(t *testing.T) {
	st := NewGameState()
	res := resolveGoal(ColorWhite, st)
	if res.ScoreDelta != 1 || res.MoneyDelta != 0 {
		t.Fatalf("white should score 1, got score=%d money=%d", res.ScoreDelta, res.MoneyDelta)
	}
}

func TestResolveGoal_BlueScoresFive(t *testing.T) {
	st := NewGameState()
	res := resolveGoal(ColorBlue, st)
	if res.ScoreDelta != 5 {
		t.Fatalf("blue should score 5, got %d", res.ScoreDelta)
	}
}

func TestResolveGoal_RedMultipliesPoints(t *testing.T) {
	st := NewGameState()
	st.Points = 10
	res := resolveGoal(ColorRed, st)
	if res.ScoreDelta != 5 {
		t.Fatalf("red at 10 points should add 5 (x1.5), got %d", res.ScoreDelta)
	}
	st.applyResolution(ColorRed, res)
	if st.Points != 15 {
		t.Fatalf("expected 15 points, got %d", st.Points)
	}
}

func TestResolveGoal_RedAtZeroPoints(t *testing.T) {
	st := NewGameState()
	res := resolveGoal(ColorRed, st)
	if res.ScoreDelta != 0 {
		t.Fatalf("red at 0 points should add nothing, got %d", res.ScoreDelta)
	}
}

func TestResolveGoal_GoldGivesMoney(t *testing.T) {
	st := NewGameState()
	res := resolveGoal(ColorGold, st)
	if res.ScoreDelta != 0 || res.MoneyDelta != 1 {
		t.Fatalf("gold should give 1 money and no points, got score=%d money=%d",
			res.ScoreDelta, res.MoneyDelta)
	}
}

func TestResolveGoal_EvolutionEveryFifthWhite(t *testing.T) {
	st := NewGameState()
	st.Charms = []Charm{CharmEvolution}

	st.WhiteCountedRun = 3
	res := resolveGoal(ColorWhite, st)
	if res.EvolveWhite {
		t.Fatal("4th white of the run should not evolve")
	}
	if res.ScoreDelta != 0 {
		t.Fatalf("whites should score nothing under evolution, got %d", res.ScoreDelta)
	}

	st.WhiteCountedRun = 4
	res = resolveGoal(ColorWhite, st)
	if !res.EvolveWhite {
		t.Fatal("5th white of the run should evolve")
	}
	st.applyResolution(ColorWhite, res)
	if st.Roster[ColorWhite] != 9 || st.Roster[ColorBlue] != 2 {
		t.Fatalf("evolution should move one white to blue, roster white=%d blue=%d",
			st.Roster[ColorWhite], st.Roster[ColorBlue])
	}
	if st.WhiteCountedRun != 5 {
		t.Fatalf("run counter should advance to 5, got %d", st.WhiteCountedRun)
	}

	res = resolveGoal(ColorWhite, st)
	if res.EvolveWhite {
		t.Fatal("6th white of the run should not evolve; the next trigger is the 10th")
	}
}

func TestResolveGoal_MitosisSpawnsTwoBlacks(t *testing.T) {
	st := NewGameState()
	st.Charms = []Charm{CharmMitosis}
	res := resolveGoal(ColorBlack, st)
	if res.SpawnBlacks != 2 {
		t.Fatalf("mitosis should spawn 2 blacks, got %d", res.SpawnBlacks)
	}
	if res.ScoreDelta != 1 {
		t.Fatalf("black should still score 1, got %d", res.ScoreDelta)
	}
}

func TestResolveGoal_RoseGoldFirstRedOnly(t *testing.T) {
	st := NewGameState()
	st.Charms = []Charm{CharmRoseGold}

	res := resolveGoal(ColorRed, st)
	if !res.TurnGold {
		t.Fatal("first red of the round should turn gold")
	}
	st.applyResolution(ColorRed, res)
	if st.Roster[ColorRed] != 0 || st.Roster[ColorGold] != 1 {
		t.Fatalf("roster should swap red for gold, red=%d gold=%d",
			st.Roster[ColorRed], st.Roster[ColorGold])
	}

	res = resolveGoal(ColorRed, st)
	if res.TurnGold {
		t.Fatal("second red of the round should not turn gold")
	}
}

func TestResolveGoal_CloningFirstCountedOnly(t *testing.T) {
	st := NewGameState()
	st.Charms = []Charm{CharmCloning}

	res := resolveGoal(ColorBlue, st)
	if !res.Clone {
		t.Fatal("first counted sheep should clone")
	}
	st.applyResolution(ColorBlue, res)
	if st.Roster[ColorBlue] != 2 {
		t.Fatalf("clone should add a blue roster unit, got %d", st.Roster[ColorBlue])
	}

	res = resolveGoal(ColorWhite, st)
	if res.Clone {
		t.Fatal("later sheep should not clone")
	}
}

func TestApplyResolution_PointsNeverNegative(t *testing.T) {
	st := NewGameState()
	st.applyResolution(ColorWhite, GoalResolution{ScoreDelta: -5})
	if st.Points != 0 {
		t.Fatalf("points should floor at 0, got %d", st.Points)
	}
}

// --- rounds and modifiers ---

func TestNewRound_RaisesTarget(t *testing.T) {
	st := NewGameState()
	st.NewRound(testRng(1))
	if st.PointTarget != 13 {
		t.Fatalf("target should go 10 -> 13, got %d", st.PointTarget)
	}
	st.NewRound(testRng(1))
	if st.PointTarget != 16 {
		t.Fatalf("target should go 13 -> 16, got %d", st.PointTarget)
	}
}

func TestNewRound_ResetsRoundCountersKeepsRunCounter(t *testing.T) {
	st := NewGameState()
	st.Points = 9
	st.SheepCounted = 4
	st.WhiteSheepCounted = 3
	st.BlackSheepCounted = 1
	st.WhiteCountedRun = 7

	st.NewRound(testRng(1))
	if st.Points != 0 || st.SheepCounted != 0 || st.WhiteSheepCounted != 0 || st.BlackSheepCounted != 0 {
		t.Fatal("round-scoped counters should reset")
	}
	if st.WhiteCountedRun != 7 {
		t.Fatalf("run-long white counter should persist, got %d", st.WhiteCountedRun)
	}
}

func TestNewRound_EvictsOldestBeyondTwo(t *testing.T) {
	st := NewGameState()
	st.AddModifier(ModHyperSheep)
	st.AddModifier(ModMoonGravity)
	info := st.NewRound(testRng(1))
	if info.HasRemoved {
		t.Fatal("two active modifiers should not trigger eviction")
	}

	st.AddModifier(ModUfo)
	info = st.NewRound(testRng(1))
	if !info.HasRemoved || info.Removed != ModHyperSheep {
		t.Fatalf("oldest modifier should be evicted, got removed=%v has=%v",
			info.Removed, info.HasRemoved)
	}
	if len(st.ActiveModifiers) != 2 {
		t.Fatalf("expected 2 active after eviction, got %d", len(st.ActiveModifiers))
	}
}

func TestNewRound_TwoUniqueInactiveChoices(t *testing.T) {
	st := NewGameState()
	st.AddModifier(ModUfo)
	for seed := int64(0); seed < 20; seed++ {
		info := st.NewRound(testRng(seed))
		if len(info.Choices) != 2 {
			t.Fatalf("expected 2 choices, got %d", len(info.Choices))
		}
		if info.Choices[0] == info.Choices[1] {
			t.Fatalf("choices should be unique, got %v twice", info.Choices[0])
		}
		for _, m := range info.Choices {
			if st.IsModifierActive(m) {
				t.Fatalf("choice %v is already active", m)
			}
		}
	}
}

func TestAddModifier_CapsAtThree(t *testing.T) {
	st := NewGameState()
	st.AddModifier(ModHyperSheep)
	st.AddModifier(ModMoonGravity)
	st.AddModifier(ModUfo)
	st.AddModifier(ModSpaceWalk)
	if len(st.ActiveModifiers) != 3 {
		t.Fatalf("expected 3 active, got %d", len(st.ActiveModifiers))
	}
	if st.IsModifierActive(ModHyperSheep) {
		t.Fatal("oldest modifier should have been pushed out")
	}
	if !st.IsModifierActive(ModSpaceWalk) {
		t.Fatal("newest modifier should be active")
	}
}

// --- spawn colours ---

func TestSpawnColors_BaseRoster(t *testing.T) {
	st := NewGameState()
	colors := st.spawnColors(testRng(1))
	counts := map[SheepColor]int{}
	for _, c := range colors {
		counts[c]++
	}
	if len(colors) != 12 {
		t.Fatalf("base roster should spawn 12 sheep, got %d", len(colors))
	}
	if counts[ColorWhite] != 10 || counts[ColorBlue] != 1 || counts[ColorRed] != 1 {
		t.Fatalf("unexpected colour mix: %v", counts)
	}
}

func TestSpawnColors_FranticHerdingDoubles(t *testing.T) {
	st := NewGameState()
	st.Charms = []Charm{CharmFranticHerding}
	colors := st.spawnColors(testRng(1))
	if len(colors) != 24 {
		t.Fatalf("frantic herding should double the flock, got %d", len(colors))
	}
}

func TestSpawnColors_GoldenSheepAddsOne(t *testing.T) {
	st := NewGameState()
	st.Charms = []Charm{CharmGoldenSheep}
	colors := st.spawnColors(testRng(1))
	golds := 0
	for _, c := range colors {
		if c == ColorGold {
			golds++
		}
	}
	if golds != 1 {
		t.Fatalf("golden sheep charm should add exactly one gold, got %d", golds)
	}
}

func TestSpawnColors_BlackWoolChance(t *testing.T) {
	st := NewGameState()
	st.Charms = []Charm{CharmBlackWool}
	st.Roster[ColorWhite] = 1000
	colors := st.spawnColors(testRng(7))
	blacks := 0
	for _, c := range colors {
		if c == ColorBlack {
			blacks++
		}
	}
	// 20% reroll chance over 1000 whites; wide band keeps this stable.
	if blacks < 150 || blacks > 250 {
		t.Fatalf("expected roughly 200 blacks from wool chance, got %d", blacks)
	}
}

// --- modifier spawn parameters ---

func TestSheepHopParams_MoonGravity(t *testing.T) {
	p := sheepHopParams([]Modifier{ModMoonGravity})
	if p.jumpHeightMult != 6.0 {
		t.Fatalf("moon gravity should raise jump height x6, got %.2f", p.jumpHeightMult)
	}
	if p.hopTimeLength != 0.8 {
		t.Fatalf("moon gravity should lengthen hops to 0.8s, got %.2f", p.hopTimeLength)
	}
}

func TestSheepHopParams_HyperSheepStacksWithMoon(t *testing.T) {
	p := sheepHopParams([]Modifier{ModMoonGravity, ModHyperSheep})
	if p.moveSpeedMult != 1.3 {
		t.Fatalf("hyper sheep should raise move speed, got %.2f", p.moveSpeedMult)
	}
	if p.jumpHeightMult != 6.0 {
		t.Fatalf("stacking should keep moon gravity's jump height, got %.2f", p.jumpHeightMult)
	}
}

func TestCoinsGiven_ScalesWithDifficulty(t *testing.T) {
	if DifficultyEasy.CoinsGiven() != 4 || DifficultyMedium.CoinsGiven() != 5 || DifficultyHard.CoinsGiven() != 6 {
		t.Fatal("difficulty coin grants should be 4/5/6")
	}
}

func TestModifierDifficulty_Labels(t *testing.T) {
	if DifficultyEasy.String() != "Easy" || DifficultyMedium.String() != "Medium" || DifficultyHard.String() != "Hard" {
		t.Fatal("difficulty labels should be Easy/Medium/Hard")
	}
	if got := fmt.Sprintf("%s [%s]", ModUfo.Name(), ModUfo.Difficulty()); got != "Visitors [Hard]" {
		t.Fatalf("modifier overlay label should format cleanly, got %q", got)
	}
}
