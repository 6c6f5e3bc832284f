package game

import (
	"reflect"
	"testing"
)

// --- round loop ---

func TestWorld_ScoringAdvancesToModifierChoice(t *testing.T) {
	ts := NewTestSim(
		WithSeed(11),
		WithGoal(0, 0),
		WithPointTarget(1),
		WithSheepAt(ColorBlue, 0.3, 0),
	)

	ts.RunTicks(2) // one tick to begin counting, one to score
	if ts.World.Phase() != PhaseModifierChoice {
		t.Fatalf("reaching the target should open the modifier choice, got %v", ts.World.Phase())
	}
	if !ts.SimLog.HasEntry("round", "phase_change", "modifier-choice") {
		t.Fatal("phase change should be logged")
	}
	choices := ts.World.RoundChoices().Choices
	if len(choices) != 2 {
		t.Fatalf("expected 2 modifier choices, got %d", len(choices))
	}
}

func TestWorld_ChooseModifierGrantsCoinsAndOpensShop(t *testing.T) {
	ts := NewTestSim(
		WithSeed(11),
		WithGoal(0, 0),
		WithPointTarget(1),
		WithSheepAt(ColorBlue, 0.3, 0),
	)
	ts.RunTicks(2)

	w := ts.World
	if w.ChooseModifier(5) {
		t.Fatal("out-of-range choice should fail")
	}
	picked := w.RoundChoices().Choices[0]
	if !w.ChooseModifier(0) {
		t.Fatal("valid choice should succeed")
	}
	if !w.State.IsModifierActive(picked) {
		t.Fatal("chosen modifier should be active")
	}
	if w.State.Money != picked.Difficulty().CoinsGiven() {
		t.Fatalf("expected %d coins, got %d", picked.Difficulty().CoinsGiven(), w.State.Money)
	}
	if w.Phase() != PhaseShop {
		t.Fatalf("choice should open the shop, got %v", w.Phase())
	}
	if len(w.Shop.Items) != shopOfferCount {
		t.Fatalf("shop should be stocked with %d items, got %d", shopOfferCount, len(w.Shop.Items))
	}

	if !w.LeaveShop() {
		t.Fatal("leaving the shop should succeed")
	}
	if w.Phase() != PhaseHerding || w.Round() != 2 {
		t.Fatalf("expected round 2 herding, got round %d phase %v", w.Round(), w.Phase())
	}
	if w.SheepCount() != 12 {
		t.Fatalf("round 2 should respawn the base roster of 12, got %d", w.SheepCount())
	}
}

func TestWorld_CountdownExpiryEndsRun(t *testing.T) {
	tun := DefaultTuning()
	tun.RoundSeconds = 0.5
	ts := NewTestSim(
		WithSeed(3),
		WithTuning(tun),
		WithoutGoal(),
		WithSheepAt(ColorWhite, -20, -20),
	)

	ts.RunTicks(60)
	if ts.World.Phase() != PhaseGameOver {
		t.Fatalf("timer expiry should end the run, got %v", ts.World.Phase())
	}
	if ts.World.Countdown() != 0 {
		t.Fatalf("countdown should bottom out at 0, got %.2f", ts.World.Countdown())
	}
}

// --- goal scoring ---

func TestWorld_FirstCountedFollowsSpawnOrder(t *testing.T) {
	ts := NewTestSim(
		WithSeed(4),
		WithGoal(0, 0),
		WithCharm(CharmCloning),
		WithSheepAt(ColorWhite, 0.5, 0),
		WithSheepAt(ColorBlue, 0, 0.5),
	)

	ts.RunTicks(2)
	w := ts.World
	if w.SheepCount() != 0 {
		t.Fatalf("both sheep should have scored, %d remain", w.SheepCount())
	}
	if w.State.Points != 6 {
		t.Fatalf("expected 1+5 points, got %d", w.State.Points)
	}
	// Cloning applies to the first counted, which is the earlier spawn.
	if w.State.Roster[ColorWhite] != 11 {
		t.Fatalf("the white should have been cloned, roster white=%d", w.State.Roster[ColorWhite])
	}
	if w.State.Roster[ColorBlue] != 1 {
		t.Fatalf("the blue should not have been cloned, roster blue=%d", w.State.Roster[ColorBlue])
	}
	score, _ := w.TickDeltas()
	if score != 6 {
		t.Fatalf("scoring tick should report a +6 delta, got %d", score)
	}
}

func TestWorld_MitosisSpawnsReplacementBlacks(t *testing.T) {
	ts := NewTestSim(
		WithSeed(5),
		WithGoal(0, 0),
		WithCharm(CharmMitosis),
		WithSheepAt(ColorBlack, 0.5, 0),
	)

	ts.RunTicks(2)
	w := ts.World
	if w.SheepCount() != 2 {
		t.Fatalf("mitosis should leave 2 replacement blacks, got %d", w.SheepCount())
	}
	for _, s := range ts.AllSheep() {
		if s.Color() != ColorBlack {
			t.Fatalf("replacements should be black, got %v", s.Color())
		}
		if !w.Bounds.Contains(s.Pos()) {
			t.Fatalf("replacement spawned out of bounds at %v", s.Pos())
		}
	}
	if ts.SimLog.CountCategory("state", "spawn") != 2 {
		t.Fatal("both replacement spawns should be logged")
	}
}

func TestWorld_NoGoalMeansNoScoring(t *testing.T) {
	ts := NewTestSim(
		WithSeed(6),
		WithoutGoal(),
		WithSheepAt(ColorBlue, 0.3, 0),
	)
	ts.RunTicks(120)
	if ts.World.State.Points != 0 {
		t.Fatalf("no goal should mean no points, got %d", ts.World.State.Points)
	}
	if ts.World.SheepCount() != 1 {
		t.Fatal("the sheep should still be around")
	}
}

// --- bark ---

func TestWorld_BarkSpooksOnlyWithinRadius(t *testing.T) {
	ts := NewTestSim(
		WithSeed(7),
		WithoutGoal(),
		WithSheepAt(ColorWhite, 3, 0),
		WithSheepAt(ColorWhite, 30, 0),
	)

	ts.World.BarkAt(Vec2{}, ts.World.Tuning.BarkRadius)
	near := ts.Sheep(0)
	far := ts.Sheep(1)
	if near.StateTag() != TagSpooked {
		t.Fatalf("sheep inside the bark radius should spook, got %v", near.StateTag())
	}
	if far.StateTag() != TagWander {
		t.Fatalf("sheep outside the bark radius should not care, got %v", far.StateTag())
	}
}

func TestWorld_BarkCooldown(t *testing.T) {
	ts := NewTestSim(
		WithSeed(8),
		WithoutGoal(),
		WithPlayerAt(0, -20),
		WithSheepAt(ColorWhite, 2, -20),
	)

	w := ts.World
	if !w.Bark() {
		t.Fatal("first bark should fire")
	}
	if w.Bark() {
		t.Fatal("second bark should be blocked by the cooldown")
	}
	ts.RunTicks(int(w.Tuning.BarkCooldown*60) + 5)
	if !w.Bark() {
		t.Fatal("bark should be available again after the cooldown")
	}
}

// --- abduction ---

func TestWorld_AbductionAscendsAndDespawns(t *testing.T) {
	ts := NewTestSim(
		WithSeed(9),
		WithoutGoal(),
		WithSheepAt(ColorWhite, 5, -20),
	)
	ts.World.StartAbduction(0)
	if ts.Sheep(0).StateTag() != TagBeingAbducted {
		t.Fatal("abduction should start")
	}

	done := ts.RunUntil(func(ts *TestSim) bool {
		return ts.World.SheepCount() == 0
	}, 300)
	if done < 0 {
		t.Fatal("abducted sheep should despawn within 5 seconds")
	}
	if !ts.SimLog.HasEntry("state", "despawn", "abducted") {
		t.Fatal("despawn should be logged")
	}
}

func TestWorld_SilentNoOpsForUnknownIDs(t *testing.T) {
	ts := NewTestSim(WithSeed(10), WithSheepAt(ColorWhite, 0, -20))
	ts.World.StartAbduction(999)
	ts.World.TeleportSheep(999)
	ts.World.TeleportPlayer() // no player placed
	if ts.World.SheepCount() != 1 || ts.Sheep(0).StateTag() != TagWander {
		t.Fatal("unknown-id operations should change nothing")
	}
}

func TestWorld_TeleportSheepStaysInBounds(t *testing.T) {
	ts := NewTestSim(WithSeed(12), WithSheepAt(ColorWhite, 0, -20))
	for i := 0; i < 50; i++ {
		ts.World.TeleportSheep(0)
		s := ts.Sheep(0)
		if !ts.World.Bounds.Contains(s.Pos()) {
			t.Fatalf("teleport left the bounds: %v", s.Pos())
		}
		if s.hop.Intent != s.Pos() {
			t.Fatal("teleport should reset the intent to the new position")
		}
	}
}

// --- whole-flock invariants ---

func TestWorld_FlockStaysInBoundsUnderPressure(t *testing.T) {
	opts := []SimOption{
		WithSeed(13),
		WithGoal(0, 0),
		WithPlayerAt(0, -40),
	}
	for i := 0; i < 12; i++ {
		opts = append(opts, WithSheepAt(ColorWhite, float64(i%4)*8-30, float64(i/4)*8-45))
	}
	ts := NewTestSim(opts...)

	barkSpots := []Vec2{{X: -30, Z: -45}, {X: 0, Z: -30}, {X: 30, Z: -45}, {X: 0, Z: 5}}
	for i := 0; i < 10; i++ {
		ts.RunTicks(60)
		ts.World.BarkAt(barkSpots[i%len(barkSpots)], 10)
		for _, s := range ts.AllSheep() {
			if !ts.World.Bounds.Contains(s.Pos()) {
				t.Fatalf("sheep %d escaped to %v", s.ID(), s.Pos())
			}
		}
	}
}

func TestWorld_DeterministicForSameSeed(t *testing.T) {
	build := func() *TestSim {
		return NewTestSim(
			WithSeed(99),
			WithGoal(0, 0),
			WithSheepAt(ColorWhite, -10, -30),
			WithSheepAt(ColorWhite, -5, -30),
			WithSheepAt(ColorBlue, 0, -30),
			WithSheepAt(ColorRed, 5, -30),
		)
	}
	a := build()
	b := build()
	a.RunTicks(600)
	b.RunTicks(600)

	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Fatal("identical seeds should produce identical runs")
	}
}

func TestWorld_HopEventsCarryValidVariants(t *testing.T) {
	ts := NewTestSim(
		WithSeed(14),
		WithoutGoal(),
		WithSheepAt(ColorWhite, 0, -20),
		WithSheepAt(ColorWhite, 3, -20),
	)

	found := ts.RunUntil(func(ts *TestSim) bool {
		return len(ts.World.HopEvents()) > 0
	}, 600)
	if found < 0 {
		t.Fatal("wandering sheep should hop within 10 seconds")
	}
	for _, ev := range ts.World.HopEvents() {
		if ev.Variant < 0 || ev.Variant >= hopSoundVariants {
			t.Fatalf("hop variant %d out of range", ev.Variant)
		}
		if !ts.World.Bounds.Contains(ev.Pos) {
			t.Fatalf("hop event out of bounds at %v", ev.Pos)
		}
	}
}

// --- UFO ---

func TestWorld_UfoEventuallyGrabsASheep(t *testing.T) {
	tun := DefaultTuning()
	tun.UfoAbductionWait = 0.5
	tun.UfoSpeed = 30.0
	ts := NewTestSim(
		WithSeed(15),
		WithTuning(tun),
		WithoutGoal(),
		WithUfoAt(0, -20),
		WithSheepAt(ColorWhite, 0, -22),
		WithSheepAt(ColorWhite, 4, -22),
	)

	grabbed := ts.RunUntil(func(ts *TestSim) bool {
		for _, s := range ts.AllSheep() {
			if s.IsBeingAbducted() {
				return true
			}
		}
		return false
	}, 1200)
	if grabbed < 0 {
		t.Fatal("a fast, eager saucer should grab someone within 20 seconds")
	}
}
