package game

import "testing"

func testEnv(tun *Tuning) sheepEnv {
	return sheepEnv{
		bounds: DefaultBounds(),
		tuning: tun,
		rng:    testRng(5),
	}
}

// --- state transitions ---

func TestSheep_WanderToEvadingNearDanger(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	env := testEnv(&tun)
	env.dangers = []dangerActor{{pos: Vec2{X: 3, Z: 0}, radius: tun.SheepInteractRange}}

	s.updateState(1.0/60.0, &env)
	if s.StateTag() != TagEvading {
		t.Fatalf("danger in range should trigger evasion, got %v", s.StateTag())
	}
}

func TestSheep_WanderIgnoresDistantDanger(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	env := testEnv(&tun)
	env.dangers = []dangerActor{{pos: Vec2{X: 20, Z: 0}, radius: tun.SheepInteractRange}}

	s.updateState(1.0/60.0, &env)
	if s.StateTag() != TagWander {
		t.Fatalf("distant danger should be ignored, got %v", s.StateTag())
	}
}

func TestSheep_EvadingReleasesOutOfRange(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	s.state = stateEvading{danger: Vec2{X: tun.SheepInteractRange + 1, Z: 0}}
	env := testEnv(&tun)

	s.updateState(1.0/60.0, &env)
	if s.StateTag() != TagWander {
		t.Fatalf("evasion should release past the interact range, got %v", s.StateTag())
	}
}

func TestSheep_EvadingMovesAwayFromDanger(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	danger := Vec2{X: 2, Z: 0}
	s.state = stateEvading{danger: danger}
	env := testEnv(&tun)
	env.dangers = []dangerActor{{pos: danger, radius: tun.SheepInteractRange}}

	before := s.hop.Intent
	s.updateState(1.0/60.0, &env)
	if s.hop.Intent.X >= before.X {
		t.Fatalf("intent should move away from danger on +X side, went %.3f -> %.3f",
			before.X, s.hop.Intent.X)
	}
}

func TestSheep_SpookedReleaseDistance(t *testing.T) {
	tun := DefaultTuning()
	release := tun.SheepInteractRange + tun.SpookReleaseSlack
	env := testEnv(&tun)

	s := spawnTestSheep(0, 0, 0)
	s.state = stateSpooked{danger: Vec2{X: release - 0.1, Z: 0}}
	s.updateState(1.0/60.0, &env)
	if s.StateTag() != TagSpooked {
		t.Fatal("sheep inside the release distance should stay spooked")
	}
	if s.hop.MoveSpeedMult != s.spookedSpeedMult {
		t.Fatalf("spooked flight should run at the spooked multiplier, got %.2f",
			s.hop.MoveSpeedMult)
	}

	s2 := spawnTestSheep(1, 0, 0)
	s2.state = stateSpooked{danger: Vec2{X: release, Z: 0}}
	s2.updateState(1.0/60.0, &env)
	if s2.StateTag() != TagWander {
		t.Fatalf("sheep at the release distance should calm down, got %v", s2.StateTag())
	}
}

func TestSheep_SpookedFleesDanger(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	s.state = stateSpooked{danger: Vec2{X: 2, Z: 0}}
	env := testEnv(&tun)

	before := s.hop.Intent
	s.updateState(1.0/60.0, &env)
	if s.hop.Intent.X >= before.X {
		t.Fatal("spooked sheep should flee in the opposite direction")
	}
}

func TestSheep_WellTrainedApproachesBark(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	s.state = stateSpooked{danger: Vec2{X: 10, Z: 0}}
	env := testEnv(&tun)
	env.wellTrained = true

	before := s.hop.Intent
	s.updateState(1.0/60.0, &env)
	if s.hop.Intent.X <= before.X {
		t.Fatal("well trained sheep should approach the bark instead of fleeing")
	}

	// Close enough: the approach ends and the sheep settles.
	s.pos = Vec2{X: 10 - tun.SheepInteractRange + 0.5, Z: 0}
	s.updateState(1.0/60.0, &env)
	if s.StateTag() != TagWander {
		t.Fatalf("well trained sheep should settle near the bark, got %v", s.StateTag())
	}
}

func TestSheep_BecomeSpookedOnlyFromCalmStates(t *testing.T) {
	s := spawnTestSheep(0, 0, 0)
	s.BecomeSpooked(Vec2{X: 1, Z: 0})
	if s.StateTag() != TagSpooked {
		t.Fatal("wandering sheep should spook")
	}

	s2 := spawnTestSheep(1, 0, 0)
	s2.state = stateCounted{}
	s2.BecomeSpooked(Vec2{X: 1, Z: 0})
	if s2.StateTag() != TagBeingCounted {
		t.Fatal("counted sheep should ignore barks")
	}

	s3 := spawnTestSheep(2, 0, 0)
	s3.state = stateAbducted{}
	s3.BecomeSpooked(Vec2{X: 1, Z: 0})
	if s3.StateTag() != TagBeingAbducted {
		t.Fatal("abducted sheep should ignore barks")
	}
}

func TestSheep_StartAbductionBlockedWhileCounted(t *testing.T) {
	s := spawnTestSheep(0, 0, 0)
	s.state = stateCounted{}
	if s.StartAbduction() {
		t.Fatal("counted sheep cannot be abducted")
	}
	if s.StateTag() != TagBeingCounted {
		t.Fatalf("state should be unchanged, got %v", s.StateTag())
	}

	s2 := spawnTestSheep(1, 0, 0)
	if !s2.StartAbduction() {
		t.Fatal("wandering sheep should be abductable")
	}
	if s2.StartAbduction() {
		t.Fatal("starting twice should be a no-op")
	}
}

func TestSheep_BeginCountingNotFromAbduction(t *testing.T) {
	s := spawnTestSheep(0, 0, 0)
	s.state = stateAbducted{}
	s.beginCounting()
	if s.StateTag() != TagBeingAbducted {
		t.Fatal("abduction should not be interrupted by the goal")
	}
}

func TestSheep_CountedWalksTowardGoal(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	s.state = stateCounted{}
	env := testEnv(&tun)
	env.goal = Vec2{X: 10, Z: 0}
	env.hasGoal = true

	before := s.hop.Intent
	s.updateState(1.0/60.0, &env)
	if s.hop.Intent.X <= before.X {
		t.Fatal("counted sheep should walk toward the goal")
	}
	if s.hop.MoveSpeedMult != 0.8 {
		t.Fatalf("the counting walk should be slowed to 0.8, got %.2f", s.hop.MoveSpeedMult)
	}
}

// --- abduction ascent ---

func TestSheep_AbductionAscent(t *testing.T) {
	tun := DefaultTuning()
	s := spawnTestSheep(0, 0, 0)
	s.state = stateAbducted{}

	if s.updateAbduction(1.0, &tun) {
		t.Fatal("one second of ascent should not reach the saucer")
	}
	if s.height != tun.AbductionAscent {
		t.Fatalf("expected height %.1f after 1s, got %.1f", tun.AbductionAscent, s.height)
	}
	done := false
	for i := 0; i < 10 && !done; i++ {
		done = s.updateAbduction(1.0, &tun)
	}
	if !done {
		t.Fatal("ascent should eventually complete")
	}
	if s.height > tun.UfoHeight {
		t.Fatalf("height should clamp at the saucer, got %.1f", s.height)
	}
}

func TestSheep_AbductionFreezesPlanarMovement(t *testing.T) {
	s := spawnTestSheep(0, 3, 3)
	s.state = stateAbducted{}
	before := s.pos
	if s.integrate(1.0/60.0, DefaultBounds()) {
		t.Fatal("abducted sheep should not hop")
	}
	if s.pos != before {
		t.Fatal("abducted sheep should not move on the ground plane")
	}
}

// --- evasion direction ---

func TestPickEvasionDir_OpenFieldUsesPreferred(t *testing.T) {
	b := Bounds{Min: Vec2{X: -10, Z: -10}, Max: Vec2{X: 10, Z: 10}}
	preferred := Vec2{X: 1, Z: 0}
	if got := pickEvasionDir(Vec2{}, preferred, b); got != preferred {
		t.Fatalf("open field should keep the preferred direction, got %v", got)
	}
}

func TestPickEvasionDir_CornerTurnsAround(t *testing.T) {
	b := Bounds{Min: Vec2{X: -10, Z: -10}, Max: Vec2{X: 10, Z: 10}}
	pos := Vec2{X: 9.8, Z: 9.8}
	preferred := Vec2{X: 1, Z: 1}.NormalizeOr(unitX)

	got := pickEvasionDir(pos, preferred, b)
	if got != preferred.Neg() {
		t.Fatalf("cornered sheep should reverse, got %v", got)
	}
}

func TestNearestDangerInRange_PicksClosest(t *testing.T) {
	dangers := []dangerActor{
		{pos: Vec2{X: 4, Z: 0}, radius: 5},
		{pos: Vec2{X: 2, Z: 0}, radius: 5},
		{pos: Vec2{X: 20, Z: 0}, radius: 5}, // out of range
	}
	got, ok := nearestDangerInRange(Vec2{}, dangers)
	if !ok {
		t.Fatal("expected a danger in range")
	}
	if got.X != 2 {
		t.Fatalf("expected the closest danger at x=2, got %v", got)
	}
}

func TestNearestDangerInRange_Empty(t *testing.T) {
	if _, ok := nearestDangerInRange(Vec2{}, nil); ok {
		t.Fatal("no dangers should mean no hit")
	}
}
