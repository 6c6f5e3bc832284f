package game

import (
	"math"
	"testing"
)

func wideOpenBounds() Bounds {
	return Bounds{Min: Vec2{X: -1000, Z: -1000}, Max: Vec2{X: 1000, Z: 1000}}
}

// --- countdown ---

func TestCountdown_Fraction(t *testing.T) {
	c := newCountdown(2.0)
	c.tick(0.5)
	if math.Abs(c.fraction()-0.25) > 1e-9 {
		t.Fatalf("expected fraction 0.25, got %.4f", c.fraction())
	}
	if c.finished() {
		t.Fatal("countdown should not be finished at 0.5/2.0")
	}
	c.tick(5.0)
	if !c.finished() {
		t.Fatal("countdown should be finished after overshooting")
	}
	if c.fraction() != 1.0 {
		t.Fatalf("fraction should clamp to 1.0, got %.4f", c.fraction())
	}
}

func TestCountdown_FinishedConstructor(t *testing.T) {
	c := finishedCountdown(3.0)
	if !c.finished() {
		t.Fatal("finishedCountdown should start complete")
	}
	c.reset(3.0)
	if c.finished() {
		t.Fatal("reset should restart the countdown")
	}
}

// --- jump profile ---

func TestJumpHeight_Parabola(t *testing.T) {
	if h := jumpHeight(0); h != 0 {
		t.Fatalf("height at takeoff should be 0, got %.4f", h)
	}
	if h := jumpHeight(0.5); math.Abs(h-1.0) > 1e-9 {
		t.Fatalf("height at apex should be 1.0, got %.4f", h)
	}
	if h := jumpHeight(1); h != 0 {
		t.Fatalf("height at landing should be 0, got %.4f", h)
	}
	if jumpHeight(0.25) != jumpHeight(0.75) {
		t.Fatal("jump profile should be symmetric around the apex")
	}
}

// --- HopController ---

func TestHopController_HopStartsWhenIntentFar(t *testing.T) {
	h := NewHopController(1.0, 1.0, 0.2, 0.3)
	h.Intent = Vec2{X: 4, Z: 0}
	pos := Vec2{}

	_, _, started := h.Update(0.5, pos, wideOpenBounds())
	if !started {
		t.Fatal("hop should start once the idle timer elapses with a distant intent")
	}
	if !h.Airborne() {
		t.Fatal("controller should be airborne after hop start")
	}
	src, dest, ok := h.HopEndpoints()
	if !ok {
		t.Fatal("endpoints should be available while airborne")
	}
	if src != pos || dest != h.Intent {
		t.Fatalf("unexpected endpoints src=%v dest=%v", src, dest)
	}
}

func TestHopController_NoHopBelowThreshold(t *testing.T) {
	h := NewHopController(1.0, 1.0, 0.2, 0.3)
	h.Intent = Vec2{X: 0.5, Z: 0} // distSq 0.25, under the start threshold

	_, _, started := h.Update(0.5, Vec2{}, wideOpenBounds())
	if started || h.Airborne() {
		t.Fatal("intent within the start threshold should not trigger a hop")
	}
}

func TestHopController_MidHopPositionAndHeight(t *testing.T) {
	h := NewHopController(1.0, 1.0, 0.2, 0.3)
	h.Intent = Vec2{X: 4, Z: 0}
	pos := Vec2{}

	pos, _, _ = h.Update(0.5, pos, wideOpenBounds()) // takeoff
	pos, height, _ := h.Update(0.15, pos, wideOpenBounds())
	if math.Abs(pos.X-2.0) > 1e-9 || math.Abs(pos.Z) > 1e-9 {
		t.Fatalf("expected midpoint (2,0), got (%.4f,%.4f)", pos.X, pos.Z)
	}
	if math.Abs(height-1.0) > 1e-9 {
		t.Fatalf("expected apex height 1.0, got %.4f", height)
	}
}

func TestHopController_LandsGrounded(t *testing.T) {
	h := NewHopController(1.0, 1.0, 0.2, 0.3)
	h.Intent = Vec2{X: 4, Z: 0}
	pos := Vec2{}

	var height float64
	for i := 0; i < 200; i++ {
		pos, height, _ = h.Update(1.0/60.0, pos, wideOpenBounds())
		if h.Airborne() {
			continue
		}
		if i > 30 { // past takeoff and flight
			break
		}
	}
	if h.Airborne() {
		t.Fatal("hop should have landed")
	}
	if height != 0 {
		t.Fatalf("height should be 0 on the ground, got %.4f", height)
	}
	if pos.Dist(h.Intent) > 0.5 {
		t.Fatalf("landing should be near the intent, got (%.2f,%.2f)", pos.X, pos.Z)
	}
}

func TestHopController_DestClampedToBounds(t *testing.T) {
	b := Bounds{Min: Vec2{X: -3, Z: -3}, Max: Vec2{X: 3, Z: 3}}
	h := NewHopController(1.0, 1.0, 0.2, 0.3)
	h.Intent = Vec2{X: 10, Z: 0}

	h.Update(0.5, Vec2{}, b)
	_, dest, ok := h.HopEndpoints()
	if !ok {
		t.Fatal("expected an airborne hop")
	}
	if dest.X != 3 || dest.Z != 0 {
		t.Fatalf("hop destination should clamp to bounds, got (%.2f,%.2f)", dest.X, dest.Z)
	}
}

func TestHopController_GlideReachesIntentWithoutOvershoot(t *testing.T) {
	h := NewHopController(1.0, 1.0, 0.2, 0.3)
	h.Glide = true
	h.GlideSpeed = 10.0
	h.Intent = Vec2{X: 5, Z: 0}
	pos := Vec2{}

	pos, height, started := h.Update(0.2, pos, wideOpenBounds())
	if started || height != 0 {
		t.Fatal("glide should never hop or leave the ground")
	}
	if math.Abs(pos.X-2.0) > 1e-9 {
		t.Fatalf("expected glide to (2,0), got (%.4f,%.4f)", pos.X, pos.Z)
	}
	for i := 0; i < 10; i++ {
		pos, _, _ = h.Update(0.2, pos, wideOpenBounds())
	}
	if pos != h.Intent {
		t.Fatalf("glide should settle exactly on the intent, got (%.4f,%.4f)", pos.X, pos.Z)
	}
}

func TestHopController_ApplyMovementScalesBySpeedMult(t *testing.T) {
	h := NewHopController(3.0, 1.0, 0.1, 0.2)
	h.ApplyMovement(Vec2{X: 1, Z: 0})
	if math.Abs(h.Intent.X-3.0) > 1e-9 {
		t.Fatalf("intent should move by dir*MoveSpeedMult, got %.4f", h.Intent.X)
	}
}
