package game

// hopStartThresholdSq is the minimum squared distance between intent and
// current position that justifies starting a hop at all.
const hopStartThresholdSq = 0.4

// hopSoundVariants is how many footstep sound flavours the audio layer has.
const hopSoundVariants = 4

// countdown is a one-shot timer driven by elapsed seconds. It replaces the
// engine timers of the render layer so the core stays host-agnostic.
type countdown struct {
	elapsed  float64
	duration float64
}

func newCountdown(duration float64) countdown {
	return countdown{duration: duration}
}

// finishedCountdown returns a countdown that is already complete, used for
// cooldowns that should be ready immediately.
func finishedCountdown(duration float64) countdown {
	return countdown{elapsed: duration, duration: duration}
}

func (c *countdown) tick(dt float64) {
	c.elapsed += dt
	if c.elapsed > c.duration {
		c.elapsed = c.duration
	}
}

func (c *countdown) finished() bool { return c.elapsed >= c.duration }

// fraction returns completion in [0,1].
func (c *countdown) fraction() float64 {
	if c.duration <= 0 {
		return 1
	}
	return c.elapsed / c.duration
}

func (c *countdown) reset(duration float64) {
	c.duration = duration
	c.elapsed = 0
}

// HopController integrates hop-based movement toward an intent point.
// It is attached to every moving actor (sheep and player) and is the only
// code that writes positions; behaviour code only steers the intent.
//
// Invariant: hopSrc/hopDest are meaningful exactly while airborne is true.
type HopController struct {
	// Intent is the desired location on the XZ plane. It is re-clamped to
	// the world bounds every tick before use, so a hop destination can
	// never leave the pasture even if the intent drifts out.
	Intent Vec2

	MoveSpeedMult   float64
	HopSpeedMult    float64
	TimeBetweenHops float64
	HopTimeLength   float64
	JumpHeightMult  float64

	// Glide switches the controller to continuous sliding movement with no
	// airborne phase (the SpaceWalk modifier's player movement).
	Glide      bool
	GlideSpeed float64

	airborne bool
	hopSrc   Vec2
	hopDest  Vec2
	timer    countdown
}

// NewHopController builds a controller with the given movement multiplier
// and hop timing knobs.
func NewHopController(moveSpeedMult, hopSpeedMult, timeBetweenHops, hopTimeLength float64) HopController {
	return HopController{
		MoveSpeedMult:   moveSpeedMult,
		HopSpeedMult:    hopSpeedMult,
		TimeBetweenHops: timeBetweenHops,
		HopTimeLength:   hopTimeLength,
		JumpHeightMult:  1.0,
		timer:           newCountdown(0.5),
	}
}

// Airborne reports whether the actor is mid-hop.
func (h *HopController) Airborne() bool { return h.airborne }

// HopEndpoints returns the current hop's endpoints; ok is false on the ground.
func (h *HopController) HopEndpoints() (src, dest Vec2, ok bool) {
	if !h.airborne {
		return Vec2{}, Vec2{}, false
	}
	return h.hopSrc, h.hopDest, true
}

// ApplyMovement steers the intent by a direction already scaled by dt.
func (h *HopController) ApplyMovement(dir Vec2) {
	h.Intent = h.Intent.Add(dir.Scale(h.MoveSpeedMult))
}

// Update advances the controller by dt seconds from pos and returns the new
// position, the height above ground, and whether a hop started this tick
// (the caller uses that to face the travel direction and cue a footstep).
func (h *HopController) Update(dt float64, pos Vec2, bounds Bounds) (newPos Vec2, height float64, hopStarted bool) {
	h.Intent = bounds.Clamp(h.Intent)

	if h.Glide {
		return h.updateGlide(dt, pos), 0, false
	}

	h.timer.tick(dt * h.HopSpeedMult)
	if h.timer.finished() {
		if h.airborne {
			// Just hit the ground.
			h.airborne = false
			h.timer.reset(h.TimeBetweenHops)
		} else if h.Intent.DistSq(pos) > hopStartThresholdSq {
			h.airborne = true
			h.timer.reset(h.HopTimeLength)
			h.hopSrc = pos
			h.hopDest = bounds.Clamp(h.Intent)
			hopStarted = true
		}
	}

	newPos = pos
	if h.airborne {
		t := h.timer.fraction()
		newPos = Lerp(h.hopSrc, h.hopDest, t)
		height = h.JumpHeightMult * jumpHeight(t)
	}
	return newPos, height, hopStarted
}

// updateGlide slides the actor straight toward the intent at GlideSpeed.
func (h *HopController) updateGlide(dt float64, pos Vec2) Vec2 {
	to := h.Intent.Sub(pos)
	dist := to.Len()
	step := h.GlideSpeed * dt
	if dist <= step || dist < 1e-9 {
		return h.Intent
	}
	return pos.Add(to.Scale(step / dist))
}

// jumpHeight is the hop's vertical profile: a parabola that peaks at 1.0
// halfway through the flight and returns to 0 on landing.
func jumpHeight(t float64) float64 {
	return 4.0 * t * (1.0 - t)
}
