package game

import (
	"fmt"
	"math"
	"math/rand"
)

// StateTag identifies which behaviour state a sheep is in, for rendering
// and logging. The states themselves carry payloads (see sheepState).
type StateTag int

const (
	TagWander StateTag = iota
	TagEvading
	TagSpooked
	TagBeingCounted
	TagBeingAbducted
)

func (t StateTag) String() string {
	switch t {
	case TagWander:
		return "wander"
	case TagEvading:
		return "evading"
	case TagSpooked:
		return "spooked"
	case TagBeingCounted:
		return "counted"
	case TagBeingAbducted:
		return "abducted"
	default:
		return "unknown"
	}
}

// sheepState is a sealed sum type: exactly one variant is active at a time
// and each variant owns its payload, so invalid combinations (say, a wander
// timer alongside a danger position) cannot be represented.
type sheepState interface {
	tag() StateTag
}

// stateWander is the resting default; wait counts down to the next intent.
type stateWander struct {
	wait    float64
	elapsed float64
}

// stateEvading tracks the latest qualifying danger position.
type stateEvading struct {
	danger Vec2
}

// stateSpooked remembers where the bark came from.
type stateSpooked struct {
	danger Vec2
}

// stateCounted is the slow deliberate walk into the goal.
type stateCounted struct{}

// stateAbducted freezes the sheep under the UFO while it ascends.
type stateAbducted struct{}

func (stateWander) tag() StateTag   { return TagWander }
func (stateEvading) tag() StateTag  { return TagEvading }
func (stateSpooked) tag() StateTag  { return TagSpooked }
func (stateCounted) tag() StateTag  { return TagBeingCounted }
func (stateAbducted) tag() StateTag { return TagBeingAbducted }

// dangerActor is a world-space danger (player, UFO shadow) a sheep reacts to.
type dangerActor struct {
	pos    Vec2
	radius float64
}

// Sheep is one flocking creature. Position is only ever written by the hop
// controller; behaviour code steers the intent.
type Sheep struct {
	id    int
	label string
	color SheepColor

	pos    Vec2
	height float64
	facing float64

	state sheepState

	// Per-instance tuning, fixed at spawn from the modifier/charm state.
	stepDistance     float64
	minWait          float64
	maxWait          float64
	defaultSpeedMult float64
	spookedSpeedMult float64

	// herdDir is written only by the flock index and read by the wander
	// and evading behaviours.
	herdDir Vec2

	hop HopController
}

// newSheep spawns a sheep at pos with movement knobs derived from the
// active modifiers.
func newSheep(id int, color SheepColor, pos Vec2, params hopParams, rng *rand.Rand) *Sheep {
	s := &Sheep{
		id:    id,
		label: fmt.Sprintf("S%d", id),
		color: color,
		pos:   pos,

		stepDistance:     params.moveSpeedMult * 2.0,
		minWait:          1.5,
		maxWait:          5.0,
		defaultSpeedMult: params.moveSpeedMult,
		spookedSpeedMult: params.moveSpeedMult * 2.0,
	}
	s.hop = NewHopController(params.moveSpeedMult, params.hopSpeedMult,
		params.timeBetweenHops, params.hopTimeLength)
	s.hop.JumpHeightMult = params.jumpHeightMult
	s.hop.Intent = pos
	s.state = stateWander{wait: s.randomWait(rng)}
	return s
}

func (s *Sheep) randomWait(rng *rand.Rand) float64 {
	return s.minWait + rng.Float64()*(s.maxWait-s.minWait)
}

// ID returns the sheep's stable identity.
func (s *Sheep) ID() int { return s.id }

// Color returns the spawn colour.
func (s *Sheep) Color() SheepColor { return s.color }

// Pos returns the sheep's planar position.
func (s *Sheep) Pos() Vec2 { return s.pos }

// StateTag returns the active behaviour state's tag.
func (s *Sheep) StateTag() StateTag { return s.state.tag() }

// IsBeingAbducted reports whether the sheep is rising toward a UFO.
func (s *Sheep) IsBeingAbducted() bool { return s.state.tag() == TagBeingAbducted }

// flockEligible reports whether the sheep participates in the flock index.
func (s *Sheep) flockEligible() bool {
	t := s.state.tag()
	return t == TagWander || t == TagEvading
}

// BecomeSpooked reacts to a bark. Only wandering or evading sheep care;
// anything else ignores it.
func (s *Sheep) BecomeSpooked(dangerPos Vec2) {
	switch s.state.(type) {
	case stateWander, stateEvading:
		s.state = stateSpooked{danger: dangerPos}
	}
}

// StartAbduction forces the abducted state. It is a silent no-op while the
// sheep is already being abducted or while it is being counted.
func (s *Sheep) StartAbduction() bool {
	switch s.state.(type) {
	case stateAbducted, stateCounted:
		return false
	}
	s.state = stateAbducted{}
	return true
}

// beginCounting switches to the goal approach. Never entered from abduction.
func (s *Sheep) beginCounting() {
	if s.state.tag() == TagBeingAbducted {
		return
	}
	s.state = stateCounted{}
}

// sheepEnv is the per-tick read-only input to the state machine.
type sheepEnv struct {
	dangers     []dangerActor
	goal        Vec2
	hasGoal     bool
	bounds      Bounds
	tuning      *Tuning
	wellTrained bool
	rng         *rand.Rand
}

// nearestDangerInRange returns the closest qualifying danger, if any is
// within its interaction radius of pos.
func nearestDangerInRange(pos Vec2, dangers []dangerActor) (Vec2, bool) {
	best := Vec2{}
	bestDist := math.MaxFloat64
	found := false
	for _, d := range dangers {
		dist := pos.Dist(d.pos)
		if dist < d.radius && dist < bestDist {
			best = d.pos
			bestDist = dist
			found = true
		}
	}
	return best, found
}

// updateState runs one tick of the behaviour state machine, evaluated in
// the fixed priority order abducted > counted > spooked > evading > wander.
func (s *Sheep) updateState(dt float64, env *sheepEnv) {
	switch st := s.state.(type) {
	case stateAbducted:
		// Intent frozen under the sheep; ascent is driven separately.
		s.hop.Intent = s.pos

	case stateCounted:
		if !env.hasGoal {
			return
		}
		dir := env.goal.Sub(s.pos).NormalizeOr(unitX)
		s.hop.HopSpeedMult = 0.8
		s.hop.MoveSpeedMult = 0.8
		s.hop.ApplyMovement(dir.Scale(dt * s.stepDistance))

	case stateSpooked:
		if env.wellTrained {
			// Well Trained inverts the response: approach the bark.
			if s.pos.Dist(st.danger) < env.tuning.SheepInteractRange {
				s.returnToWander(env.rng)
				return
			}
			dir := st.danger.Sub(s.pos).NormalizeOr(unitX)
			s.hop.MoveSpeedMult = s.defaultSpeedMult
			s.hop.ApplyMovement(dir.Scale(dt * s.stepDistance))
			return
		}
		release := env.tuning.SheepInteractRange + env.tuning.SpookReleaseSlack
		if s.pos.Dist(st.danger) >= release {
			s.returnToWander(env.rng)
			return
		}
		dir := s.pos.Sub(st.danger).NormalizeOr(unitX)
		s.hop.MoveSpeedMult = s.spookedSpeedMult
		s.hop.ApplyMovement(dir.Scale(dt * s.stepDistance))

	case stateEvading:
		danger := st.danger
		if latest, ok := nearestDangerInRange(s.pos, env.dangers); ok {
			danger = latest
			s.state = stateEvading{danger: danger}
		}
		if s.pos.Dist(danger) >= env.tuning.SheepInteractRange {
			s.returnToWander(env.rng)
			return
		}
		preferred := s.pos.Sub(danger).NormalizeOr(unitX)
		preferred = preferred.Add(s.herdDir.Scale(env.tuning.HerdBias)).NormalizeOr(preferred)
		dir := pickEvasionDir(s.pos, preferred, env.bounds)
		s.hop.MoveSpeedMult = s.defaultSpeedMult
		s.hop.ApplyMovement(dir.Scale(dt * s.stepDistance))

	case stateWander:
		s.hop.MoveSpeedMult = s.defaultSpeedMult
		if danger, ok := nearestDangerInRange(s.pos, env.dangers); ok {
			s.state = stateEvading{danger: danger}
		}
	}
}

// returnToWander drops back to the resting state with a shortened wait so
// the sheep re-plans soon after the danger passes.
func (s *Sheep) returnToWander(rng *rand.Rand) {
	wait := 0.5
	if rng != nil {
		wait += rng.Float64() * 0.5
	}
	s.state = stateWander{wait: wait}
}

// updateWander ticks the wander timer and, on expiry, fires a new intent at
// a random heading biased toward the flock's herd direction.
func (s *Sheep) updateWander(dt float64, env *sheepEnv) {
	st, ok := s.state.(stateWander)
	if !ok {
		return
	}
	st.elapsed += dt
	if st.elapsed < st.wait {
		s.state = st
		return
	}

	jitter := FromAngle(env.rng.Float64() * 2 * math.Pi)
	dir := s.herdDir.Scale(env.tuning.HerdBias).Add(jitter.Scale(0.7)).NormalizeOr(jitter)
	s.hop.Intent = env.bounds.Clamp(s.pos.Add(dir.Scale(s.stepDistance)))
	s.state = stateWander{wait: s.randomWait(env.rng)}
}

// updateAbduction raises an abducted sheep toward the UFO. Returns true
// once the sheep is close enough to the saucer to despawn.
func (s *Sheep) updateAbduction(dt float64, t *Tuning) bool {
	if s.state.tag() != TagBeingAbducted {
		return false
	}
	s.height += t.AbductionAscent * dt
	if s.height > t.UfoHeight {
		s.height = t.UfoHeight
	}
	return s.height >= t.UfoHeight-2.0
}

// integrate runs the hop controller and updates facing on hop start.
// Returns whether a hop started this tick.
func (s *Sheep) integrate(dt float64, bounds Bounds) bool {
	if s.state.tag() == TagBeingAbducted {
		// Position is frozen; only the externally driven ascent moves it.
		return false
	}
	newPos, height, hopStarted := s.hop.Update(dt, s.pos, bounds)
	s.pos = newPos
	s.height = height
	if hopStarted {
		if _, dest, ok := s.hop.HopEndpoints(); ok {
			s.facing = dest.Sub(s.pos).Heading()
		}
	}
	return hopStarted
}

// pickEvasionDir chooses among the preferred escape direction, its two
// perpendiculars, and its negation, scoring each candidate by how far its
// bounds-clamped step actually gets from pos. Prevents sheep pinning
// themselves into corners.
func pickEvasionDir(pos Vec2, preferred Vec2, bounds Bounds) Vec2 {
	target := bounds.Clamp(pos.Add(preferred))
	if target == pos.Add(preferred) {
		return preferred
	}

	bestDir := preferred
	bestScore := target.DistSq(pos)
	for _, dir := range []Vec2{preferred.Perp(), preferred.Perp().Neg(), preferred.Neg()} {
		candidate := bounds.Clamp(pos.Add(dir))
		if score := candidate.DistSq(pos); score > bestScore {
			bestScore = score
			bestDir = dir
		}
	}
	return bestDir
}
