package game

import (
	"fmt"
	"math/rand"
)

// simDt is the fixed timestep the headless harness runs at.
const simDt = 1.0 / 60.0

// TestSim is a headless simulation harness used exclusively by tests.
// It mirrors the render adapter's update loop but has no Ebiten dependency
// and supports deterministic seeding and structured logging.
type TestSim struct {
	World    *World
	SimLog   *SimLog
	Reporter *SimReporter

	seed    int64
	verbose bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // tuning, bounds, seed, economy state — applied first
	simOptActor                      // spawn sheep, player, UFOs — applied after the world exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
		ts.World.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
		ts.SimLog = NewSimLog(v)
	}}
}

// WithTuning replaces the default tuning knobs.
func WithTuning(t Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.Tuning = t
		ts.World.countdown = t.RoundSeconds
	}}
}

// WithBounds replaces the pasture bounds.
func WithBounds(b Bounds) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.Bounds = b
	}}
}

// WithGoal places the goal at (x, z).
func WithGoal(x, z float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.SetGoal(Vec2{X: x, Z: z}, true)
	}}
}

// WithoutGoal removes the goal entirely.
func WithoutGoal() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.SetGoal(Vec2{}, false)
	}}
}

// WithPointTarget overrides the round's point target.
func WithPointTarget(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.State.PointTarget = n
	}}
}

// WithMoney sets the starting coin balance.
func WithMoney(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.State.Money = n
	}}
}

// WithModifier activates a round modifier before anything spawns, so sheep
// pick up its movement parameters.
func WithModifier(m Modifier) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.State.AddModifier(m)
	}}
}

// WithCharm grants a charm before anything spawns.
func WithCharm(c Charm) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.World.State.Charms = append(ts.World.State.Charms, c)
	}}
}

// WithSheepAt spawns one sheep of the given colour at (x, z).
func WithSheepAt(color SheepColor, x, z float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		params := sheepHopParams(ts.World.State.ActiveModifiers)
		ts.World.addSheep(color, Vec2{X: x, Z: z}, params)
	}}
}

// WithPlayerAt places the player at (x, z).
func WithPlayerAt(x, z float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.World.player = newPlayer(Vec2{X: x, Z: z}, &ts.World.Tuning,
			ts.World.State.IsModifierActive(ModSpaceWalk))
	}}
}

// WithUfoAt spawns a saucer over (x, z) regardless of active modifiers.
func WithUfoAt(x, z float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.World.ufos = append(ts.World.ufos, newUfo(Vec2{X: x, Z: z}, &ts.World.Tuning))
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered
// passes: infrastructure first (tuning, bounds, seed, economy state), then
// actors. Unlike a real run the round is entered directly with the actors
// placed by the options, not via StartRound's grid spawn.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		World:    NewWorld(DefaultTuning(), 1),
		SimLog:   NewSimLog(false),
		Reporter: NewSimReporter(reportWindowTicks, false),
		seed:     1,
	}
	ts.World.round = 1
	ts.World.phase = PhaseHerding
	ts.World.countdown = ts.World.Tuning.RoundSeconds

	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	return ts
}

// Sheep returns the sheep with the given id, or nil.
func (ts *TestSim) Sheep(id int) *Sheep {
	return findSheep(ts.World.sheep, id)
}

// AllSheep returns the live flock.
func (ts *TestSim) AllSheep() []*Sheep {
	return ts.World.sheep
}

// CurrentTick returns the world's tick counter.
func (ts *TestSim) CurrentTick() int {
	return ts.World.CurrentTick()
}

// RunTicks advances the simulation n ticks at the fixed timestep, logging
// events to SimLog.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.World.CurrentTick()
		}
	}
	return -1
}

// runOneTick steps the world once and records change-detection entries.
func (ts *TestSim) runOneTick() {
	w := ts.World

	prevStates := make(map[int]StateTag, len(w.sheep))
	prevLabels := make(map[int]string, len(w.sheep))
	for _, s := range w.sheep {
		prevStates[s.id] = s.state.tag()
		prevLabels[s.id] = s.label
	}
	prevPoints := w.State.Points
	prevMoney := w.State.Money
	prevPhase := w.phase

	w.Step(simDt)

	tick := w.CurrentTick()
	alive := make(map[int]bool, len(w.sheep))
	for _, s := range w.sheep {
		alive[s.id] = true
		prev, known := prevStates[s.id]
		now := s.state.tag()
		if known && now != prev {
			ts.SimLog.Add(tick, s.label, "state", "change",
				fmt.Sprintf("%s → %s", prev, now), 0)
		}
		if !known {
			ts.SimLog.Add(tick, s.label, "state", "spawn", s.color.String(), 0)
		}

		ts.SimLog.AddVerbose(tick, s.label, "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", s.pos.X, s.pos.Z), 0)
		if stale, ok := w.flock.StalenessOf(s.id); ok {
			ts.SimLog.AddVerbose(tick, s.label, "flock", "staleness",
				fmt.Sprintf("%.3fs", stale), stale)
		}
	}
	for id, prev := range prevStates {
		if !alive[id] {
			ts.SimLog.Add(tick, prevLabels[id], "state", "despawn", prev.String(), 0)
		}
	}

	if d := w.State.Points - prevPoints; d != 0 {
		ts.SimLog.Add(tick, "--", "economy", "points",
			fmt.Sprintf("%d → %d", prevPoints, w.State.Points), float64(d))
	}
	if d := w.State.Money - prevMoney; d != 0 {
		ts.SimLog.Add(tick, "--", "economy", "money",
			fmt.Sprintf("%d → %d", prevMoney, w.State.Money), float64(d))
	}
	if w.phase != prevPhase {
		ts.SimLog.Add(tick, "--", "round", "phase_change",
			fmt.Sprintf("%s → %s", prevPhase, w.phase), 0)
	}
	for _, ev := range w.HopEvents() {
		ts.SimLog.AddVerbose(tick, "--", "hop", "start",
			fmt.Sprintf("(%.1f,%.1f) v%d", ev.Pos.X, ev.Pos.Z, ev.Variant), 0)
	}

	if tick%60 == 0 && ts.Reporter != nil {
		ts.Reporter.Collect(w)
	}
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick   int
	Points int
	Money  int
	Phase  RoundPhase
	Sheep  []SheepSnapshot
}

// SheepSnapshot is a lightweight copy of a sheep's state at a tick.
type SheepSnapshot struct {
	ID    int
	Label string
	Color SheepColor
	X, Z  float64
	State StateTag
}

// Snapshot returns the current state of the whole flock.
func (ts *TestSim) Snapshot() SimSnapshot {
	w := ts.World
	snap := SimSnapshot{
		Tick:   w.CurrentTick(),
		Points: w.State.Points,
		Money:  w.State.Money,
		Phase:  w.phase,
	}
	for _, s := range w.sheep {
		snap.Sheep = append(snap.Sheep, SheepSnapshot{
			ID:    s.id,
			Label: s.label,
			Color: s.color,
			X:     s.pos.X,
			Z:     s.pos.Z,
			State: s.state.tag(),
		})
	}
	return snap
}
