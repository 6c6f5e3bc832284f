package game

import "math/rand"

// RoundPhase is where the run currently sits in the round loop.
type RoundPhase int

const (
	PhaseHerding RoundPhase = iota
	PhaseModifierChoice
	PhaseShop
	PhaseGameOver
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseHerding:
		return "herding"
	case PhaseModifierChoice:
		return "modifier-choice"
	case PhaseShop:
		return "shop"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// HopEvent is the "hop started" signal for the audio layer: where it
// happened and which footstep variant to play.
type HopEvent struct {
	Pos     Vec2
	Variant int
}

// CreatureView is the per-sheep render output of a tick.
type CreatureView struct {
	ID     int
	Pos    Vec2
	Height float64
	Facing float64
	Color  SheepColor
	State  StateTag
}

// World owns the whole simulation: the flock, the player, UFOs, the
// economy, and the round loop. One Step call is one simulation tick; all
// passes inside it run sequentially in a fixed, significant order.
type World struct {
	Tuning Tuning
	Bounds Bounds

	State *GameState
	Shop  ShopOffers

	goal    Vec2
	hasGoal bool

	sheep  []*Sheep
	player *Player
	ufos   []*Ufo
	flock  *FlockIndex

	Feedback  FeedbackLog
	hopEvents []HopEvent

	phase     RoundPhase
	round     int
	countdown float64
	roundInfo RoundInfo

	// Per-tick score/money deltas for the UI.
	scoreDelta int
	moneyDelta int

	tick   int
	nextID int
	rng    *rand.Rand
}

// NewWorld builds a world with the given tuning and a deterministic seed.
// Call StartRound before stepping.
func NewWorld(t Tuning, seed int64) *World {
	w := &World{
		Tuning:  t,
		Bounds:  DefaultBounds(),
		State:   NewGameState(),
		goal:    Vec2{X: 0, Z: 10},
		hasGoal: true,
		rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation, not crypto
	}
	w.flock = NewFlockIndex(&w.Tuning)
	return w
}

// SetGoal places (or removes) the goal. Without a goal the counting
// transitions simply never fire.
func (w *World) SetGoal(pos Vec2, present bool) {
	w.goal = pos
	w.hasGoal = present
}

// Goal returns the goal position and whether one exists.
func (w *World) Goal() (Vec2, bool) { return w.goal, w.hasGoal }

// Phase returns the current round phase.
func (w *World) Phase() RoundPhase { return w.phase }

// Round returns the 1-based round number (0 before the first StartRound).
func (w *World) Round() int { return w.round }

// Countdown returns the seconds left in the herding phase.
func (w *World) Countdown() float64 { return w.countdown }

// CurrentTick returns the tick counter.
func (w *World) CurrentTick() int { return w.tick }

// RoundChoices returns the summary of the last round advance: the evicted
// modifier (if any) and the two candidates on offer.
func (w *World) RoundChoices() RoundInfo { return w.roundInfo }

// Player returns the player actor, or nil outside a round.
func (w *World) Player() *Player { return w.player }

// StartRound despawns the previous round's actors, spawns the flock from
// the roster on a centred grid, places the player, and spawns UFOs when the
// visitors are in town.
func (w *World) StartRound() {
	w.round++
	w.phase = PhaseHerding
	w.countdown = w.Tuning.RoundSeconds
	if w.State.IsCharmActive(CharmFranticHerding) {
		w.countdown /= 2
	}

	w.sheep = w.sheep[:0]
	w.ufos = w.ufos[:0]

	colors := w.State.spawnColors(w.rng)
	w.spawnFlockGrid(colors)

	w.player = newPlayer(w.Bounds.Center(), &w.Tuning,
		w.State.IsModifierActive(ModSpaceWalk))

	if w.State.IsModifierActive(ModUfo) {
		w.ufos = append(w.ufos, newUfo(Vec2{X: 0, Z: -20}, &w.Tuning))
		if w.State.IsModifierActive(ModFeverDream) {
			w.ufos = append(w.ufos, newUfo(Vec2{X: 10, Z: -20}, &w.Tuning))
		}
	}
}

// spawnFlockGrid lays the flock out on a centred square grid with 10-unit
// spacing, clamped into bounds. Replacement spawns (Mitosis, teleports)
// sample uniformly instead.
func (w *World) spawnFlockGrid(colors []SheepColor) {
	count := len(colors)
	if count == 0 {
		return
	}
	grid := 1
	for grid*grid < count {
		grid++
	}
	spacing := 10.0
	offset := (float64(grid) - 1.0) * 0.5
	center := w.Bounds.Center()

	params := sheepHopParams(w.State.ActiveModifiers)
	for i, c := range colors {
		x := float64(i%grid) - offset
		z := float64(i/grid) - offset
		pos := w.Bounds.Clamp(center.Add(Vec2{X: x * spacing, Z: z * spacing}))
		w.addSheep(c, pos, params)
	}
}

func (w *World) addSheep(c SheepColor, pos Vec2, params hopParams) *Sheep {
	s := newSheep(w.nextID, c, pos, params, w.rng)
	w.nextID++
	w.sheep = append(w.sheep, s)
	return s
}

// Step advances the simulation by dt seconds. Pass order is fixed:
// goal-check, state update, flock refresh, wander intents, abduction
// ascent, hop integration, UFO update, round bookkeeping. Goal resolution
// runs first so a sheep cannot score and re-enter wander in the same tick;
// the flock refresh runs before wander so new intents see the freshest
// available herd direction.
func (w *World) Step(dt float64) {
	if w.phase != PhaseHerding {
		return
	}
	w.tick++
	w.hopEvents = w.hopEvents[:0]
	w.scoreDelta = 0
	w.moneyDelta = 0

	w.goalCheck()
	w.updateStates(dt)
	w.flock.Update(dt, w.sheep)
	w.updateWander(dt)
	w.updateAbductions(dt)
	w.integrate(dt)
	w.updateUfos(dt)

	if w.State.Points >= w.State.PointTarget {
		w.advanceRound()
		return
	}

	w.countdown -= dt
	if w.countdown <= 0 {
		w.countdown = 0
		w.phase = PhaseGameOver
		w.Feedback.Push(w.tick, "Time's up")
	}
}

// goalCheck consumes sheep that finished their goal approach and promotes
// sheep inside the goal radius to the counting walk. Sheep are visited in
// ascending id order (spawn order), which fixes the first-counted tie-break
// when several arrive in the same tick.
func (w *World) goalCheck() {
	if !w.hasGoal {
		return
	}
	goalRadiusSq := w.Tuning.GoalRadius * w.Tuning.GoalRadius

	kept := w.sheep[:0]
	var spawnBlacks int
	for _, s := range w.sheep {
		switch s.state.tag() {
		case TagBeingAbducted:
			kept = append(kept, s)
		case TagBeingCounted:
			if s.pos.DistSq(w.goal) < w.Tuning.GoalScoreEpsilonSq {
				res := resolveGoal(s.color, w.State)
				w.State.applyResolution(s.color, res)
				w.scoreDelta += res.ScoreDelta
				w.moneyDelta += res.MoneyDelta
				spawnBlacks += res.SpawnBlacks
				for _, line := range res.Feedback {
					w.Feedback.Push(w.tick, line)
				}
				// Scored sheep leave the simulation; only tallies persist.
				continue
			}
			kept = append(kept, s)
		default:
			if s.pos.DistSq(w.goal) < goalRadiusSq {
				s.beginCounting()
			}
			kept = append(kept, s)
		}
	}
	w.sheep = kept

	params := sheepHopParams(w.State.ActiveModifiers)
	for i := 0; i < spawnBlacks; i++ {
		w.addSheep(ColorBlack, w.Bounds.RandomPoint(w.rng), params)
	}
}

func (w *World) dangerActors() []dangerActor {
	var dangers []dangerActor
	if w.player != nil {
		dangers = append(dangers, dangerActor{pos: w.player.pos, radius: w.Tuning.SheepInteractRange})
	}
	for _, u := range w.ufos {
		dangers = append(dangers, dangerActor{pos: u.pos, radius: w.Tuning.SheepInteractRange})
	}
	return dangers
}

func (w *World) env() sheepEnv {
	return sheepEnv{
		dangers:     w.dangerActors(),
		goal:        w.goal,
		hasGoal:     w.hasGoal,
		bounds:      w.Bounds,
		tuning:      &w.Tuning,
		wellTrained: w.State.IsCharmActive(CharmWellTrained),
		rng:         w.rng,
	}
}

func (w *World) updateStates(dt float64) {
	env := w.env()
	for _, s := range w.sheep {
		s.updateState(dt, &env)
	}
}

func (w *World) updateWander(dt float64) {
	env := w.env()
	for _, s := range w.sheep {
		s.updateWander(dt, &env)
	}
}

// updateAbductions raises abducted sheep and despawns the ones that
// reached the saucer.
func (w *World) updateAbductions(dt float64) {
	kept := w.sheep[:0]
	for _, s := range w.sheep {
		if s.updateAbduction(dt, &w.Tuning) {
			w.Feedback.Push(w.tick, "Abducted")
			continue
		}
		kept = append(kept, s)
	}
	w.sheep = kept
}

func (w *World) integrate(dt float64) {
	for _, s := range w.sheep {
		if s.integrate(dt, w.Bounds) {
			w.hopEvents = append(w.hopEvents, HopEvent{
				Pos:     s.pos,
				Variant: w.rng.Intn(hopSoundVariants),
			})
		}
	}
	if w.player != nil {
		if w.player.update(dt, w.Bounds) {
			w.hopEvents = append(w.hopEvents, HopEvent{
				Pos:     w.player.pos,
				Variant: w.rng.Intn(hopSoundVariants),
			})
		}
	}
}

func (w *World) updateUfos(dt float64) {
	for _, u := range w.ufos {
		if id := u.update(dt, w.sheep, w.rng, &w.Tuning); id >= 0 {
			w.Feedback.Push(w.tick, "Beam up")
		}
	}
}

// advanceRound ends the herding phase after the point target is reached.
func (w *World) advanceRound() {
	w.roundInfo = w.State.NewRound(w.rng)
	w.phase = PhaseModifierChoice
}

// ChooseModifier accepts one of the offered candidates, grants its coins,
// restocks the shop, and moves to the shop phase. No-op outside the
// modifier-choice phase or for an invalid index.
func (w *World) ChooseModifier(idx int) bool {
	if w.phase != PhaseModifierChoice || idx < 0 || idx >= len(w.roundInfo.Choices) {
		return false
	}
	m := w.roundInfo.Choices[idx]
	w.State.AddModifier(m)
	w.State.Money += m.Difficulty().CoinsGiven()
	w.Shop.Reroll(w.rng, w.State.Charms)
	w.phase = PhaseShop
	return true
}

// LeaveShop ends the shop phase and starts the next round.
func (w *World) LeaveShop() bool {
	if w.phase != PhaseShop {
		return false
	}
	w.StartRound()
	return true
}

// Bark emits a bark at the player's position with the boosted bark radius.
// Returns false while the cooldown is still running or without a player.
func (w *World) Bark() bool {
	if w.player == nil || !w.player.CanBark() {
		return false
	}
	w.player.barkCooldown.reset(w.Tuning.BarkCooldown)
	w.BarkAt(w.player.pos, w.Tuning.BarkRadius+w.State.BarkRadiusBonus)
	return true
}

// BarkAt spooks every wandering or evading sheep within radius of origin.
// Sheep in other states ignore it.
func (w *World) BarkAt(origin Vec2, radius float64) {
	radiusSq := radius * radius
	for _, s := range w.sheep {
		if s.pos.DistSq(origin) <= radiusSq {
			s.BecomeSpooked(origin)
		}
	}
}

// TeleportSheep relocates the sheep with the given id to a uniformly
// sampled in-bounds position. Unknown ids are silently ignored.
func (w *World) TeleportSheep(id int) {
	s := findSheep(w.sheep, id)
	if s == nil {
		return
	}
	s.pos = w.Bounds.RandomPoint(w.rng)
	s.hop.Intent = s.pos
}

// TeleportPlayer relocates the player to a random in-bounds position.
func (w *World) TeleportPlayer() {
	if w.player == nil {
		return
	}
	w.player.pos = w.Bounds.RandomPoint(w.rng)
	w.player.hop.Intent = w.player.pos
}

// StartAbduction forces the given sheep into the abducted state. Silently
// ignored for unknown ids and for sheep already counted or abducted.
func (w *World) StartAbduction(id int) {
	s := findSheep(w.sheep, id)
	if s == nil {
		return
	}
	s.StartAbduction()
}

// Creatures returns the per-sheep render views for this tick.
func (w *World) Creatures() []CreatureView {
	views := make([]CreatureView, 0, len(w.sheep))
	for _, s := range w.sheep {
		views = append(views, CreatureView{
			ID:     s.id,
			Pos:    s.pos,
			Height: s.height,
			Facing: s.facing,
			Color:  s.color,
			State:  s.state.tag(),
		})
	}
	return views
}

// SheepCount returns how many sheep are currently in the simulation.
func (w *World) SheepCount() int { return len(w.sheep) }

// HopEvents returns the hop-started signals emitted by the last Step.
func (w *World) HopEvents() []HopEvent { return w.hopEvents }

// TickDeltas returns the score and money gained during the last Step.
func (w *World) TickDeltas() (score, money int) {
	return w.scoreDelta, w.moneyDelta
}
