package game

import "math/rand"

// ufoTargetReachedDistance is how close the saucer must hover over a sheep
// before it can grab it.
const ufoTargetReachedDistance = 0.5

// Ufo hunts the flock when the Visitors modifier is active. It idles after
// each grab, then chases a randomly chosen sheep; the grab itself only
// succeeds once the abduction timer has run its course.
type Ufo struct {
	pos    Vec2
	target int // sheep id, or -1 when idle

	abductionTimer countdown
	postGrabPause  countdown
}

func newUfo(pos Vec2, t *Tuning) *Ufo {
	return &Ufo{
		pos:            pos,
		target:         -1,
		abductionTimer: newCountdown(t.UfoAbductionWait),
		postGrabPause:  finishedCountdown(t.UfoPostGrabPause),
	}
}

// Pos returns the saucer's planar position (it hovers at Tuning.UfoHeight).
func (u *Ufo) Pos() Vec2 { return u.pos }

// update ticks timers, picks targets, chases, and requests abductions.
// Returns the id of a sheep whose abduction started this tick, or -1.
func (u *Ufo) update(dt float64, flock []*Sheep, rng *rand.Rand, t *Tuning) int {
	u.abductionTimer.tick(dt)
	u.postGrabPause.tick(dt)

	if !u.postGrabPause.finished() {
		u.target = -1
		return -1
	}

	if u.target < 0 {
		u.pickTarget(flock, rng)
	}
	target := findSheep(flock, u.target)
	if target == nil {
		u.target = -1
		return -1
	}

	toTarget := target.pos.Sub(u.pos)
	dist := toTarget.Len()
	if dist > 1e-9 {
		step := t.UfoSpeed * dt
		if step > dist {
			step = dist
		}
		u.pos = u.pos.Add(toTarget.Scale(step / dist))
	}

	if dist > ufoTargetReachedDistance {
		return -1
	}

	// Hovering over the target; a grab needs a completed abduction timer.
	id := -1
	if u.abductionTimer.finished() && target.StartAbduction() {
		id = target.id
		u.abductionTimer.reset(t.UfoAbductionWait)
		u.postGrabPause.reset(t.UfoPostGrabPause)
	}
	u.target = -1
	return id
}

func (u *Ufo) pickTarget(flock []*Sheep, rng *rand.Rand) {
	var candidates []*Sheep
	for _, s := range flock {
		if !s.IsBeingAbducted() {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		u.target = -1
		return
	}
	u.target = candidates[rng.Intn(len(candidates))].id
}

func findSheep(flock []*Sheep, id int) *Sheep {
	if id < 0 {
		return nil
	}
	for _, s := range flock {
		if s.id == id {
			return s
		}
	}
	return nil
}
