package game

// Player is the shepherd: a hop-driven danger actor whose bark scatters
// nearby sheep. Directional input is translated into intent by the render
// adapter; the core only integrates movement and owns the bark cooldown.
type Player struct {
	pos    Vec2
	height float64
	facing float64

	hop          HopController
	barkCooldown countdown
}

func newPlayer(pos Vec2, t *Tuning, spaceWalk bool) *Player {
	p := &Player{pos: pos}
	p.hop = NewHopController(3.0, 1.0, 0.1, 0.2)
	if spaceWalk {
		p.hop.Glide = true
		p.hop.GlideSpeed = 20.0
	}
	p.hop.Intent = pos
	p.barkCooldown = finishedCountdown(t.BarkCooldown)
	return p
}

// Pos returns the player's planar position.
func (p *Player) Pos() Vec2 { return p.pos }

// Height returns the player's height above the ground.
func (p *Player) Height() float64 { return p.height }

// Facing returns the player's heading in radians.
func (p *Player) Facing() float64 { return p.facing }

// Move steers the player's intent by a unit direction over dt seconds.
func (p *Player) Move(dir Vec2, dt float64) {
	p.hop.ApplyMovement(dir.Scale(dt))
}

// CanBark reports whether the bark cooldown has elapsed.
func (p *Player) CanBark() bool { return p.barkCooldown.finished() }

func (p *Player) update(dt float64, bounds Bounds) (hopStarted bool) {
	p.barkCooldown.tick(dt)
	prev := p.pos
	newPos, height, hopStarted := p.hop.Update(dt, p.pos, bounds)
	p.pos = newPos
	p.height = height
	switch {
	case hopStarted:
		if _, dest, ok := p.hop.HopEndpoints(); ok {
			p.facing = dest.Sub(p.pos).Heading()
		}
	case p.hop.Glide:
		// Glides never raise hopStarted, so face the travel direction.
		if step := newPos.Sub(prev); !step.IsZero() {
			p.facing = step.Heading()
		}
	}
	return hopStarted
}
