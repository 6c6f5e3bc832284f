package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning collects the numeric knobs of the simulation. Values are loaded
// from an optional tuning.yaml; anything left at zero falls back to the
// shipped default so a partial file only overrides what it names.
type Tuning struct {
	// Flocking
	HerdRadius       float64 `yaml:"herd_radius"`
	SeparationRadius float64 `yaml:"separation_radius"`
	CohesionWeight   float64 `yaml:"cohesion_weight"`
	SeparationWeight float64 `yaml:"separation_weight"`
	HerdBias         float64 `yaml:"herd_bias"`
	FlockCadence     float64 `yaml:"flock_cadence_sec"`
	FlockBuckets     int     `yaml:"flock_buckets"`
	NeighbourCap     int     `yaml:"neighbour_cap"`

	// Sheep behaviour
	SheepInteractRange float64 `yaml:"sheep_interact_range"`
	SpookReleaseSlack  float64 `yaml:"spook_release_slack"`
	GoalRadius         float64 `yaml:"goal_radius"`
	GoalScoreEpsilonSq float64 `yaml:"goal_score_epsilon_sq"`

	// Player
	BarkRadius   float64 `yaml:"bark_radius"`
	BarkCooldown float64 `yaml:"bark_cooldown_sec"`

	// UFO
	UfoHeight        float64 `yaml:"ufo_height"`
	UfoSpeed         float64 `yaml:"ufo_speed"`
	UfoAbductionWait float64 `yaml:"ufo_abduction_wait_sec"`
	UfoPostGrabPause float64 `yaml:"ufo_post_grab_pause_sec"`
	AbductionAscent  float64 `yaml:"abduction_ascent_speed"`

	// Round
	RoundSeconds float64 `yaml:"round_seconds"`
}

// DefaultTuning returns the shipped simulation constants.
func DefaultTuning() Tuning {
	return Tuning{
		HerdRadius:       6.0,
		SeparationRadius: 2.0,
		CohesionWeight:   1.0,
		SeparationWeight: 1.4,
		HerdBias:         0.6,
		FlockCadence:     0.1,
		FlockBuckets:     4,
		NeighbourCap:     20,

		SheepInteractRange: 5.0,
		SpookReleaseSlack:  8.0,
		GoalRadius:         6.0,
		GoalScoreEpsilonSq: 1.5,

		BarkRadius:   8.0,
		BarkCooldown: 2.0,

		UfoHeight:        15.0,
		UfoSpeed:         7.0,
		UfoAbductionWait: 8.0,
		UfoPostGrabPause: 3.0,
		AbductionAscent:  6.0,

		RoundSeconds: 120.0,
	}
}

// LoadTuning reads a yaml tuning file and overlays it on the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	t.fillDefaults()
	return t, nil
}

// fillDefaults replaces zero-valued knobs with their defaults so a sparse
// tuning file cannot zero out a radius or cadence by omission.
func (t *Tuning) fillDefaults() {
	d := DefaultTuning()
	if t.HerdRadius <= 0 {
		t.HerdRadius = d.HerdRadius
	}
	if t.SeparationRadius <= 0 {
		t.SeparationRadius = d.SeparationRadius
	}
	if t.CohesionWeight <= 0 {
		t.CohesionWeight = d.CohesionWeight
	}
	if t.SeparationWeight <= 0 {
		t.SeparationWeight = d.SeparationWeight
	}
	if t.HerdBias <= 0 {
		t.HerdBias = d.HerdBias
	}
	if t.FlockCadence <= 0 {
		t.FlockCadence = d.FlockCadence
	}
	if t.FlockBuckets <= 0 {
		t.FlockBuckets = d.FlockBuckets
	}
	if t.NeighbourCap <= 0 {
		t.NeighbourCap = d.NeighbourCap
	}
	if t.SheepInteractRange <= 0 {
		t.SheepInteractRange = d.SheepInteractRange
	}
	if t.SpookReleaseSlack <= 0 {
		t.SpookReleaseSlack = d.SpookReleaseSlack
	}
	if t.GoalRadius <= 0 {
		t.GoalRadius = d.GoalRadius
	}
	if t.GoalScoreEpsilonSq <= 0 {
		t.GoalScoreEpsilonSq = d.GoalScoreEpsilonSq
	}
	if t.BarkRadius <= 0 {
		t.BarkRadius = d.BarkRadius
	}
	if t.BarkCooldown <= 0 {
		t.BarkCooldown = d.BarkCooldown
	}
	if t.UfoHeight <= 0 {
		t.UfoHeight = d.UfoHeight
	}
	if t.UfoSpeed <= 0 {
		t.UfoSpeed = d.UfoSpeed
	}
	if t.UfoAbductionWait <= 0 {
		t.UfoAbductionWait = d.UfoAbductionWait
	}
	if t.UfoPostGrabPause <= 0 {
		t.UfoPostGrabPause = d.UfoPostGrabPause
	}
	if t.AbductionAscent <= 0 {
		t.AbductionAscent = d.AbductionAscent
	}
	if t.RoundSeconds <= 0 {
		t.RoundSeconds = d.RoundSeconds
	}
}

// FreshnessBudget is the worst-case age, in seconds, of any creature's
// herd direction: one full rotation of the refresh buckets.
func (t Tuning) FreshnessBudget() float64 {
	return t.FlockCadence * float64(t.FlockBuckets)
}
