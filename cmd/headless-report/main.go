package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/mossvale/shepherd-sense/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstSpookTick     int
	firstCountTick     int
	firstScoreTick     int
	firstAbductionTick int
	roundClearTick     int

	stateChanges int
	spooks       int
	counts       int
	despawns     int
	pointsGained int
	moneyGained  int

	finalSheep  int
	finalPoints int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 7200, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "bark-drive", "scenario name (bark-drive, idle-flock)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != "bark-drive" && scenario != "idle-flock" {
		fmt.Printf("error: unsupported scenario %q (supported: bark-drive, idle-flock)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Herding Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(scenario, i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// newFlockSim builds the standard starting flock on a spawn grid south of
// the goal, with the shepherd below it.
func newFlockSim(seed int64) *game.TestSim {
	opts := []game.SimOption{
		game.WithSeed(seed),
		game.WithGoal(0, 10),
		game.WithPlayerAt(0, -40),
	}
	positions := [][2]float64{
		{-15, -35}, {-5, -35}, {5, -35}, {15, -35},
		{-15, -25}, {-5, -25}, {5, -25}, {15, -25},
		{-15, -15}, {-5, -15},
	}
	for _, p := range positions {
		opts = append(opts, game.WithSheepAt(game.ColorWhite, p[0], p[1]))
	}
	opts = append(opts,
		game.WithSheepAt(game.ColorBlue, 5, -15),
		game.WithSheepAt(game.ColorRed, 15, -15),
	)
	return game.NewTestSim(opts...)
}

func runScenario(scenario string, runIndex int, seed int64, ticks int) runStats {
	ts := newFlockSim(seed)

	if scenario == "idle-flock" {
		ts.RunTicks(ticks)
	} else {
		// bark-drive: every 2 seconds a bark is emitted behind the flock
		// centroid (relative to the goal), pushing the herd northward.
		const barkInterval = 120
		for done := 0; done < ticks; {
			chunk := barkInterval
			if done+chunk > ticks {
				chunk = ticks - done
			}
			ts.RunTicks(chunk)
			done += chunk
			driveBark(ts)
		}
	}

	entries := ts.SimLog.Entries()
	pointsGained := 0
	moneyGained := 0
	for _, e := range entries {
		if e.Category != "economy" {
			continue
		}
		switch e.Key {
		case "points":
			if e.NumVal > 0 {
				pointsGained += int(e.NumVal)
			}
		case "money":
			if e.NumVal > 0 {
				moneyGained += int(e.NumVal)
			}
		}
	}

	snap := ts.Snapshot()
	return runStats{
		runIndex:           runIndex,
		seed:               seed,
		firstSpookTick:     firstTick(entries, "state", "change", "spooked"),
		firstCountTick:     firstTick(entries, "state", "change", "counted"),
		firstScoreTick:     firstTick(entries, "economy", "points", ""),
		firstAbductionTick: firstTick(entries, "state", "change", "abducted"),
		roundClearTick:     firstTick(entries, "round", "phase_change", "modifier-choice"),
		stateChanges:       ts.SimLog.CountCategory("state", "change"),
		spooks:             countContaining(entries, "state", "change", "spooked"),
		counts:             countContaining(entries, "state", "change", "counted"),
		despawns:           ts.SimLog.CountCategory("state", "despawn"),
		pointsGained:       pointsGained,
		moneyGained:        moneyGained,
		finalSheep:         len(snap.Sheep),
		finalPoints:        snap.Points,
		windowSummary:      ts.Reporter.WindowSummary(),
	}
}

// driveBark spooks the flock from behind its centroid, relative to the goal.
func driveBark(ts *game.TestSim) {
	snap := ts.Snapshot()
	if len(snap.Sheep) == 0 || snap.Phase != game.PhaseHerding {
		return
	}
	var cx, cz float64
	n := 0
	for _, s := range snap.Sheep {
		if s.State == game.TagBeingCounted || s.State == game.TagBeingAbducted {
			continue
		}
		cx += s.X
		cz += s.Z
		n++
	}
	if n == 0 {
		return
	}
	cx /= float64(n)
	cz /= float64(n)

	goal, ok := ts.World.Goal()
	if !ok {
		return
	}
	centroid := game.Vec2{X: cx, Z: cz}
	behind := centroid.Sub(goal).NormalizeOr(game.Vec2{Z: -1}).Scale(4)
	origin := centroid.Add(behind)
	ts.World.BarkAt(origin, ts.World.Tuning.BarkRadius)
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func countContaining(entries []game.SimLogEntry, category, key, contains string) int {
	n := 0
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			n++
		}
	}
	return n
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_spook=%d first_count=%d first_score=%d first_abduction=%d round_clear=%d\n",
		rs.firstSpookTick, rs.firstCountTick, rs.firstScoreTick, rs.firstAbductionTick, rs.roundClearTick)
	fmt.Printf("event_totals: state_change=%d spooks=%d counts=%d despawns=%d\n",
		rs.stateChanges, rs.spooks, rs.counts, rs.despawns)
	fmt.Printf("economy: points_gained=%d money_gained=%d final_points=%d final_sheep=%d\n",
		rs.pointsGained, rs.moneyGained, rs.finalPoints, rs.finalSheep)
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick)
		fmt.Printf("window_avg: sheep=%.1f spread=%.1f goal_dist=%.1f\n",
			rs.windowSummary.AvgSheep, rs.windowSummary.AvgSpread, rs.windowSummary.AvgGoalDist)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalSpooks := 0
	totalCounts := 0
	totalDespawns := 0
	totalPoints := 0
	totalMoney := 0
	cleared := 0
	scoreTicks := make([]int, 0, len(all))
	clearTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalSpooks += rs.spooks
		totalCounts += rs.counts
		totalDespawns += rs.despawns
		totalPoints += rs.pointsGained
		totalMoney += rs.moneyGained
		if rs.firstScoreTick >= 0 {
			scoreTicks = append(scoreTicks, rs.firstScoreTick)
		}
		if rs.roundClearTick >= 0 {
			cleared++
			clearTicks = append(clearTicks, rs.roundClearTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d rounds_cleared=%d\n", len(all), cleared)
	fmt.Printf("avg_per_run: spooks=%.1f counts=%.1f despawns=%.1f points=%.1f money=%.1f\n",
		avg(totalSpooks, len(all)), avg(totalCounts, len(all)), avg(totalDespawns, len(all)),
		avg(totalPoints, len(all)), avg(totalMoney, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_score=%s round_clear=%s\n",
		avgTickString(scoreTicks), avgTickString(clearTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
