package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// SheepReport captures a single sheep's state (verbose mode only).
type SheepReport struct {
	ID       int
	Label    string
	Color    SheepColor
	X, Z     float64
	State    StateTag
	GoalDist float64
}

// HerdReport is a full snapshot of the simulation at one tick.
type HerdReport struct {
	Tick  int
	Round int
	Phase RoundPhase

	Points      int
	PointTarget int
	Money       int

	// Flock composition.
	SheepTotal int
	ByState    map[StateTag]int
	ByColor    map[SheepColor]int

	// Herd geometry.
	Spread      float64 // average distance from the flock centroid
	AvgGoalDist float64 // average distance to the goal (0 without a goal)

	// Sheep detail (optional, for verbose mode).
	Sheep []SheepReport
}

// --- Reporter ---

// SimReporter collects periodic reports from the simulation and can produce
// summaries over sliding time windows. The headless batch runner uses it to
// characterise how a seed's round plays out.
type SimReporter struct {
	history     []HerdReport
	windowTicks int
	verbose     bool
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int, verbose bool) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
	}
}

// Collect gathers a snapshot from the current world state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(w *World) {
	report := HerdReport{
		Tick:        w.CurrentTick(),
		Round:       w.Round(),
		Phase:       w.Phase(),
		Points:      w.State.Points,
		PointTarget: w.State.PointTarget,
		Money:       w.State.Money,
		ByState:     make(map[StateTag]int),
		ByColor:     make(map[SheepColor]int),
	}

	goal, hasGoal := w.Goal()
	var centroid Vec2
	for _, s := range w.sheep {
		report.SheepTotal++
		report.ByState[s.state.tag()]++
		report.ByColor[s.color]++
		centroid = centroid.Add(s.pos)
		if hasGoal {
			report.AvgGoalDist += s.pos.Dist(goal)
		}
		if r.verbose {
			sr := SheepReport{
				ID:    s.id,
				Label: s.label,
				Color: s.color,
				X:     s.pos.X,
				Z:     s.pos.Z,
				State: s.state.tag(),
			}
			if hasGoal {
				sr.GoalDist = s.pos.Dist(goal)
			}
			report.Sheep = append(report.Sheep, sr)
		}
	}
	if report.SheepTotal > 0 {
		centroid = centroid.Scale(1 / float64(report.SheepTotal))
		for _, s := range w.sheep {
			report.Spread += s.pos.Dist(centroid)
		}
		report.Spread /= float64(report.SheepTotal)
		if hasGoal {
			report.AvgGoalDist /= float64(report.SheepTotal)
		}
	}

	r.history = append(r.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2 // reports per second * 2 windows
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *HerdReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *SimReporter) History() []HerdReport {
	return r.history
}

// WindowSummary returns an aggregated summary over the recent time window.
// It averages state proportions, herd spread, and goal distance across all
// reports in the window.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []HerdReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		StatePct:    make(map[StateTag]float64),
	}

	stateTotal := make(map[StateTag]float64)
	var total float64
	for _, rpt := range window {
		for tag, c := range rpt.ByState {
			stateTotal[tag] += float64(c)
			total += float64(c)
		}
		wr.AvgSheep += float64(rpt.SheepTotal)
		wr.AvgSpread += rpt.Spread
		wr.AvgGoalDist += rpt.AvgGoalDist
	}
	if total > 0 {
		for tag, c := range stateTotal {
			wr.StatePct[tag] = c / total * 100
		}
	}
	wr.AvgSheep /= n
	wr.AvgSpread /= n
	wr.AvgGoalDist /= n

	latest := window[0]
	wr.Points = latest.Points
	wr.PointTarget = latest.PointTarget
	wr.Money = latest.Money
	wr.Round = latest.Round
	wr.Phase = latest.Phase

	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// State distribution as percentages (0-100).
	StatePct map[StateTag]float64

	// Averages over the window.
	AvgSheep    float64
	AvgSpread   float64
	AvgGoalDist float64

	// Latest economy snapshot.
	Round       int
	Phase       RoundPhase
	Points      int
	PointTarget int
	Money       int
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Herding Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- State Distribution ---\n")
	for _, tag := range []StateTag{TagWander, TagEvading, TagSpooked, TagBeingCounted, TagBeingAbducted} {
		if pct, ok := wr.StatePct[tag]; ok && pct > 0.5 {
			fmt.Fprintf(&sb, "  %-10s %5.1f%%\n", tag, pct)
		}
	}

	sb.WriteString("\n--- Herd Geometry ---\n")
	fmt.Fprintf(&sb, "  sheep=%.1f  spread=%.1f  goal_dist=%.1f\n",
		wr.AvgSheep, wr.AvgSpread, wr.AvgGoalDist)

	sb.WriteString("\n--- Round ---\n")
	fmt.Fprintf(&sb, "  round=%d phase=%s points=%d/%d money=%d\n",
		wr.Round, wr.Phase, wr.Points, wr.PointTarget, wr.Money)

	return sb.String()
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "Round %d (%s): points=%d/%d money=%d sheep=%d spread=%.1f goal_dist=%.1f\n",
		rpt.Round, rpt.Phase, rpt.Points, rpt.PointTarget, rpt.Money,
		rpt.SheepTotal, rpt.Spread, rpt.AvgGoalDist)

	sb.WriteString("States: ")
	for _, tag := range []StateTag{TagWander, TagEvading, TagSpooked, TagBeingCounted, TagBeingAbducted} {
		if c := rpt.ByState[tag]; c > 0 {
			fmt.Fprintf(&sb, "%s=%d ", tag, c)
		}
	}
	sb.WriteString("\nColors: ")
	for c := SheepColor(0); c < colorCount; c++ {
		if n := rpt.ByColor[c]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d ", c, n)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
