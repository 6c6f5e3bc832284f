package game

import (
	"fmt"
	"strings"
)

// roundDebugReport builds a plain-text dump of the current round for bug
// reports: economy state, active modifiers and charms, per-sheep detail, and
// the reporter's recent window. Copied to the clipboard by the C key.
func (g *Game) roundDebugReport() string {
	w := g.world
	st := w.State

	var b strings.Builder
	fmt.Fprintf(&b, "--- ShepherdSense debug report ---\n")
	fmt.Fprintf(&b, "tick=%d round=%d phase=%s countdown=%.1fs\n",
		w.CurrentTick(), w.Round(), w.Phase(), w.Countdown())
	fmt.Fprintf(&b, "points=%d/%d money=%d\n", st.Points, st.PointTarget, st.Money)

	b.WriteString("modifiers: ")
	if len(st.ActiveModifiers) == 0 {
		b.WriteString("(none)")
	}
	for i, m := range st.ActiveModifiers {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s [%s]", m.Name(), m.Difficulty())
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "charms (%d/%d): ", len(st.Charms), st.MaxCharms)
	if len(st.Charms) == 0 {
		b.WriteString("(none)")
	}
	for i, c := range st.Charms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name())
	}
	b.WriteByte('\n')

	b.WriteString("roster: ")
	for c := SheepColor(0); c < colorCount; c++ {
		if n := st.Roster[c]; n > 0 {
			fmt.Fprintf(&b, "%s=%d ", c, n)
		}
	}
	fmt.Fprintf(&b, "\ncounted: total=%d white=%d black=%d white_run=%d\n",
		st.SheepCounted, st.WhiteSheepCounted, st.BlackSheepCounted, st.WhiteCountedRun)

	if goal, ok := w.Goal(); ok {
		fmt.Fprintf(&b, "goal=(%.1f,%.1f)\n", goal.X, goal.Z)
	}
	if p := w.Player(); p != nil {
		fmt.Fprintf(&b, "player=(%.1f,%.1f) can_bark=%v\n", p.Pos().X, p.Pos().Z, p.CanBark())
	}
	for _, u := range w.ufos {
		fmt.Fprintf(&b, "ufo=(%.1f,%.1f)\n", u.Pos().X, u.Pos().Z)
	}

	fmt.Fprintf(&b, "\nflock (%d):\n", len(w.sheep))
	for _, s := range w.sheep {
		stale := "-"
		if sv, ok := w.flock.StalenessOf(s.id); ok {
			stale = fmt.Sprintf("%.2fs", sv)
		}
		fmt.Fprintf(&b, "  %-4s %-6s %-9s pos=(%6.1f,%6.1f) h=%4.1f herd=(%.2f,%.2f) stale=%s\n",
			s.label, s.color, s.state.tag(), s.pos.X, s.pos.Z, s.height,
			s.herdDir.X, s.herdDir.Z, stale)
	}

	b.WriteByte('\n')
	if g.reporter != nil {
		b.WriteString(g.reporter.WindowSummary().Format())
	}

	b.WriteString("\nrecent feedback:\n")
	for _, ev := range w.Feedback.Recent(10) {
		fmt.Fprintf(&b, "  [T=%d] %s\n", ev.Tick, ev.Text)
	}

	return b.String()
}
