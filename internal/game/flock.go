package game

import "hash/fnv"

// flockPoint is one entry of the positional snapshot the grid indexes.
type flockPoint struct {
	id  int
	pos Vec2
}

type flockCellKey struct {
	cx int
	cz int
}

// FlockIndex maintains a uniform grid over the sheep that participate in
// flocking (wandering or evading) and refreshes each sheep's herd direction
// on a staggered schedule: the grid rebuilds every FlockCadence seconds of
// simulated time, and eligible sheep are partitioned into FlockBuckets
// buckets by a stable hash of their id, with one bucket recomputed per
// rebuild. A sheep's herd direction is therefore at most
// Tuning.FreshnessBudget seconds stale.
//
// The index is read-only input to the behaviour code: it writes herdDir and
// nothing else.
type FlockIndex struct {
	tuning *Tuning

	acc      float64
	now      float64
	rotation int

	// Flat snapshot plus cell-key → snapshot indices, rebuilt per refresh.
	points []flockPoint
	cells  map[flockCellKey][]int

	// lastRefresh records when each sheep's herdDir was last written,
	// in simulated seconds. Used to assert bounded staleness.
	lastRefresh map[int]float64
}

// NewFlockIndex builds an index using the given tuning knobs.
func NewFlockIndex(t *Tuning) *FlockIndex {
	return &FlockIndex{
		tuning:      t,
		cells:       make(map[flockCellKey][]int),
		lastRefresh: make(map[int]float64),
	}
}

// bucketOf assigns a sheep id to a refresh bucket with a stable hash.
func (f *FlockIndex) bucketOf(id int) int {
	h := fnv.New32a()
	var buf [4]byte
	buf[0] = byte(id)
	buf[1] = byte(id >> 8)
	buf[2] = byte(id >> 16)
	buf[3] = byte(id >> 24)
	h.Write(buf[:])
	return int(h.Sum32()) % f.tuning.FlockBuckets
}

// Update advances the cadence accumulator and, when a refresh window is
// due, rebuilds the grid and recomputes herd directions for one bucket.
// Returns true when a refresh ran this tick.
func (f *FlockIndex) Update(dt float64, flock []*Sheep) bool {
	f.now += dt
	f.acc += dt
	if f.acc < f.tuning.FlockCadence {
		return false
	}
	f.acc -= f.tuning.FlockCadence
	f.refresh(flock)
	return true
}

// StalenessOf returns how long ago the given sheep's herd direction was
// refreshed, in simulated seconds, and whether it has ever been refreshed.
func (f *FlockIndex) StalenessOf(id int) (float64, bool) {
	t, ok := f.lastRefresh[id]
	if !ok {
		return 0, false
	}
	return f.now - t, true
}

func (f *FlockIndex) cellOf(p Vec2) flockCellKey {
	cs := f.tuning.HerdRadius
	return flockCellKey{
		cx: int(fastFloor(p.X / cs)),
		cz: int(fastFloor(p.Z / cs)),
	}
}

func fastFloor(v float64) int {
	i := int(v)
	if v < 0 && float64(i) != v {
		i--
	}
	return i
}

// refresh takes a fresh positional snapshot, rebuilds the cell index, and
// recomputes herdDir for the sheep in the current bucket. Sheep excluded
// from flocking get their herd direction zeroed immediately.
func (f *FlockIndex) refresh(flock []*Sheep) {
	f.points = f.points[:0]
	for k := range f.cells {
		delete(f.cells, k)
	}

	for _, s := range flock {
		if !s.flockEligible() {
			s.herdDir = Vec2{}
			continue
		}
		idx := len(f.points)
		f.points = append(f.points, flockPoint{id: s.id, pos: s.pos})
		key := f.cellOf(s.pos)
		f.cells[key] = append(f.cells[key], idx)
	}

	bucket := f.rotation % f.tuning.FlockBuckets
	f.rotation++

	for _, s := range flock {
		if !s.flockEligible() {
			continue
		}
		if f.bucketOf(s.id) != bucket {
			continue
		}
		s.herdDir = f.herdDirFor(s.id, s.pos)
		f.lastRefresh[s.id] = f.now
	}
}

// herdDirFor scans the 3x3 cell neighbourhood around pos (cell size equals
// the herd radius, so the scan covers the full radius) and blends cohesion
// toward the local centroid with separation away from close neighbours.
func (f *FlockIndex) herdDirFor(selfID int, pos Vec2) Vec2 {
	t := f.tuning
	herdRadius := t.HerdRadius
	sepRadius := t.SeparationRadius

	var centroid Vec2
	var push Vec2
	count := 0

	center := f.cellOf(pos)
scan:
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			key := flockCellKey{cx: center.cx + dx, cz: center.cz + dz}
			for _, idx := range f.cells[key] {
				p := f.points[idx]
				if p.id == selfID {
					continue
				}
				dist := pos.Dist(p.pos)
				if dist >= herdRadius {
					continue
				}
				centroid = centroid.Add(p.pos)
				count++
				if dist < sepRadius {
					away := pos.Sub(p.pos).NormalizeOr(unitX)
					push = push.Add(away.Scale((sepRadius - dist) / sepRadius))
				}
				if count >= t.NeighbourCap {
					// Dense cluster: the sample is representative enough.
					break scan
				}
			}
		}
	}

	if count == 0 {
		return Vec2{}
	}
	cohesion := centroid.Scale(1 / float64(count)).Sub(pos)
	dir := cohesion.Scale(t.CohesionWeight).
		Add(push.NormalizeOr(Vec2{}).Scale(t.SeparationWeight))
	return dir.NormalizeOr(Vec2{})
}
