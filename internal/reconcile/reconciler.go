package reconcile

import (
	"math"

	"discern/internal/identity"
)

// DefaultMatchToleranceSeconds is the largest per-pair duration difference a
// reconciler will accept as an assignment.
const DefaultMatchToleranceSeconds = 10.0

// Reconciler assigns physical files to canonical tracks by duration.
type Reconciler interface {
	// Name identifies the algorithm for logs and diagnostics.
	Name() string
	// Reconcile maps file indices to track indices. No track index is used
	// twice; files without an acceptable track are reported in Unmatched
	// with their best-attempt difference.
	Reconcile(files []identity.FileDurationRecord, tracks []identity.TrackDescriptor) identity.ReconciliationMapping
}

// GreedyNearestDuration processes files in disc order; each file takes the
// not-yet-used track with the smallest absolute duration difference. The walk
// is order-dependent and can miss the globally optimal pairing under
// pathological duration ties.
type GreedyNearestDuration struct {
	ToleranceSeconds float64
}

// NewGreedy creates the default reconciler. A non-positive tolerance falls
// back to DefaultMatchToleranceSeconds.
func NewGreedy(toleranceSeconds float64) *GreedyNearestDuration {
	if toleranceSeconds <= 0 {
		toleranceSeconds = DefaultMatchToleranceSeconds
	}
	return &GreedyNearestDuration{ToleranceSeconds: toleranceSeconds}
}

// Name implements Reconciler.
func (g *GreedyNearestDuration) Name() string { return "greedy-nearest-duration" }

// Reconcile implements Reconciler.
func (g *GreedyNearestDuration) Reconcile(files []identity.FileDurationRecord, tracks []identity.TrackDescriptor) identity.ReconciliationMapping {
	mapping := identity.ReconciliationMapping{Assignments: make(map[int]int, len(files))}
	used := make([]bool, len(tracks))

	for fileIdx, file := range files {
		bestTrack := -1
		bestDiff := math.Inf(1)
		for trackIdx, track := range tracks {
			if used[trackIdx] {
				continue
			}
			diff := math.Abs(file.MeasuredSeconds - float64(track.DurationMS)/1000.0)
			if diff < bestDiff {
				bestDiff = diff
				bestTrack = trackIdx
			}
		}
		if bestTrack >= 0 && bestDiff < g.ToleranceSeconds {
			used[bestTrack] = true
			mapping.Assignments[fileIdx] = bestTrack
			continue
		}
		mapping.Unmatched = append(mapping.Unmatched, identity.UnmatchedFile{
			FileIndex:       fileIdx,
			BestDiffSeconds: bestDiff,
		})
	}
	return mapping
}

// OptimalDuration computes the minimum-total-difference assignment between
// files and tracks with the Hungarian algorithm, then drops pairs whose
// difference exceeds the tolerance. Callers opt into it explicitly; greedy
// remains the default behavior.
type OptimalDuration struct {
	ToleranceSeconds float64
}

// NewOptimal creates the Hungarian-based reconciler.
func NewOptimal(toleranceSeconds float64) *OptimalDuration {
	if toleranceSeconds <= 0 {
		toleranceSeconds = DefaultMatchToleranceSeconds
	}
	return &OptimalDuration{ToleranceSeconds: toleranceSeconds}
}

// Name implements Reconciler.
func (o *OptimalDuration) Name() string { return "optimal-duration" }

// Reconcile implements Reconciler.
func (o *OptimalDuration) Reconcile(files []identity.FileDurationRecord, tracks []identity.TrackDescriptor) identity.ReconciliationMapping {
	mapping := identity.ReconciliationMapping{Assignments: make(map[int]int, len(files))}
	if len(files) == 0 {
		return mapping
	}
	if len(tracks) == 0 {
		for fileIdx := range files {
			mapping.Unmatched = append(mapping.Unmatched, identity.UnmatchedFile{
				FileIndex:       fileIdx,
				BestDiffSeconds: math.Inf(1),
			})
		}
		return mapping
	}

	n := len(files)
	m := len(tracks)
	size := max(n, m)

	// Padded rows/cols use a high cost so they are chosen only when forced.
	padCost := o.ToleranceSeconds * 1000
	cost := make([][]float64, size)
	diffs := make([][]float64, size)
	for i := 0; i < size; i++ {
		cost[i] = make([]float64, size)
		diffs[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			cost[i][j] = padCost
			diffs[i][j] = math.Inf(1)
		}
	}
	for i, file := range files {
		for j, track := range tracks {
			diff := math.Abs(file.MeasuredSeconds - float64(track.DurationMS)/1000.0)
			diffs[i][j] = diff
			cost[i][j] = diff
		}
	}

	assign := hungarian(cost)
	for i, j := range assign {
		if i >= n {
			continue
		}
		if j >= 0 && j < m && diffs[i][j] < o.ToleranceSeconds {
			mapping.Assignments[i] = j
			continue
		}
		best := math.Inf(1)
		for k := 0; k < m; k++ {
			if diffs[i][k] < best {
				best = diffs[i][k]
			}
		}
		mapping.Unmatched = append(mapping.Unmatched, identity.UnmatchedFile{
			FileIndex:       i,
			BestDiffSeconds: best,
		})
	}
	return mapping
}

// hungarian solves the assignment problem for a square cost matrix
// (minimization). Returns assignment[i] = column chosen for row i, or -1.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	if len(cost[0]) != n {
		return nil
	}

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := 0; j <= n; j++ {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] > 0 && p[j]-1 < n {
			assign[p[j]-1] = j - 1
		}
	}
	return assign
}
