package partition

import (
	"slices"

	"github.com/swatchtower/swatchtower/pkg/errors"
)

// scored pairs a candidate allocation (in caller order) with its chi-squared
// error against the goal distribution.
type scored struct {
	score  float64
	counts []int
}

// Fit partitions items into len(goalDist) strictly-positive integer slice
// counts that approximate goalDist as closely as possible.
//
// The goal distribution holds one relative weight per color and need not sum
// to one. Candidates are scored by chi-squared error; ties are broken by
// lexicographic enumeration order of the ascending-sorted candidate, so the
// result is deterministic.
//
//	Fit(3, []float64{2.0 / 3, 1.0 / 3})  // [2, 1]
//	Fit(10, []float64{2.0 / 3, 1.0 / 3}) // [7, 3]
//
// The result always sums to items, has one entry per weight, and contains no
// entry below one.
//
// Errors: ErrCodeInvalidInput for an empty distribution, a non-positive
// weight, or a non-positive items; ErrCodeInfeasible when items <
// len(goalDist), since no zero-free allocation exists.
func Fit(items int, goalDist []float64) ([]int, error) {
	candidates, err := scoreCandidates(items, goalDist)
	if err != nil {
		return nil, err
	}
	return bestCandidate(candidates).counts, nil
}

// MaxSlivers returns the largest number of single-slice entries that
// Redistribute can always place for a palette of n colors without forcing two
// slivers adjacent or at an endpoint: ceil(n/2) - 1.
func MaxSlivers(n int) int {
	return (n+1)/2 - 1
}

// FitWithSlivers is Fit with a cap on the number of slivers (entries equal to
// one) in the result.
//
// The cap is [MaxSlivers] of the color count, the most that [Redistribute]
// can always resolve. When the slice budget is too small for any allocation
// to satisfy the cap, the constraint is dropped and the unconstrained fit is
// returned. Otherwise the best-scoring allocation within the cap wins.
//
// One aesthetic wrinkle: when the unconstrained best fit contains no slivers
// at all and a half-size budget still admits one slice per color, the budget
// is halved and the fit repeated. A sliver-free fit at full granularity reads
// as a false continuous gradient; coarser slices look deliberately discrete.
// The halving is a bounded loop, so termination is immediate to verify.
func FitWithSlivers(items int, goalDist []float64) ([]int, error) {
	n := len(goalDist)
	maxOnes := MaxSlivers(n)

	for {
		// An allocation of items into n positive parts has at least 2n-items
		// slivers, so below this floor the cap cannot be met at all.
		if items < 2*n-maxOnes {
			return Fit(items, goalDist)
		}

		candidates, err := scoreCandidates(items, goalDist)
		if err != nil {
			return nil, err
		}

		best := bestCandidate(candidates)
		if countOnes(best.counts) == 0 && items/2 >= n {
			items /= 2
			continue
		}

		constrained := best
		found := countOnes(best.counts) <= maxOnes
		for _, c := range candidates {
			if countOnes(c.counts) > maxOnes {
				continue
			}
			if !found || c.score < constrained.score {
				constrained = c
				found = true
			}
		}
		return constrained.counts, nil
	}
}

// scoreCandidates validates the inputs and returns every zero-free candidate
// allocation with its chi-squared score, in enumeration order.
func scoreCandidates(items int, goalDist []float64) ([]scored, error) {
	if err := errors.ValidateWeights(goalDist); err != nil {
		return nil, err
	}
	if items <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "items must be positive, got %d", items)
	}
	if items < len(goalDist) {
		return nil, errors.New(errors.ErrCodeInfeasible,
			"cannot allocate %d slices to %d colors without zeros", items, len(goalDist))
	}

	sortedDist, unsort := sortRetainOrder(goalDist)

	var candidates []scored
	forEachAscending(items, len(goalDist), func(counts []int) {
		c := scored{score: chiSquared(sortedDist, counts)}
		// Map the sorted-form candidate back into caller order.
		c.counts = make([]int, len(counts))
		for i, k := range unsort {
			c.counts[i] = counts[k]
		}
		candidates = append(candidates, c)
	})
	return candidates, nil
}

// bestCandidate returns the lowest-scoring candidate, first-found on ties.
func bestCandidate(candidates []scored) scored {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score < best.score {
			best = c
		}
	}
	return best
}

// chiSquared returns the error between an expected distribution and an
// observed allocation: sum((obs-exp)^2 / exp). Both slices must already be
// sorted ascending so values pair up rank-for-rank.
func chiSquared(expected []float64, observed []int) float64 {
	var total float64
	for i, exp := range expected {
		d := float64(observed[i]) - exp
		total += d * d / exp
	}
	return total
}

// sortRetainOrder returns xs sorted ascending along with an index slice that
// maps each original position to its rank, so a result computed against the
// sorted values can be restored to caller order:
//
//	sorted, unsort := sortRetainOrder(xs)
//	sorted[unsort[i]] == xs[i]
//
// The sort is stable, so equal weights keep their relative order.
func sortRetainOrder(xs []float64) ([]float64, []int) {
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case xs[a] < xs[b]:
			return -1
		case xs[a] > xs[b]:
			return 1
		default:
			return 0
		}
	})

	sorted := make([]float64, len(xs))
	unsort := make([]int, len(xs))
	for rank, orig := range order {
		sorted[rank] = xs[orig]
		unsort[orig] = rank
	}
	return sorted, unsort
}

// forEachAscending calls fn with every non-decreasing sequence of parts
// strictly-positive integers summing to total, in lexicographic order. The
// slice passed to fn is reused between calls; fn must copy it to retain it.
func forEachAscending(total, parts int, fn func([]int)) {
	buf := make([]int, 0, parts)

	var rec func(remaining, parts, minVal int)
	rec = func(remaining, parts, minVal int) {
		if parts == 1 {
			if remaining >= minVal {
				buf = append(buf, remaining)
				fn(buf)
				buf = buf[:len(buf)-1]
			}
			return
		}
		// Every later part is at least v, so v*parts must fit in remaining.
		for v := minVal; v*parts <= remaining; v++ {
			buf = append(buf, v)
			rec(remaining-v, parts-1, v)
			buf = buf[:len(buf)-1]
		}
	}
	rec(total, parts, 1)
}

// countOnes returns the number of sliver entries in an allocation.
func countOnes(counts []int) int {
	ones := 0
	for _, c := range counts {
		if c == 1 {
			ones++
		}
	}
	return ones
}
