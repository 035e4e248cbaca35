package partition

import "github.com/swatchtower/swatchtower/pkg/errors"

// Seq returns the identity permutation [0, 1, ..., n-1].
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Apply reorders items by a permutation of its indices, returning a new
// slice where result[i] = items[perm[i]]. Use it to keep parallel data (the
// slice counts and the colors they belong to) aligned after [Redistribute].
func Apply[T any](perm []int, items []T) []T {
	result := make([]T, len(perm))
	for i, p := range perm {
		result[i] = items[p]
	}
	return result
}

// Redistribute returns a permutation of counts' indices such that in the
// permuted sequence no sliver (entry equal to one) sits at either end or
// adjacent to another sliver.
//
// If counts already satisfies those conditions the identity permutation is
// returned, so an acceptable layout is never reshuffled. Otherwise every way
// of inserting the slivers into distinct interior gaps between the larger
// entries is tried, keeping slivers in their original relative order, and the
// arrangement minimizing the maximum adjacent-pair sum wins. That objective
// spreads the big blocks apart: no two neighbors should merge into one
// oversized visual mass. Ties are broken by lexicographic enumeration order
// of the chosen gaps.
//
// Errors: ErrCodeOverconstrained when the slivers equal or outnumber the
// larger entries, since no arrangement can then keep them separated.
func Redistribute(counts []int) ([]int, error) {
	if isSpread(counts) {
		return Seq(len(counts)), nil
	}

	var large, small []int
	for i, c := range counts {
		if c == 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}
	if len(small) >= len(large) {
		return nil, errors.New(errors.ErrCodeOverconstrained,
			"cannot separate %d slivers with only %d larger blocks", len(small), len(large))
	}

	// Gap g sits between large[g] and large[g+1]; ends are excluded.
	gaps := len(large) - 1

	var best []int
	bestScore := 0
	forEachSubset(gaps, len(small), func(chosen []int) {
		perm := make([]int, 0, len(counts))
		next := 0
		for i, idx := range large {
			perm = append(perm, idx)
			if next < len(chosen) && chosen[next] == i {
				perm = append(perm, small[next])
				next++
			}
		}
		if score := worstPairSum(counts, perm); best == nil || score < bestScore {
			best = perm
			bestScore = score
		}
	})
	return best, nil
}

// isSpread reports whether no entry equal to one touches an end of the
// sequence or another entry equal to one.
func isSpread(counts []int) bool {
	n := len(counts)
	if n == 0 {
		return true
	}
	if counts[0] == 1 || counts[n-1] == 1 {
		return false
	}
	for i := 1; i < n; i++ {
		if counts[i] == 1 && counts[i-1] == 1 {
			return false
		}
	}
	return true
}

// worstPairSum returns the maximum sum of adjacent entries under perm.
func worstPairSum(counts, perm []int) int {
	worst := 0
	for i := 1; i < len(perm); i++ {
		if s := counts[perm[i-1]] + counts[perm[i]]; s > worst {
			worst = s
		}
	}
	return worst
}

// forEachSubset calls fn with every size-k subset of {0, ..., n-1} in
// lexicographic order. The slice passed to fn is reused between calls.
func forEachSubset(n, k int, fn func([]int)) {
	if k > n {
		return
	}
	buf := make([]int, 0, k)

	var rec func(start int)
	rec = func(start int) {
		if len(buf) == k {
			fn(buf)
			return
		}
		// Leave room for the remaining picks.
		for v := start; v <= n-(k-len(buf)); v++ {
			buf = append(buf, v)
			rec(v + 1)
			buf = buf[:len(buf)-1]
		}
	}
	rec(0)
}
