// Package partition fits discrete slice allocations to continuous weight
// distributions.
//
// A palette image displays each color as a stack of equal-height slices. The
// total slice budget is fixed (typically 24), and every color must receive at
// least one slice. Given the relative weight of each color, this package finds
// the integer allocation that best approximates the continuous distribution.
//
// # Fitting
//
// [Fit] enumerates every way to write the slice budget as a sum of
// strictly-positive integers, one per color, and scores each candidate with a
// chi-squared error against the goal distribution. Because chi-squared is
// invariant to a joint reordering of (weight, slice-count) pairs, candidates
// are enumerated in ascending-sorted form only, which removes
// permutation-equivalent duplicates from the search space.
//
// [FitWithSlivers] layers an aesthetic constraint on top of Fit: slices of
// count one ("slivers") render as thin strips, and a layout can only place so
// many of them before two slivers are forced to touch or to sit at the top or
// bottom edge. The constrained fitter caps the sliver count at what
// [Redistribute] can always resolve, and prefers a coarser slice budget when
// the best fit would contain no slivers at all.
//
// # Redistribution
//
// [Redistribute] reorders a fitted allocation so that no sliver sits at either
// end of the block column or adjacent to another sliver, choosing the
// arrangement that minimizes the worst adjacent-pair sum. It returns an index
// permutation so callers can reorder parallel data (the colors themselves)
// with [Apply].
//
// # Determinism
//
// Both searches break ties by lexicographic enumeration order: the first
// candidate to reach the best score wins. This keeps results reproducible
// across runs and across reimplementations.
//
// All functions are pure and safe for concurrent use. Inputs are small in
// practice (at most eight colors, slice budgets up to 24), so the naive
// enumerations complete in microseconds; a dynamic-programming enumerator
// would change performance only, not behavior.
package partition
