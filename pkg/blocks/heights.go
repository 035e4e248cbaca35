package blocks

import (
	"slices"

	"github.com/swatchtower/swatchtower/pkg/errors"
)

// Lock pins every group of a given shape to a fixed height. Locks are listed
// in priority order: the first lock is the last one an allocator will give up.
type Lock struct {
	Shape  Group
	Height float64
}

// DefaultLocks returns the standard lock list for a block column of the given
// width: paired blocks get the full column width (each half of the pair is a
// square), lone slivers get half of it.
func DefaultLocks(referenceWidth float64) []Lock {
	return []Lock{
		{Shape: ShapeDouble, Height: referenceWidth},
		{Shape: ShapeSingle, Height: referenceWidth / 2},
	}
}

// AllocateHeights assigns an absolute height to every group so the heights
// sum to totalHeight.
//
// Locks are applied strictly in list order; a later lock of the same shape
// re-stamps groups an earlier one already pinned. Groups left unpinned share
// the remaining height in proportion to their slice counts. If the locks pin
// every group, nothing can stretch to fill the column, so the lowest-priority
// (last) lock is dropped and allocation retried; the relaxation repeats until
// some group is free. Passing nil locks selects [DefaultLocks] with
// referenceWidth.
//
// The returned heights parallel groups and sum to totalHeight within
// floating-point tolerance.
//
// Errors: ErrCodeInvalidInput when groups is empty; ErrCodeUnallocatable
// when no group is free even with every lock dropped.
func AllocateHeights(totalHeight, referenceWidth float64, groups []Group, locks []Lock) ([]float64, error) {
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no groups to allocate")
	}
	if locks == nil {
		locks = DefaultLocks(referenceWidth)
	}

	for cut := len(locks); cut >= 0; cut-- {
		heights := make([]float64, len(groups))
		pinned := make([]bool, len(groups))
		for _, lock := range locks[:cut] {
			for i, g := range groups {
				if slices.Equal(g, lock.Shape) {
					heights[i] = lock.Height
					pinned[i] = true
				}
			}
		}
		if !slices.Contains(pinned, false) {
			continue // every group pinned; drop the lowest-priority lock
		}

		free := totalHeight
		freeSlices := 0
		for i, g := range groups {
			if pinned[i] {
				free -= heights[i]
			} else {
				freeSlices += g.Sum()
			}
		}
		scale := free / float64(freeSlices)
		for i, g := range groups {
			if !pinned[i] {
				heights[i] = float64(g.Sum()) * scale
			}
		}
		return heights, nil
	}

	return nil, errors.New(errors.ErrCodeUnallocatable,
		"no free group to absorb remaining height, even with all locks dropped")
}
