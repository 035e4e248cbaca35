package blocks

import "slices"

// Group is a contiguous run of one or two slice-allocation entries rendered
// as a single vertical unit. A group of two always holds two single-slice
// entries drawn side by side; a group of one holds any value.
type Group []int

// Sum returns the total slice count of the group.
func (g Group) Sum() int {
	total := 0
	for _, v := range g {
		total += v
	}
	return total
}

// Shapes a group can take. Locks match groups by shape equality.
var (
	// ShapeSingle is a lone single-slice entry.
	ShapeSingle = Group{1}
	// ShapeDouble is two single-slice entries paired side by side.
	ShapeDouble = Group{1, 1}
)

// GroupSlices collapses a slice allocation into groups, pairing at most one
// trailing run of single-slice entries.
//
// The scan runs from the end of the allocation toward the start. The first
// two consecutive entries equal to one merge into a [ShapeDouble] group;
// after that every entry becomes its own group, even further runs of ones.
// This asymmetry reproduces the look of the earliest palette images, where
// only the bottom-most pair of thin colors shared a row:
//
//	GroupSlices([]int{1, 2, 3, 4, 1, 1}) // [[1] [2] [3] [4] [1 1]]
//	GroupSlices([]int{1, 1, 1, 1, 1, 2}) // [[1] [1] [1] [1 1] [2]]
//
// Concatenating the returned groups always reproduces the input exactly.
func GroupSlices(counts []int) []Group {
	var groups []Group
	havePair := false
	for i := len(counts) - 1; i >= 0; i-- {
		v := counts[i]
		if havePair {
			groups = append(groups, Group{v})
			continue
		}
		if v == 1 && len(groups) > 0 && slices.Equal(groups[len(groups)-1], ShapeSingle) {
			groups[len(groups)-1] = Group{1, 1}
			havePair = true
			continue
		}
		groups = append(groups, Group{v})
	}
	slices.Reverse(groups)
	return groups
}

// Flatten concatenates the groups' values back into a single allocation.
func Flatten(groups []Group) []int {
	var counts []int
	for _, g := range groups {
		counts = append(counts, g...)
	}
	return counts
}
