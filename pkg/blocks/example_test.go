package blocks_test

import (
	"fmt"

	"github.com/swatchtower/swatchtower/pkg/blocks"
)

func ExampleGroupSlices() {
	groups := blocks.GroupSlices([]int{1, 2, 3, 4, 1, 1})
	fmt.Println(groups)
	// Output: [[1] [2] [3] [4] [1 1]]
}

func ExampleAllocateHeights() {
	// A 30-unit wide column, 120 units tall. The trailing pair is pinned to
	// a full column width, the lone sliver to half of one, and the two big
	// blocks stretch 3:4 into what remains.
	groups := blocks.GroupSlices([]int{1, 3, 4, 1, 1})
	heights, _ := blocks.AllocateHeights(120, 30, groups, nil)
	for i, g := range groups {
		fmt.Printf("%v -> %.0f\n", g, heights[i])
	}
	// Output:
	// [1] -> 15
	// [3] -> 32
	// [4] -> 43
	// [1 1] -> 30
}
