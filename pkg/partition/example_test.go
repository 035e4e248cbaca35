package partition_test

import (
	"fmt"

	"github.com/swatchtower/swatchtower/pkg/partition"
)

func ExampleFit() {
	// Ten slices for a color twice as heavy as its neighbor.
	counts, _ := partition.Fit(10, []float64{2.0 / 3, 1.0 / 3})
	fmt.Println(counts)
	// Output: [7 3]
}

func ExampleRedistribute() {
	counts := []int{1, 8, 9, 1, 5}
	perm, _ := partition.Redistribute(counts)

	colors := []string{"ivory", "teal", "rust", "smoke", "moss"}
	fmt.Println(partition.Apply(perm, counts))
	fmt.Println(partition.Apply(perm, colors))
	// Output:
	// [8 1 9 1 5]
	// [teal ivory rust smoke moss]
}
