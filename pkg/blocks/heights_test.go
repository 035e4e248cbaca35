package blocks

import (
	"math"
	"testing"

	"github.com/swatchtower/swatchtower/pkg/errors"
)

const relTolerance = 1e-9

func assertSumsTo(t *testing.T, heights []float64, total float64) {
	t.Helper()
	var sum float64
	for _, h := range heights {
		sum += h
	}
	if math.Abs(sum-total) > relTolerance*math.Abs(total) {
		t.Errorf("heights %v sum to %v, want %v", heights, sum, total)
	}
}

func TestAllocateHeights_DefaultLocks(t *testing.T) {
	groups := []Group{{3}, {4}, {1, 1}}
	heights, err := AllocateHeights(141, 27, groups, nil)
	if err != nil {
		t.Fatalf("AllocateHeights() error = %v", err)
	}
	if len(heights) != len(groups) {
		t.Fatalf("got %d heights, want %d", len(heights), len(groups))
	}

	// The pair is pinned to the column width; the rest stretches 3:4.
	if heights[2] != 27 {
		t.Errorf("double height = %v, want 27", heights[2])
	}
	free := 141.0 - 27
	if want := free * 3 / 7; math.Abs(heights[0]-want) > relTolerance {
		t.Errorf("heights[0] = %v, want %v", heights[0], want)
	}
	assertSumsTo(t, heights, 141)
}

func TestAllocateHeights_SingleLock(t *testing.T) {
	groups := []Group{{1}, {9}, {1}}
	heights, err := AllocateHeights(100, 30, groups, nil)
	if err != nil {
		t.Fatalf("AllocateHeights() error = %v", err)
	}
	if heights[0] != 15 || heights[2] != 15 {
		t.Errorf("sliver heights = %v, %v, want 15, 15", heights[0], heights[2])
	}
	if heights[1] != 70 {
		t.Errorf("stretch height = %v, want 70", heights[1])
	}
	assertSumsTo(t, heights, 100)
}

func TestAllocateHeights_DropsLowestPriorityLock(t *testing.T) {
	// Every group matches a lock, so nothing is free to stretch. The single
	// lock (lowest priority) must be dropped; the double lock holds.
	groups := []Group{{1}, {1, 1}}
	heights, err := AllocateHeights(50, 20, groups, nil)
	if err != nil {
		t.Fatalf("AllocateHeights() error = %v", err)
	}
	if heights[1] != 20 {
		t.Errorf("double height = %v, want pinned 20", heights[1])
	}
	if heights[0] != 30 {
		t.Errorf("single height = %v, want stretched 30", heights[0])
	}
	assertSumsTo(t, heights, 50)
}

func TestAllocateHeights_DropsAllLocks(t *testing.T) {
	// Custom locks pin every shape present; both must be dropped in turn.
	groups := []Group{{2}, {3}}
	locks := []Lock{
		{Shape: Group{2}, Height: 40},
		{Shape: Group{3}, Height: 60},
	}
	heights, err := AllocateHeights(10, 5, groups, locks)
	if err != nil {
		t.Fatalf("AllocateHeights() error = %v", err)
	}
	// With only the first lock left, {3} stretches into the remainder.
	if heights[0] != 40 {
		t.Errorf("heights[0] = %v, want pinned 40", heights[0])
	}
	if heights[1] != -30 {
		t.Errorf("heights[1] = %v, want -30 (overfull column)", heights[1])
	}
	assertSumsTo(t, heights, 10)
}

func TestAllocateHeights_LaterLockRestamps(t *testing.T) {
	groups := []Group{{1}, {4}}
	locks := []Lock{
		{Shape: ShapeSingle, Height: 10},
		{Shape: ShapeSingle, Height: 25},
	}
	heights, err := AllocateHeights(100, 50, groups, locks)
	if err != nil {
		t.Fatalf("AllocateHeights() error = %v", err)
	}
	if heights[0] != 25 {
		t.Errorf("heights[0] = %v, want 25 (later lock wins)", heights[0])
	}
	assertSumsTo(t, heights, 100)
}

func TestAllocateHeights_EmptyGroups(t *testing.T) {
	_, err := AllocateHeights(100, 50, nil, nil)
	if err == nil {
		t.Fatal("AllocateHeights() expected error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestAllocateHeights_NoLocks(t *testing.T) {
	groups := []Group{{2}, {6}}
	heights, err := AllocateHeights(80, 10, groups, []Lock{})
	if err != nil {
		t.Fatalf("AllocateHeights() error = %v", err)
	}
	if heights[0] != 20 || heights[1] != 60 {
		t.Errorf("heights = %v, want [20 60]", heights)
	}
}
