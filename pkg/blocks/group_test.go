package blocks

import (
	"slices"
	"testing"
)

func TestGroupSlices(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   []Group
	}{
		{
			name:   "trailing pair",
			counts: []int{1, 2, 3, 4, 1, 1},
			want:   []Group{{1}, {2}, {3}, {4}, {1, 1}},
		},
		{
			name:   "only first pair from the end merges",
			counts: []int{1, 1, 1, 1, 1, 2},
			want:   []Group{{1}, {1}, {1}, {1, 1}, {2}},
		},
		{
			name:   "run of three ones",
			counts: []int{5, 1, 1, 1},
			want:   []Group{{5}, {1}, {1, 1}},
		},
		{
			name:   "no ones",
			counts: []int{4, 4, 4, 4, 4, 4},
			want:   []Group{{4}, {4}, {4}, {4}, {4}, {4}},
		},
		{
			name:   "lone sliver stays single",
			counts: []int{3, 1, 4},
			want:   []Group{{3}, {1}, {4}},
		},
		{
			name:   "separated slivers never pair",
			counts: []int{1, 5, 1},
			want:   []Group{{1}, {5}, {1}},
		},
		{
			name:   "single entry",
			counts: []int{6},
			want:   []Group{{6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupSlices(tt.counts)
			if len(got) != len(tt.want) {
				t.Fatalf("GroupSlices(%v) = %v, want %v", tt.counts, got, tt.want)
			}
			for i := range tt.want {
				if !slices.Equal(got[i], tt.want[i]) {
					t.Errorf("group %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGroupSlices_RoundTrip(t *testing.T) {
	tests := [][]int{
		{1, 2, 3, 4, 1, 1},
		{1, 1, 1, 1, 1, 2},
		{1, 1},
		{2},
		{1, 5, 1, 1, 6},
	}
	for _, counts := range tests {
		if got := Flatten(GroupSlices(counts)); !slices.Equal(got, counts) {
			t.Errorf("Flatten(GroupSlices(%v)) = %v", counts, got)
		}
	}
}

func TestGroupSum(t *testing.T) {
	if got := (Group{1, 1}).Sum(); got != 2 {
		t.Errorf("Sum() = %d, want 2", got)
	}
	if got := (Group{7}).Sum(); got != 7 {
		t.Errorf("Sum() = %d, want 7", got)
	}
}
