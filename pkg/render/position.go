package render

import (
	"github.com/swatchtower/swatchtower/pkg/blocks"
)

// PositionBlocks lays a slice allocation out in the block column. It returns
// one rectangle per allocation entry, in entry order: entries group per
// [blocks.GroupSlices], groups stack top to bottom with heights from
// [blocks.AllocateHeights], and a group's width is split evenly among its
// entries. The rectangles still carry the column's half-gap margin; sinks
// inset each by Gap/2 before drawing.
func PositionBlocks(frame Rect, counts []int) ([]Rect, error) {
	groups := blocks.GroupSlices(counts)
	heights, err := blocks.AllocateHeights(frame.Height, frame.Width, groups, nil)
	if err != nil {
		return nil, err
	}

	rects := make([]Rect, 0, len(counts))
	y := frame.Y
	for gi, g := range groups {
		x := frame.X
		w := frame.Width / float64(len(g))
		for range g {
			rects = append(rects, Rect{X: x, Y: y, Width: w, Height: heights[gi]})
			x += w
		}
		y += heights[gi]
	}
	return rects, nil
}
