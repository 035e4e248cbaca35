// Package render turns a palette document into a palette card.
//
// The card is a fixed 16:9 frame: a cropped copy of the source photograph on
// the left and a column of color blocks on the right, all behind a thin white
// border with rounded corners. Geometry describes the frame in an internal
// unit space; sinks (SVG, PNG) map that space onto the requested output size.
//
// The package consumes the slice allocation produced by pkg/partition and the
// grouping rules of pkg/blocks; it adds no layout decisions of its own beyond
// placing rectangles.
package render
