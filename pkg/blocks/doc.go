// Package blocks turns a fitted slice allocation into concrete block heights
// for the color column of a palette image.
//
// The column is divided vertically into groups. Most allocation entries form
// a group of their own, but one trailing run of two single-slice entries may
// be merged into a side-by-side pair ([GroupSlices]). Each group then
// receives an absolute height ([AllocateHeights]): pairs and singles are
// pinned to fixed heights derived from the column width, so a pair of blocks
// stacks into a square, and everything else stretches to fill the remaining
// space in proportion to its slice count.
//
// Pinning is expressed as a prioritized list of [Lock] values. When the locks
// pin every group, nothing is left to absorb the slack, so the lowest-priority
// lock is dropped and allocation retried. The lock list is finite, which makes
// that relaxation a short bounded loop.
//
// All functions are pure and safe for concurrent use.
package blocks
