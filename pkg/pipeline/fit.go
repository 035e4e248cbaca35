package pipeline

import (
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/partition"
)

// Fit discretizes the document's color ratios into a slice allocation.
// By default the allocation keeps slivers under the display cap; set
// opts.UnlimitedSlivers to fit against the raw ratios alone.
func Fit(doc *palette.Document, opts Options) ([]int, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if opts.UnlimitedSlivers {
		return partition.Fit(opts.Items, doc.Ratios)
	}
	return partition.FitWithSlivers(opts.Items, doc.Ratios)
}

// PermuteDoc returns a copy of doc with its per-color fields reordered by
// perm, as returned by FitWithCacheInfo when spreading is enabled. The
// identity permutation returns doc unchanged.
func PermuteDoc(doc *palette.Document, perm []int) *palette.Document {
	identity := true
	for i, p := range perm {
		if i != p {
			identity = false
			break
		}
	}
	if identity {
		return doc
	}

	out := *doc
	out.Colors = partition.Apply(perm, doc.Colors)
	out.Ratios = partition.Apply(perm, doc.Ratios)
	if len(doc.Names) == len(doc.Colors) {
		out.Names = partition.Apply(perm, doc.Names)
	}
	return &out
}
