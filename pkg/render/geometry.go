package render

// Metaparameters of the palette card. All lengths are in the card's internal
// unit space; sinks scale the card to the requested print width.
const (
	// CardWidth and CardHeight fix the card at 16:9.
	CardWidth  = 256.0
	CardHeight = 144.0

	// Pad is the width of the thin white border around the content.
	Pad = 1.0

	// Gap is the space between the photograph and the block column, and
	// between the blocks themselves.
	Gap = 1.2

	// CornerRadius rounds the content corners. The outer card corners use
	// CornerRadius + Pad so the border has even width around the curve.
	CornerRadius = 4.0
)

// Rect is an axis-aligned rectangle with the origin at the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// X2 returns the right edge.
func (r Rect) X2() float64 { return r.X + r.Width }

// Y2 returns the bottom edge.
func (r Rect) Y2() float64 { return r.Y + r.Height }

// Ratio returns width over height.
func (r Rect) Ratio() float64 { return r.Width / r.Height }

// Pad returns r grown by d on every side. A negative d shrinks.
func (r Rect) Pad(d float64) Rect {
	return Rect{
		X:      r.X - d,
		Y:      r.Y - d,
		Width:  r.Width + 2*d,
		Height: r.Height + 2*d,
	}
}

// Geometry fixes the rectangles of one palette card.
type Geometry struct {
	// Card is the whole card, white border included.
	Card Rect

	// Content is the card inside the border. Everything drawn is clipped
	// to this rectangle.
	Content Rect

	// Image holds the cropped photograph.
	Image Rect

	// Blocks is the color block column, grown by half a gap on every side.
	// Block rectangles are laid out edge to edge inside it and then inset
	// by half a gap, which puts a full Gap between neighbors and realigns
	// the column's outer edge with Content.
	Blocks Rect
}

// DefaultGeometry derives the card rectangles from the metaparameters. The
// block column width is chosen so that a stack of five blocks is a stack of
// squares.
func DefaultGeometry() Geometry {
	card := Rect{Width: CardWidth, Height: CardHeight}
	content := card.Pad(-Pad)

	blocksWide := (CardHeight - 2*Pad - 4*Gap) / 5
	blocks := Rect{
		X:      content.X2() - blocksWide,
		Y:      content.Y,
		Width:  blocksWide,
		Height: content.Height,
	}
	image := Rect{
		X:      content.X,
		Y:      content.Y,
		Width:  blocks.X - Gap - content.X,
		Height: content.Height,
	}

	return Geometry{
		Card:    card,
		Content: content,
		Image:   image,
		Blocks:  blocks.Pad(Gap / 2),
	}
}
