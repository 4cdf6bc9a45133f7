package main

import (
	"image"
	"math"
)

// Fixed encoding constants. Encoder and decoder must agree on every one of
// these; nothing in the rendered page identifies the geometry it was built
// with.
const (
	pageDPI     = 2550
	paperWidth  = 210.0 // mm, ISO A4 portrait
	paperHeight = 297.0 // mm

	pageMargin  = 125
	blockWidth  = 300
	blockHeight = 300

	// Linear scale of the inner rectangle. sqrt(0.5) so the inner
	// rectangle covers half the block's area.
	innerScale = 0.7071067811865476

	// Pixels skipped on every side of a sampling rectangle to stay clear
	// of antialiased region edges.
	sampleInset = 5

	bytesPerBlock  = 15
	bytesPerColor  = 3
	colorsPerBlock = bytesPerBlock / bytesPerColor
)

// Geometry holds the derived pixel dimensions shared by the encoder and the
// decoder. It is computed once and passed explicitly to both sides.
type Geometry struct {
	DPI         int
	PageWidth   int
	PageHeight  int
	Margin      int
	BlockWidth  int
	BlockHeight int
	InnerWidth  int
	InnerHeight int
}

// NewGeometry builds a Geometry for an explicit page size in pixels.
func NewGeometry(dpi, pageW, pageH, margin, blockW, blockH int) Geometry {
	return Geometry{
		DPI:         dpi,
		PageWidth:   pageW,
		PageHeight:  pageH,
		Margin:      margin,
		BlockWidth:  blockW,
		BlockHeight: blockH,
		InnerWidth:  int(float64(blockW) * innerScale),
		InnerHeight: int(float64(blockH) * innerScale),
	}
}

// DefaultGeometry returns the canonical A4 page geometry.
func DefaultGeometry() Geometry {
	dpi := float64(pageDPI)
	pageW := int(paperWidth * dpi / 25.4)
	pageH := int(paperHeight * dpi / 25.4)
	return NewGeometry(pageDPI, pageW, pageH, pageMargin, blockWidth, blockHeight)
}

// BlocksPerRow returns how many blocks fit on one row of the page.
func (g Geometry) BlocksPerRow() int {
	span := g.PageWidth - g.BlockWidth - 2*g.Margin
	if span < 0 {
		return 0
	}
	return span/(g.BlockWidth+g.Margin) + 1
}

// MaxRows returns how many block rows fit on the page.
func (g Geometry) MaxRows() int {
	span := g.PageHeight - g.BlockHeight - 2*g.Margin
	if span < 0 {
		return 0
	}
	return span/(g.BlockHeight+g.Margin) + 1
}

// MaxBlocks returns the total number of block positions on the page.
func (g Geometry) MaxBlocks() int {
	return g.BlocksPerRow() * g.MaxRows()
}

// Capacity returns the number of payload bytes one page can carry once the
// header and footer blocks are accounted for.
func (g Geometry) Capacity() int {
	blocks := g.MaxBlocks() - 2
	if blocks < 0 {
		return 0
	}
	return blocks * bytesPerBlock
}

// innerOrigin returns the top-left corner of the inner rectangle for a block
// whose top-left corner is (x, y). Integer floor division keeps both sides of
// the codec on identical pixels.
func (g Geometry) innerOrigin(x, y int) (int, int) {
	ix := x + (g.BlockWidth-g.InnerWidth)/2
	iy := y + (g.BlockHeight-g.InnerHeight)/2
	return ix, iy
}

// pageBounds returns the full page rectangle.
func (g Geometry) pageBounds() image.Rectangle {
	return image.Rect(0, 0, g.PageWidth, g.PageHeight)
}

// pixelsPerMeter converts the page DPI to the unit used by PNG pHYs chunks.
func (g Geometry) pixelsPerMeter() uint32 {
	return uint32(math.Round(float64(g.DPI) / 0.0254))
}
