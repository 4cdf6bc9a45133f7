package main

import (
	"image"
	"image/color"
)

// region identifies one of the five colored areas of a block. The order is
// the byte order inside a block: three bytes per region.
type region int

const (
	regionTop region = iota
	regionBottom
	regionRight
	regionLeft
	regionInner
)

// regionOf classifies a pixel at block-relative coordinates (dx, dy) into
// exactly one region. The four trapezoids meet the inner rectangle's corners
// on 45-degree diagonals; ties on a diagonal go to the horizontal region so
// every pixel lands in exactly one region.
func regionOf(g Geometry, dx, dy int) region {
	ix := (g.BlockWidth - g.InnerWidth) / 2
	iy := (g.BlockHeight - g.InnerHeight) / 2

	inLeft := dx < ix
	inRight := dx >= ix+g.InnerWidth
	inTop := dy < iy
	inBottom := dy >= iy+g.InnerHeight

	switch {
	case !inLeft && !inRight && !inTop && !inBottom:
		return regionInner
	case inTop && !inLeft && !inRight:
		return regionTop
	case inBottom && !inLeft && !inRight:
		return regionBottom
	case inLeft && !inTop && !inBottom:
		return regionLeft
	case inRight && !inTop && !inBottom:
		return regionRight
	case inTop && inLeft:
		if dy <= dx {
			return regionTop
		}
		return regionLeft
	case inTop && inRight:
		if dy <= g.BlockWidth-1-dx {
			return regionTop
		}
		return regionRight
	case inBottom && inLeft:
		if g.BlockHeight-1-dy <= dx {
			return regionBottom
		}
		return regionLeft
	default: // inBottom && inRight
		if g.BlockHeight-1-dy <= g.BlockWidth-1-dx {
			return regionBottom
		}
		return regionRight
	}
}

// sampleRects returns the sampling rectangle for each region of the block at
// (x, y), before the fixed inset is applied. Each rectangle sits on the
// middle stretch of its region so that, after the inset, every sampled pixel
// lies strictly inside the region's polygon.
func sampleRects(g Geometry, x, y int) [colorsPerBlock]image.Rectangle {
	w, h := g.BlockWidth, g.BlockHeight
	ix, iy := g.innerOrigin(x, y)
	iw, ih := g.InnerWidth, g.InnerHeight

	return [colorsPerBlock]image.Rectangle{
		regionTop:    image.Rect(x+w/4, y, x+3*w/4, iy),
		regionBottom: image.Rect(x+w/4, iy+ih, x+3*w/4, y+h),
		regionRight:  image.Rect(ix+iw, y+h/4, x+w, y+3*h/4),
		regionLeft:   image.Rect(x, y+h/4, ix, y+3*h/4),
		regionInner:  image.Rect(ix+iw/4, iy+ih/4, ix+3*iw/4, iy+3*ih/4),
	}
}

// drawBlock paints one 15-byte block with its top-left corner at (x, y).
// Every pixel of the block square is assigned to exactly one region and
// filled with that region's RGB triple; a one-pixel black outline is drawn
// around the square afterwards. The outline carries no data.
func drawBlock(img *image.RGBA, g Geometry, x, y int, data []byte) {
	var colors [colorsPerBlock]color.RGBA
	for i := range colors {
		colors[i] = color.RGBA{
			R: data[i*bytesPerColor],
			G: data[i*bytesPerColor+1],
			B: data[i*bytesPerColor+2],
			A: 0xff,
		}
	}

	for dy := 0; dy < g.BlockHeight; dy++ {
		for dx := 0; dx < g.BlockWidth; dx++ {
			img.SetRGBA(x+dx, y+dy, colors[regionOf(g, dx, dy)])
		}
	}

	outlineRect(img, image.Rect(x, y, x+g.BlockWidth, y+g.BlockHeight), color.RGBA{A: 0xff})
}

// outlineRect draws a one-pixel border just inside r.
func outlineRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

// averageColor returns the per-channel mean over r inset by the fixed
// sampling margin, rounded to the nearest integer. An empty sampling area
// reads as black.
func averageColor(img *image.RGBA, r image.Rectangle) (uint8, uint8, uint8) {
	r = r.Inset(sampleInset).Intersect(img.Bounds())
	if r.Empty() {
		return 0, 0, 0
	}

	var sumR, sumG, sumB uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sumR += uint64(img.Pix[row])
			sumG += uint64(img.Pix[row+1])
			sumB += uint64(img.Pix[row+2])
			row += 4
		}
	}

	n := uint64(r.Dx() * r.Dy())
	return uint8((sumR + n/2) / n), uint8((sumG + n/2) / n), uint8((sumB + n/2) / n)
}

// extractBlock samples the five regions of the block at (x, y) and
// reassembles its 15 bytes.
func extractBlock(img *image.RGBA, g Geometry, x, y int) []byte {
	out := make([]byte, bytesPerBlock)
	for i, rect := range sampleRects(g, x, y) {
		r, gr, b := averageColor(img, rect)
		out[i*bytesPerColor] = r
		out[i*bytesPerColor+1] = gr
		out[i*bytesPerColor+2] = b
	}
	return out
}
