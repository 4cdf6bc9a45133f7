package main

import (
	"bytes"
	"image"
	"image/draw"
	"testing"
)

func TestBlockRoundTrip(t *testing.T) {
	g := DefaultGeometry()
	canvas := image.NewRGBA(image.Rect(0, 0, 520, 520))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	data := []byte{
		10, 20, 30, // top
		40, 50, 60, // bottom
		70, 80, 90, // right
		100, 110, 120, // left
		200, 210, 220, // inner
	}
	drawBlock(canvas, g, 110, 110, data)

	got := extractBlock(canvas, g, 110, 110)
	if !bytes.Equal(got, data) {
		t.Fatalf("extracted %v, want %v", got, data)
	}
}

func TestAverageColorEmptyArea(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Smaller than twice the sampling inset on each axis, so nothing is
	// left to sample.
	r, g, b := averageColor(img, image.Rect(0, 0, 8, 8))
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("empty sampling area averaged to (%d,%d,%d), want black", r, g, b)
	}
}

func TestAverageColorRounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	// Half the rows at 10, half at 11: the mean is 10.5 and must round up.
	for y := 0; y < 40; y++ {
		v := uint8(10)
		if y >= 20 {
			v = 11
		}
		for x := 0; x < 40; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 0xff
		}
	}

	r, _, _ := averageColor(img, image.Rect(0, 0, 40, 40))
	if r != 11 {
		t.Fatalf("mean of 10.5 rounded to %d, want 11", r)
	}
}
