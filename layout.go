package main

import (
	"errors"
	"fmt"
)

// ErrPageOverflow is returned when a payload does not fit on a single page.
var ErrPageOverflow = errors.New("input too large to fit on a single page")

// blockPosition maps a block's ordinal index to the top-left pixel of its
// square. Blocks run left to right, top to bottom, starting at
// (margin, margin) with a margin-wide gap between neighbours. The decoder
// replays this exact mapping; block positions are never stored in the image.
func blockPosition(g Geometry, index int) (x, y int, err error) {
	perRow := g.BlocksPerRow()
	if perRow == 0 {
		return 0, 0, ErrPageOverflow
	}
	row := index / perRow
	col := index % perRow
	if row >= g.MaxRows() {
		return 0, 0, ErrPageOverflow
	}
	x = g.Margin + col*(g.BlockWidth+g.Margin)
	y = g.Margin + row*(g.BlockHeight+g.Margin)
	return x, y, nil
}

// planBlocks computes the total block count for a payload of the given size
// and verifies the whole layout, footer included, fits on the page. Nothing
// is rendered when this fails.
func planBlocks(g Geometry, payloadSize int) (total int, err error) {
	dataBlocks := (payloadSize + bytesPerBlock - 1) / bytesPerBlock
	total = dataBlocks + 2
	if total > g.MaxBlocks() {
		return 0, fmt.Errorf("%d bytes need %d blocks, page holds %d: %w",
			payloadSize, total, g.MaxBlocks(), ErrPageOverflow)
	}
	return total, nil
}
