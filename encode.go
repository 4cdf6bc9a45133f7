package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"image/draw"
	"image/png"
	"io"
)

// EncodePage renders a payload into a single page image. name is the logical
// base name (without extension), ext the extension without its dot. The
// header block goes first, then the payload in 15-byte blocks (the last one
// zero-padded), then the footer. The layout is validated in full before the
// canvas is allocated, so a payload that does not fit fails with
// ErrPageOverflow and no partial image.
func EncodePage(g Geometry, name, ext string, data []byte) (*image.RGBA, error) {
	total, err := planBlocks(g, len(data))
	if err != nil {
		return nil, err
	}
	debugf("encoding %d bytes as %d blocks (%d per row)", len(data), total, g.BlocksPerRow())

	header := buildHeader(name, ext, len(data), total-1)
	footer := buildFooter(name, ext, data)

	page := image.NewRGBA(g.pageBounds())
	draw.Draw(page, page.Bounds(), image.White, image.Point{}, draw.Src)

	put := func(index int, block []byte) error {
		x, y, err := blockPosition(g, index)
		if err != nil {
			return err
		}
		drawBlock(page, g, x, y, block)
		return nil
	}

	if err := put(0, header); err != nil {
		return nil, err
	}
	block := make([]byte, bytesPerBlock)
	for i := 0; i*bytesPerBlock < len(data); i++ {
		for j := range block {
			block[j] = 0
		}
		copy(block, data[i*bytesPerBlock:])
		if err := put(1+i, block); err != nil {
			return nil, err
		}
	}
	if err := put(total-1, footer); err != nil {
		return nil, err
	}
	return page, nil
}

// writePNG encodes img as PNG and splices a pHYs chunk after the IHDR so the
// page carries its physical resolution. The standard library encoder does
// not emit pHYs itself.
func writePNG(w io.Writer, img image.Image, g Geometry) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	raw := buf.Bytes()

	// 8-byte signature, then IHDR: 4-byte length, 4-byte type, data, CRC.
	if len(raw) < 16 {
		return fmt.Errorf("png stream too short (%d bytes)", len(raw))
	}
	ihdrEnd := 8 + 8 + int(binary.BigEndian.Uint32(raw[8:12])) + 4
	if ihdrEnd > len(raw) {
		return fmt.Errorf("png IHDR length out of range")
	}

	if _, err := w.Write(raw[:ihdrEnd]); err != nil {
		return err
	}
	if _, err := w.Write(physChunk(g.pixelsPerMeter())); err != nil {
		return err
	}
	_, err := w.Write(raw[ihdrEnd:])
	return err
}

// physChunk builds a PNG pHYs chunk for a square pixel density in pixels per
// meter.
func physChunk(ppm uint32) []byte {
	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1 // unit is the meter
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}
