package main

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"runtime"
	"sync"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/kettek/apng"
	"github.com/nfnt/resize"
)

// DecodePage recovers the payload and logical filename from a page image.
// Block positions are replayed from the shared geometry; the header at the
// first position declares how many data blocks follow, the footer checksum
// decides success. On any failure no data is returned.
func DecodePage(g Geometry, src image.Image) (name string, data []byte, err error) {
	page := normalizePage(g, src)

	hx, hy, err := blockPosition(g, 0)
	if err != nil {
		return "", nil, err
	}
	header, err := parseHeader(extractBlock(page, g, hx, hy))
	if err != nil {
		return "", nil, err
	}
	debugf("header: name %q ext %q size %d blocks %d",
		header.NamePrefix, header.Extension, header.FileSize, header.BlockCount)

	// The footer sits one position past the counted blocks; make sure the
	// whole traversal is on the page before sampling anything.
	if _, _, err := blockPosition(g, header.BlockCount); err != nil {
		return "", nil, fmt.Errorf("block count %d exceeds page capacity: %w",
			header.BlockCount, ErrHeaderDecode)
	}

	dataBlocks := header.BlockCount - 1
	raw := extractDataBlocks(page, g, dataBlocks)

	size := header.FileSize
	if size > len(raw) {
		debugf("declared size %d exceeds %d recovered bytes", size, len(raw))
		size = len(raw)
	}
	data = raw[:size]

	fx, fy, err := blockPosition(g, header.BlockCount)
	if err != nil {
		return "", nil, err
	}
	if err := verifyFooter(extractBlock(page, g, fx, fy), data); err != nil {
		return "", nil, err
	}

	name = header.NamePrefix
	if header.Extension != "" {
		name += "." + header.Extension
	}
	if name == "" {
		name = "decoded"
	}
	return name, data, nil
}

// extractDataBlocks samples all data blocks. Each block is a pure function
// of the image and its position, so blocks are split across workers; every
// worker writes to fixed offsets, keeping the output identical to a
// sequential pass.
func extractDataBlocks(page *image.RGBA, g Geometry, count int) []byte {
	raw := make([]byte, count*bytesPerBlock)

	workers := runtime.NumCPU()
	if workers > count {
		workers = count
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < count; i += workers {
				x, y, err := blockPosition(g, 1+i)
				if err != nil {
					return // positions were validated up front
				}
				copy(raw[i*bytesPerBlock:], extractBlock(page, g, x, y))
			}
		}(w)
	}
	wg.Wait()
	return raw
}

// normalizePage turns an arbitrary input image into the canonical page
// raster. Exact-size images are used as-is; a vertically truncated image is
// composited onto a black canvas so missing pixels decode as zeros; anything
// else (a rescaled scan or screenshot) is resized back to the page
// dimensions before sampling.
func normalizePage(g Geometry, src image.Image) *image.RGBA {
	b := src.Bounds()
	page := image.NewRGBA(g.pageBounds())

	switch {
	case b.Dx() == g.PageWidth && b.Dy() == g.PageHeight:
		draw.Draw(page, page.Bounds(), src, b.Min, draw.Src)
	case b.Dx() == g.PageWidth && b.Dy() < g.PageHeight:
		debugf("image holds %d of %d rows, missing pixels read as black", b.Dy(), g.PageHeight)
		draw.Draw(page, image.Rect(0, 0, b.Dx(), b.Dy()), src, b.Min, draw.Src)
	default:
		debugf("rescaling %dx%d input to %dx%d page", b.Dx(), b.Dy(), g.PageWidth, g.PageHeight)
		scaled := resize.Resize(uint(g.PageWidth), uint(g.PageHeight), src, resize.Lanczos3)
		draw.Draw(page, page.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	}
	return page
}

// loadPageImage reads an encoded page from disk. PNG input goes through the
// apng decoder, which also handles plain PNGs; animated input contributes
// its first frame. Other formats fall back to the registered stdlib
// decoders.
func loadPageImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if a, aerr := apng.DecodeAll(f); aerr == nil && len(a.Frames) > 0 {
		if len(a.Frames) > 1 {
			debugf("animated png: using first of %d frames", len(a.Frames))
		}
		return a.Frames[0].Image, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(f)
	return img, err
}
