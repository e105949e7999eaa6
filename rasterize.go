package sitekit

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RasterizeSVG renders an SVG document to PNG at the given pixel width,
// keeping the view box aspect ratio. It returns the PNG bytes and the
// output size.
func RasterizeSVG(r io.Reader, width int) (data []byte, w, h int, err error) {
	if width <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: width must be positive, got %d", ErrRasterize, width)
	}

	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: missing viewBox or size", ErrRasterize)
	}

	height := int(math.Round(float64(width) * vb.H / vb.W))
	if height < 1 {
		height = 1
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: encoding PNG: %v", ErrRasterize, err)
	}
	return buf.Bytes(), width, height, nil
}
