package glyph

import (
	"errors"
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"
)

// ImageFrom scales src to w×h with Catmull-Rom, dithers it to black and white with
// Floyd-Steinberg error diffusion and packs the result. White pixels become set bits.
func ImageFrom(src image.Image, w, h int) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("glyph: image size must be positive")
	}
	if src.Bounds().Empty() {
		return nil, errors.New("glyph: empty source image")
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	// Transparent areas end up black.
	draw.Draw(scaled, scaled.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Over, nil)

	ditherer := dither.NewDitherer([]color.Color{color.Black, color.White})
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true
	p := ditherer.DitherPaletted(scaled)

	data := pack(w, h, func(x, y int) bool {
		return p.ColorIndexAt(x, y) == 1
	})
	return &Image{W: w, H: h, Data: data}, nil
}
