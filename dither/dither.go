// Package dither renders hero images as error-diffused two-tone bitmaps, the
// server-side counterpart of the site's canvas dithering effect.
package dither

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// MaxWidth bounds the output width.
const MaxWidth = 1600

// MaxPixels bounds the declared size of a source image. It is checked before the
// pixels are decoded.
const MaxPixels = 40_000_000

// ErrTooLarge reports a source image above MaxPixels.
var ErrTooLarge = errors.New("dither: image too large")

// Mono is the default black and white palette.
var Mono = color.Palette{color.Black, color.White}

// Duotone builds a two-color palette.
func Duotone(dark, light color.Color) color.Palette {
	return color.Palette{dark, light}
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("dither: invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("dither: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Dither scales src down to at most width pixels wide and quantises it to p with
// Floyd-Steinberg error diffusion. A width of zero keeps the source width.
func Dither(src image.Image, width int, p color.Palette) *image.Paletted {
	if len(p) == 0 {
		p = Mono
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if width <= 0 || width > MaxWidth {
		width = min(w, MaxWidth)
	}
	if w > width {
		h = max(1, h*width/w)
		w = width
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, b, draw.Src, nil)

	dst := image.NewPaletted(scaled.Bounds(), p)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), scaled, image.Point{})
	return dst
}

// Render decodes an image from r, dithers it and writes a PNG to w. Sources whose
// header declares more than MaxPixels fail with ErrTooLarge without being decoded.
func Render(w io.Writer, r io.Reader, width int, p color.Palette) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("dither: read image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("dither: decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("dither: decode image: %w", err)
	}
	if err := png.Encode(w, Dither(src, width, p)); err != nil {
		return fmt.Errorf("dither: encode png: %w", err)
	}
	return nil
}
