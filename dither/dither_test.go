package dither

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		v := uint8(x * 255 / (w - 1))
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{v, v, v, 0xff})
		}
	}
	return img
}

func TestDitherScalesAndQuantises(t *testing.T) {
	out := Dither(gradient(400, 100), 200, nil)
	if got := out.Bounds(); got.Dx() != 200 || got.Dy() != 50 {
		t.Fatalf("bounds = %v, want 200x50", got)
	}
	if len(out.Palette) != 2 {
		t.Fatalf("palette size = %d, want 2", len(out.Palette))
	}
	// The dark edge should be mostly black and the light edge mostly white.
	var leftDark, rightLight int
	for y := 0; y < 50; y++ {
		if out.ColorIndexAt(0, y) == 0 {
			leftDark++
		}
		if out.ColorIndexAt(199, y) == 1 {
			rightLight++
		}
	}
	if leftDark < 45 || rightLight < 45 {
		t.Fatalf("edges not preserved: dark=%d light=%d", leftDark, rightLight)
	}
}

func TestDitherKeepsSmallImages(t *testing.T) {
	out := Dither(gradient(50, 20), 800, Mono)
	if got := out.Bounds(); got.Dx() != 50 || got.Dy() != 20 {
		t.Fatalf("bounds = %v, want 50x20", got)
	}
}

func TestRender(t *testing.T) {
	var in bytes.Buffer
	if err := png.Encode(&in, gradient(64, 64)); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := Render(&out, &in, 32, Duotone(color.Black, color.White)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Fatalf("width = %d, want 32", img.Bounds().Dx())
	}
	if err := Render(&out, bytes.NewReader([]byte("nope")), 10, nil); err == nil {
		t.Fatal("expected decode error")
	}
}

// hugePNG is a valid 2x2 PNG whose header claims w by h pixels.
func hugePNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(2, 2)); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	// signature(8) length(4) "IHDR"(4) width(4) height(4) ... crc after 13 data bytes
	binary.BigEndian.PutUint32(b[16:], w)
	binary.BigEndian.PutUint32(b[20:], h)
	binary.BigEndian.PutUint32(b[29:], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func TestRenderRejectsHugeSource(t *testing.T) {
	var out bytes.Buffer
	err := Render(&out, bytes.NewReader(hugePNG(t, 100000, 100000)), 100, Mono)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if out.Len() != 0 {
		t.Fatal("wrote output for a rejected source")
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1e1b4b")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{0x1e, 0x1b, 0x4b, 0xff}) {
		t.Fatalf("ParseHex = %v", c)
	}
	for _, bad := range []string{"", "#fff", "zzzzzz"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}
