package processing

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func colorNear(got color.Color, want color.RGBA, tolerance int) bool {
	r, g, b, _ := got.RGBA()
	diff := func(a uint32, b uint8) int {
		d := int(a>>8) - int(b)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(r, want.R) <= tolerance && diff(g, want.G) <= tolerance && diff(b, want.B) <= tolerance
}

func TestCrop_Window(t *testing.T) {
	crop := Crop{
		FrameWidth: 300, FrameHeight: 450,
		DispWidth: 400, DispHeight: 600,
		NatWidth: 2000, NatHeight: 3000,
		Scale:   1.5,
		OffsetX: 20, OffsetY: -30,
	}
	x, y, w, h := crop.Window()
	// scaleX = scaleY = 5; window = frame*5/1.5; origin centred minus scaled pan
	wantW, wantH := 1000.0, 1500.0
	wantX := (2000.0-wantW)/2 - 20*5/1.5
	wantY := (3000.0-wantH)/2 + 30*5/1.5
	for _, check := range []struct {
		name      string
		got, want float64
	}{
		{"x", x, wantX}, {"y", y, wantY}, {"w", w, wantW}, {"h", h, wantH},
	} {
		if math.Abs(check.got-check.want) > 1e-9 {
			t.Errorf("Window() %s = %v, want %v", check.name, check.got, check.want)
		}
	}
}

// With no zoom, no pan and matching aspect ratios the render is the full
// source resampled to frame size - no cropping at all
func TestCrop_Render_FullFrameRoundTrip(t *testing.T) {
	red := color.RGBA{200, 30, 30, 255}
	src := solidImage(800, 600, red)
	crop := Crop{
		FrameWidth: 400, FrameHeight: 300,
		DispWidth: 400, DispHeight: 300,
		NatWidth: 800, NatHeight: 600,
		Scale: 1.0,
	}
	var buf bytes.Buffer
	if err := crop.Render(src, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding render: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 300 {
		t.Fatalf("render size = %dx%d, want 400x300", bounds.Dx(), bounds.Dy())
	}
	for _, p := range []image.Point{{0, 0}, {399, 0}, {200, 150}, {0, 299}, {399, 299}} {
		if !colorNear(out.At(p.X, p.Y), red, 12) {
			t.Errorf("pixel %v = %v, want near %v", p, out.At(p.X, p.Y), red)
		}
	}
}

// Panning the image entirely out of the window must leave a fully filled
// background, never undefined pixels
func TestCrop_Render_ExtremePanFillsBackground(t *testing.T) {
	src := solidImage(800, 600, color.RGBA{0, 0, 0, 255})
	crop := Crop{
		FrameWidth: 200, FrameHeight: 200,
		DispWidth: 400, DispHeight: 300,
		NatWidth: 800, NatHeight: 600,
		Scale:   1.0,
		OffsetX: 100000,
	}
	var buf bytes.Buffer
	if err := crop.Render(src, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding render: %v", err)
	}
	white := color.RGBA{255, 255, 255, 255}
	for _, p := range []image.Point{{0, 0}, {100, 100}, {199, 199}} {
		if !colorNear(out.At(p.X, p.Y), white, 5) {
			t.Errorf("pixel %v = %v, want background white", p, out.At(p.X, p.Y))
		}
	}
}

func TestCrop_Render_RejectsBadGeometry(t *testing.T) {
	src := solidImage(10, 10, color.RGBA{0, 0, 0, 255})
	crop := Crop{
		FrameWidth: 100, FrameHeight: 100,
		DispWidth: 100, DispHeight: 100,
		NatWidth: 10, NatHeight: 10,
		Scale: 0,
	}
	if err := crop.Render(src, &bytes.Buffer{}); err == nil {
		t.Errorf("expected error for zero scale")
	}
}
