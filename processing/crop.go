package processing

import (
	"errors"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"math"

	"github.com/nfnt/resize"
)

// Crop maps the on-screen crop frame back onto the natural-resolution source.
// All on-screen values are in the same pixel space the user panned and zoomed
// in; the offset is relative to the frame centre and deliberately unclamped.
type Crop struct {
	FrameWidth  float64 `json:"frameWidth"`
	FrameHeight float64 `json:"frameHeight"`
	DispWidth   float64 `json:"dispWidth"`
	DispHeight  float64 `json:"dispHeight"`
	NatWidth    float64 `json:"-"`
	NatHeight   float64 `json:"-"`
	Scale       float64 `json:"scale"`
	OffsetX     float64 `json:"offsetX"`
	OffsetY     float64 `json:"offsetY"`
}

// Window computes the natural-space crop rectangle: the frame scaled from
// device to natural pixels and shrunk by the zoom, centred on the image minus
// the scaled pan offset.
func (c *Crop) Window() (x, y, w, h float64) {
	scaleX := c.NatWidth / c.DispWidth
	scaleY := c.NatHeight / c.DispHeight
	w = c.FrameWidth * scaleX / c.Scale
	h = c.FrameHeight * scaleY / c.Scale
	x = (c.NatWidth-w)/2 - c.OffsetX*scaleX/c.Scale
	y = (c.NatHeight-h)/2 - c.OffsetY*scaleY/c.Scale
	return
}

// Render copies the crop window from the source onto a frame-sized canvas and
// encodes it as JPEG. Out-of-window area left exposed by extreme pan or zoom
// is filled with solid white first, never left undefined.
func (c *Crop) Render(src image.Image, writer io.Writer) error {
	if c.Scale <= 0 || c.DispWidth <= 0 || c.DispHeight <= 0 ||
		c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return errors.New("invalid crop geometry")
	}
	x, y, w, h := c.Window()
	outWidth := int(math.Round(c.FrameWidth))
	outHeight := int(math.Round(c.FrameHeight))
	dst := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	windowX := int(math.Round(x))
	windowY := int(math.Round(y))
	window := image.Rect(windowX, windowY, windowX+int(math.Round(w)), windowY+int(math.Round(h)))
	visible := window.Intersect(src.Bounds())
	if !visible.Empty() {
		part := image.NewRGBA(image.Rect(0, 0, visible.Dx(), visible.Dy()))
		draw.Draw(part, part.Bounds(), src, visible.Min, draw.Src)

		destWidth := int(math.Round(float64(visible.Dx()) * float64(outWidth) / w))
		destHeight := int(math.Round(float64(visible.Dy()) * float64(outHeight) / h))
		destX := int(math.Round(float64(visible.Min.X-window.Min.X) * float64(outWidth) / w))
		destY := int(math.Round(float64(visible.Min.Y-window.Min.Y) * float64(outHeight) / h))
		if destWidth > 0 && destHeight > 0 {
			scaled := resize.Resize(uint(destWidth), uint(destHeight), part, resize.Lanczos3)
			draw.Draw(dst, image.Rect(destX, destY, destX+destWidth, destY+destHeight), scaled, image.Point{}, draw.Src)
		}
	}
	return jpeg.Encode(writer, dst, &jpeg.Options{Quality: 95})
}
