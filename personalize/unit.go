package personalize

import (
	"printshop/models"
)

const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"

	MinImageScale = 0.5
	MaxImageScale = 3.0
)

// UploadedPhoto is one user-supplied source image. SourceURL points at the
// hosted full-resolution copy; the preview is a downscaled data URI the
// storefront crops against without re-fetching the original.
type UploadedPhoto struct {
	ID             string `json:"id"`
	SourceURL      string `json:"sourceUrl"`
	PreviewDataURI string `json:"previewDataUri"`
	NaturalWidth   int    `json:"naturalWidth"`
	NaturalHeight  int    `json:"naturalHeight"`
}

// CanvasConfiguration describes how a photo is mapped onto one physical
// canvas. Position is in on-screen pixels relative to the frame centre and is
// deliberately unclamped; anything panned out of frame is clipped at render
// time.
type CanvasConfiguration struct {
	Orientation  string  `json:"orientation"`
	SelectedSize string  `json:"selectedSize"`
	ImageScale   float64 `json:"imageScale"`
	PositionX    float64 `json:"positionX"`
	PositionY    float64 `json:"positionY"`
}

// OrientedAspectRatio derives the crop frame shape from the selected size.
// Derived, never stored.
func (cfg *CanvasConfiguration) OrientedAspectRatio(size *models.SizeOption) float64 {
	base := size.Width / size.Height
	if cfg.Orientation == OrientationPortrait {
		return 1 / base
	}
	return base
}

func clampScale(scale float64) float64 {
	if scale < MinImageScale {
		return MinImageScale
	}
	if scale > MaxImageScale {
		return MaxImageScale
	}
	return scale
}

// Unit pairs one uploaded photo with its canvas configuration. Photos and
// configurations live and die together; a unit is addressed by its stable
// handle, never by position.
type Unit struct {
	Handle uint64              `json:"handle"`
	Photo  UploadedPhoto       `json:"photo"`
	Config CanvasConfiguration `json:"config"`

	original []byte  // compressed source, used to render the final crop
	cropped  []byte  // written only on save-and-continue
	price    float64 // frozen from the size table when the crop is rendered
}

func defaultConfiguration(sizes models.SizeTable) CanvasConfiguration {
	cfg := CanvasConfiguration{
		Orientation: OrientationPortrait,
		ImageScale:  1.0,
	}
	if len(sizes) > 0 {
		cfg.SelectedSize = sizes[0].SizeID
	}
	return cfg
}
