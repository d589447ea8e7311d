package processing

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

// Preview is the downscaled copy used for on-screen cropping, so the
// storefront never re-downloads the full-resolution original. Thumbnail
// scaling keeps the aspect ratio, which the crop math depends on.
type Preview struct {
	DataURI       string `json:"dataUri"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	NaturalWidth  int    `json:"naturalWidth"`
	NaturalHeight int    `json:"naturalHeight"`
}

// CreatePreview decodes the source and produces a JPEG data URI no larger
// than maxEdge on its longest side
func CreatePreview(maxEdge uint, reader io.Reader) (result Preview, err error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	small := resize.Thumbnail(maxEdge, maxEdge, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, small, &jpeg.Options{Quality: 90}); err != nil {
		return result, err
	}
	result.DataURI = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	smallRect := small.Bounds().Size()
	result.Width = smallRect.X
	result.Height = smallRect.Y
	naturalRect := img.Bounds().Size()
	result.NaturalWidth = naturalRect.X
	result.NaturalHeight = naturalRect.Y
	return result, nil
}
