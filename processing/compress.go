package processing

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
)

const (
	compressStartQuality = 92
	compressQualityStep  = 10
	compressFloorQuality = 50
)

// CompressUnder re-encodes the source as JPEG, stepping the quality down from
// 92 in steps of 10 until the result fits under limit or the quality floor of
// 50 is passed. Re-encoding is unconditional regardless of the original
// format, so the image host's size ceiling is guaranteed without a second
// round-trip.
func CompressUnder(limit int64, reader io.Reader) ([]byte, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for q := compressStartQuality; q >= compressFloorQuality; q -= compressQualityStep {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, err
		}
		if int64(buf.Len()) <= limit {
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("image still %d bytes over the %d byte limit at lowest quality", int64(buf.Len())-limit, limit)
}
