package probe

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
)

// EncodeFunc writes img in a single image format.
type EncodeFunc func(w io.Writer, img image.Image) error

// EncoderSurface is a 1x1 in-memory surface exported through Go image
// encoders. Like a browser canvas, it answers requests for a format it
// cannot encode with PNG.
type EncoderSurface struct {
	img      *image.RGBA
	encoders map[string]EncodeFunc
}

// NewEncoderSurface returns a surface with the png and jpeg encoders plus any
// extra ones supplied.
func NewEncoderSurface(extra map[string]EncodeFunc) *EncoderSurface {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)

	encoders := map[string]EncodeFunc{
		"image/png": png.Encode,
		"image/jpeg": func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, nil)
		},
	}
	for mime, enc := range extra {
		encoders[mime] = enc
	}

	return &EncoderSurface{img: img, encoders: encoders}
}

// DefaultSurface is the SurfaceFunc used by the CLI.
func DefaultSurface() Surface {
	return NewEncoderSurface(nil)
}

func (s *EncoderSurface) HasContext2D() bool {
	return s != nil && s.img != nil
}

func (s *EncoderSurface) DataURL(mimeType string) string {
	enc, ok := s.encoders[mimeType]
	if !ok {
		mimeType, enc = "image/png", png.Encode
	}

	var buf bytes.Buffer
	if err := enc(&buf, s.img); err != nil {
		return "data:,"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
