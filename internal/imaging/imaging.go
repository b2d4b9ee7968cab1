// Package imaging reads, scales and encodes the image files served to
// responsive images.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // decoders for served images
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // webp decoder

	"github.com/matjam/lazyimg/internal/types"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// Extensions lists the file extensions that can be decoded.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// IsImageFile reports whether name has a decodable extension.
func IsImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Describe returns the pixel dimensions and format name of the file at path
// without decoding the pixels.
func Describe(path string) (width, height int, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, format, nil
}

func Load(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, format, nil
}

// Placeholder encodes a width pixel wide thumbnail of img as a PNG data URI.
// Browsers upscale it into the blurred placeholder.
func Placeholder(img image.Image, width int) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, thumbnail(img, width)); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// OutputFormat picks the encoding for a variant of a source in srcFormat.
// Formats without an encoder fall back to JPEG, or PNG for sources that may
// carry transparency.
func OutputFormat(requested types.Format, srcFormat string) types.Format {
	switch requested {
	case types.FormatJPEG, types.FormatPNG:
		return requested
	}
	switch srcFormat {
	case "jpeg":
		return types.FormatJPEG
	default:
		return types.FormatPNG
	}
}

func ContentType(format types.Format) string {
	switch format {
	case types.FormatJPEG:
		return "image/jpeg"
	case types.FormatPNG:
		return "image/png"
	case types.FormatWebP:
		return "image/webp"
	}
	return "application/octet-stream"
}

// Encode writes img in format.
func Encode(w io.Writer, img image.Image, format types.Format) error {
	switch format {
	case types.FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 85})
	case types.FormatPNG:
		return png.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
