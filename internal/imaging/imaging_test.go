package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matjam/lazyimg/internal/types"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.JPG"))
	assert.True(t, IsImageFile("b.webp"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("noext"))
}

func TestDescribe(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 120, 80)

	w, h, format, err := Describe(path)
	require.NoError(t, err)
	assert.Equal(t, 120, w)
	assert.Equal(t, 80, h)
	assert.Equal(t, "png", format)
}

func TestDescribe_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o600))

	_, _, _, err := Describe(path)
	assert.Error(t, err)

	_, _, _, err = Describe(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 10, 5)

	img, format, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 10, 5), img.Bounds())
}

func TestScaleToWidth(t *testing.T) {
	scaled := ScaleToWidth(testImage(200, 100), 50)
	assert.Equal(t, 50, scaled.Bounds().Dx())
	assert.Equal(t, 25, scaled.Bounds().Dy())

	src := testImage(40, 40)
	assert.Same(t, src, ScaleToWidth(src, 400))
	assert.Same(t, src, ScaleToWidth(src, 0))
}

func TestPlaceholder(t *testing.T) {
	uri, err := Placeholder(testImage(400, 200), 20)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	w, h, _, err := describeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)
}

func describeDataURI(uri string) (int, int, string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	if err != nil {
		return 0, 0, "", err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	return cfg.Width, cfg.Height, format, err
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, types.FormatJPEG, OutputFormat(types.FormatOriginal, "jpeg"))
	assert.Equal(t, types.FormatPNG, OutputFormat(types.FormatOriginal, "png"))
	assert.Equal(t, types.FormatPNG, OutputFormat(types.FormatWebP, "gif"))
	assert.Equal(t, types.FormatJPEG, OutputFormat(types.FormatWebP, "jpeg"))
	assert.Equal(t, types.FormatPNG, OutputFormat(types.FormatPNG, "jpeg"))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(4, 4), types.FormatJPEG))
	_, format, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	err = Encode(&buf, testImage(4, 4), types.FormatWebP)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentType(types.FormatJPEG))
	assert.Equal(t, "image/png", ContentType(types.FormatPNG))
}
