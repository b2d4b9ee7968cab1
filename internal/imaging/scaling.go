package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleToWidth resizes img to width pixels keeping its aspect ratio. Images
// already at most width wide are returned unchanged.
func ScaleToWidth(img image.Image, width int) image.Image {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if width <= 0 || width >= srcW || srcW == 0 {
		return img
	}

	scale := float64(width) / float64(srcW)
	h := max(int(float64(srcH)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// thumbnail is a cheap scale for tiny placeholders.
func thumbnail(img image.Image, width int) image.Image {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return img
	}
	width = min(width, srcW)
	h := max(int(float64(srcH)*float64(width)/float64(srcW)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, width, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
