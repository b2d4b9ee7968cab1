package types

// Format is the encoding requested for an image variant.
type Format string

const (
	FormatOriginal Format = ""
	FormatWebP     Format = "webp"
	FormatJPEG     Format = "jpeg"
	FormatPNG      Format = "png"
)

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatOriginal, FormatWebP, FormatJPEG, FormatPNG:
		return true
	}
	return false
}

// FitMode maps onto the CSS object-fit property of the image layers.
type FitMode string

const (
	FitCover   FitMode = "cover"
	FitContain FitMode = "contain"
	FitFill    FitMode = "fill"
	FitNone    FitMode = "none"
)

type EasingMode string

const (
	EasingLinear    EasingMode = "linear"
	EasingEase      EasingMode = "ease"
	EasingEaseIn    EasingMode = "ease-in"
	EasingEaseOut   EasingMode = "ease-out"
	EasingEaseInOut EasingMode = "ease-in-out"
)
