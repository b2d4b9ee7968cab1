// Package srcset builds responsive source-set candidates for an image.
package srcset

import (
	"fmt"
	"math"
	"strings"
)

// Separator joins source-set entries. Some consumers depend on the newline.
const Separator = ",\n"

// scales relative to the design-time max width
var scales = []float64{0.25, 0.5, 1, 1.5, 2, 3}

// Set is a computed source-set for one image.
type Set struct {
	Widths []int  `json:"widths"`
	Markup string `json:"srcset"`
	Sizes  string `json:"sizes"`
}

// CandidateWidths returns the ascending list of widths to offer for an image
// naturalWidth pixels wide displayed at up to maxWidth logical pixels.
//
// Scaled candidates that would upscale the source are dropped, and the
// natural width is always the last element. A non-positive maxWidth yields
// only the natural width.
func CandidateWidths(naturalWidth, maxWidth int) []int {
	widths := make([]int, 0, len(scales)+1)
	prev := 0
	for _, s := range scales {
		w := int(math.Round(float64(maxWidth) * s))
		if w <= prev || w >= naturalWidth {
			continue
		}
		widths = append(widths, w)
		prev = w
	}

	// The source itself is the sharpest variant available.
	return append(widths, naturalWidth)
}

// Markup formats widths as "<url> <width>w" entries.
func Markup(widths []int, url func(width int) string) string {
	entries := make([]string, len(widths))
	for i, w := range widths {
		entries[i] = fmt.Sprintf("%s %dw", url(w), w)
	}
	return strings.Join(entries, Separator)
}

// Sizes returns the sizes hint: full viewport width below maxWidth, capped
// at maxWidth above it.
func Sizes(maxWidth int) string {
	return fmt.Sprintf("(max-width: %dpx) 100vw, %dpx", maxWidth, maxWidth)
}

func Build(naturalWidth, maxWidth int, url func(width int) string) Set {
	widths := CandidateWidths(naturalWidth, maxWidth)
	return Set{
		Widths: widths,
		Markup: Markup(widths, url),
		Sizes:  Sizes(maxWidth),
	}
}
