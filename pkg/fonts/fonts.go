// Package fonts provides the typeface used for cabinet and measurement
// labels.
//
// The PNG sink rasterizes text with the Go Regular font, which ships inside
// golang.org/x/image and needs no files on disk. The SVG sink names the same
// family first and falls back to common sans-serif fonts.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name for the label font.
const FontFamily = "Go"

// FallbackFontFamily is the font-family list written into SVG output.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font. The result is cached after
// first use.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a face of the label font at size points (72 DPI, so points
// equal pixels).
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}
