// Package sink writes a [render.Scene] in an output format.
//
//   - SVG: vector output with CSS classes per item kind ([RenderSVG])
//   - JSON: the scene itself, for external viewers ([RenderJSON])
//   - PNG: rasterized in-process with fogleman/gg ([RenderPNG])
//
// [Render] dispatches on a format name and is what the pipeline and HTTP
// server use:
//
//	data, err := sink.Render(scene, sink.FormatSVG)
package sink

import (
	"fmt"
	"strings"

	"github.com/cabinext/cabinext/pkg/render"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
)

// Formats lists the supported formats.
var Formats = []string{FormatSVG, FormatJSON, FormatPNG}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatSVG, FormatJSON, FormatPNG:
		return true
	}
	return false
}

// Render writes s in format with default options.
func Render(s render.Scene, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatSVG:
		return RenderSVG(s), nil
	case FormatJSON:
		return RenderJSON(s)
	case FormatPNG:
		return RenderPNG(s)
	}
	return nil, fmt.Errorf("unsupported format %q (must be svg, json or png)", format)
}
