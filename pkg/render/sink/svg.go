package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/cabinext/cabinext/pkg/fonts"
	"github.com/cabinext/cabinext/pkg/render"
)

const svgCSS = `
    .base, .upper { shape-rendering: crispEdges; }
    .leader { stroke-dasharray: 4 3; }
    text { font-family: %s; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background bool
}

// WithoutBackground leaves the canvas transparent.
func WithoutBackground() SVGOption { return func(r *svgRenderer) { r.background = false } }

// RenderSVG writes the scene as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{background: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if s.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.Title))
	}
	fmt.Fprintf(&buf, "  <style>"+svgCSS+"\n  </style>\n", fonts.FallbackFontFamily)

	if r.background && s.Background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			s.Width, s.Height, s.Background)
	}
	for _, rect := range s.Rects {
		renderRect(&buf, rect)
	}
	for _, l := range s.Lines {
		renderLine(&buf, l)
	}
	for _, t := range s.Texts {
		renderText(&buf, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRect(buf *bytes.Buffer, r render.Rect) {
	fmt.Fprintf(buf, `  <rect`)
	if r.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, escapeXML(r.ID))
	}
	fmt.Fprintf(buf, ` class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`,
		r.Kind, r.X, r.Y, r.Width, r.Height, r.Fill)
	if r.Stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.1f"`, r.Stroke, r.StrokeWidth)
	}
	buf.WriteString("/>\n")
}

func renderLine(buf *bytes.Buffer, l render.Line) {
	fmt.Fprintf(buf, `  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		l.Kind, l.X1, l.Y1, l.X2, l.Y2, l.Stroke, l.StrokeWidth)
}

func renderText(buf *bytes.Buffer, t render.Text) {
	baseline := "hanging"
	if t.VAlign == render.AlignMiddle {
		baseline = "central"
	}
	fmt.Fprintf(buf, `  <text class="%s" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="%s">%s</text>`+"\n",
		t.Kind, t.X, t.Y, t.Size, t.Color, baseline, escapeXML(t.Text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
