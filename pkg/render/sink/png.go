package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/cabinext/cabinext/pkg/fonts"
	"github.com/cabinext/cabinext/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 1).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// namedColors maps the CSS names used by render.DefaultStyle to hex.
var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
	"red":   "#ff0000",
	"grey":  "#808080",
	"gray":  "#808080",
}

// RenderPNG rasterizes the scene.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.Scale(r.scale, r.scale)

	if s.Background != "" {
		setColor(dc, s.Background)
		dc.Clear()
	}

	for _, rect := range s.Rects {
		dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
		setColor(dc, rect.Fill)
		if rect.Stroke == "" {
			dc.Fill()
			continue
		}
		dc.FillPreserve()
		setColor(dc, rect.Stroke)
		dc.SetLineWidth(rect.StrokeWidth)
		dc.Stroke()
	}

	for _, l := range s.Lines {
		if l.Dashed {
			dc.SetDash(4, 3)
		} else {
			dc.SetDash()
		}
		setColor(dc, l.Stroke)
		dc.SetLineWidth(l.StrokeWidth)
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}
	dc.SetDash()

	faces := map[float64]font.Face{}
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()
	for _, t := range s.Texts {
		face, ok := faces[t.Size]
		if !ok {
			var err error
			if face, err = fonts.Face(t.Size); err != nil {
				return nil, err
			}
			faces[t.Size] = face
		}
		dc.SetFontFace(face)
		setColor(dc, t.Color)
		ay := 1.0
		if t.VAlign == render.AlignMiddle {
			ay = 0.5
		}
		dc.DrawStringAnchored(t.Text, t.X, t.Y, 0.5, ay)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, c string) {
	if hex, ok := namedColors[c]; ok {
		c = hex
	}
	dc.SetHexColor(c)
}
