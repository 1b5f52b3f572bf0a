package render

import (
	"fmt"

	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/room"
)

// Options controls what [Build] puts into a scene.
type Options struct {
	Title        string
	Measurements bool    // wall and module dimension annotations
	Labels       bool    // cabinet names
	GridUnits    float64 // grid spacing in length units; 0 disables the grid
	Style        *Style  // nil means DefaultStyle()
}

// cornerBase is the base corner cabinet whose label is nudged away from the
// adjoining wall.
const cornerBase = "BC36"

// Build converts a composed room into a scene. Coordinates are shifted by
// the layout's extent origin so the whole scene is non-negative.
func Build(l *room.Layout, opts Options) Scene {
	st := DefaultStyle()
	if opts.Style != nil {
		st = *opts.Style
	}
	b := builder{
		style: st,
		dx:    l.Extent.OriginX,
		dy:    l.Extent.OriginY,
		scene: Scene{
			Title:      opts.Title,
			Width:      l.Extent.Width,
			Height:     l.Extent.Height,
			Background: st.Background,
			Rects:      []Rect{},
			Lines:      []Line{},
			Texts:      []Text{},
		},
	}

	if opts.GridUnits > 0 {
		b.grid(l, opts.GridUnits)
	}
	for _, w := range l.Walls() {
		b.wall(w, opts)
	}

	b.scene.Sort()
	return b.scene
}

type builder struct {
	style  Style
	dx, dy float64
	scene  Scene
}

func (b *builder) wall(w *room.WallPlan, opts Options) {
	o := w.Wall.Orientation
	b.modules(o, KindBase, w.Bases, opts.Labels)
	b.modules(o, KindUpper, w.Uppers, opts.Labels)

	r := w.Rect.Translate(b.dx, b.dy)
	b.scene.Rects = append(b.scene.Rects, Rect{
		ID:   fmt.Sprintf("%s-wall", o),
		Kind: KindWall,
		X:    r.X, Y: r.Y, Width: r.Width, Height: r.Height,
		Fill: b.style.WallFill,
	})

	if !opts.Measurements {
		return
	}
	b.annotation(w.Measurement)
	for _, a := range w.BaseMeasurements {
		b.annotation(a)
	}
	for _, a := range w.UpperMeasurements {
		b.annotation(a)
	}
}

func (b *builder) modules(o layout.Orientation, kind Kind, run []layout.PlacedModule, labels bool) {
	stroke := b.style.BaseStroke
	if kind == KindUpper {
		stroke = b.style.UpperStroke
	}
	for _, p := range run {
		r := p.Rect.Translate(b.dx, b.dy)
		b.scene.Rects = append(b.scene.Rects, Rect{
			ID:   fmt.Sprintf("%s-%s-%d", o, kind, p.Index),
			Kind: kind,
			X:    r.X, Y: r.Y, Width: r.Width, Height: r.Height,
			Fill:        b.style.CabinetFill,
			Stroke:      stroke,
			StrokeWidth: b.style.CabinetStrokePx,
		})
		if labels && !p.Module.IsFiller() {
			b.scene.Texts = append(b.scene.Texts, cabinetLabel(o, p.Module, r, b.style))
		}
	}
}

// cabinetLabel positions a module name inside its rectangle. The text is
// centred on a box of the rectangle's width starting at the computed x.
func cabinetLabel(o layout.Orientation, m layout.Module, r layout.Rect, st Style) Text {
	size := st.CabinetTextSize
	x, y := r.X, r.CenterY()

	switch {
	case !m.IsBase:
		// uppers keep the default
	case m.Name == cornerBase && o == layout.Left:
		x, y = r.X+r.Width/3, r.Y+r.Height/1.5+size
	case m.Name == cornerBase && o == layout.Right:
		x, y = r.X-r.Width/3, r.Y+r.Height/1.5+size
	case o == layout.Left:
		x = r.X + r.Width/4
	case o == layout.Top:
		y = r.Y + r.Height/1.75 + size
	case o == layout.Right:
		x = r.X - r.Width/4
	}

	return Text{
		Kind:   KindCabinetLabel,
		Text:   m.Name,
		X:      x + r.Width/2,
		Y:      y,
		Size:   size,
		Color:  st.TextColor,
		VAlign: AlignTop,
	}
}

func (b *builder) annotation(a layout.Annotation) {
	a = a.Translate(b.dx, b.dy)
	b.scene.Lines = append(b.scene.Lines,
		b.segment(KindMainLine, a.MainLine, b.style.LineColor, false),
		b.segment(KindLeader, a.LeaderA, b.style.LeaderColor, true),
		b.segment(KindLeader, a.LeaderB, b.style.LeaderColor, true),
	)
	b.scene.Texts = append(b.scene.Texts, Text{
		Kind:   KindMeasureLabel,
		Text:   a.Label.Text,
		X:      a.Label.X + a.Label.Width/2,
		Y:      a.Label.Y + a.Label.Height/2,
		Size:   a.Label.Height,
		Color:  b.style.TextColor,
		VAlign: AlignMiddle,
	})
}

func (b *builder) segment(kind Kind, s layout.Segment, color string, dashed bool) Line {
	x2, y2 := s.End()
	return Line{
		Kind: kind,
		X1:   s.X, Y1: s.Y, X2: x2, Y2: y2,
		Stroke:      color,
		StrokeWidth: b.style.LineStrokePx,
		Dashed:      dashed,
	}
}

// grid draws lines every step units over the room floor, from the inside
// corner to the top wall's length and the longer side wall.
func (b *builder) grid(l *room.Layout, step float64) {
	stepPx := l.Scale.ToPx(step)
	width := l.Top.Wall.LengthPx()
	height := max(l.Left.Wall.LengthPx(), l.Right.Wall.LengthPx())

	line := func(x1, y1, x2, y2 float64) {
		b.scene.Lines = append(b.scene.Lines, Line{
			Kind: KindGrid,
			X1:   x1 + b.dx, Y1: y1 + b.dy, X2: x2 + b.dx, Y2: y2 + b.dy,
			Stroke:      b.style.GridColor,
			StrokeWidth: b.style.GridStrokePx,
		})
	}
	for x := 0.0; x <= width; x += stepPx {
		line(x, 0, x, height)
	}
	for y := 0.0; y <= height; y += stepPx {
		line(0, y, width, y)
	}
}
