package render

import (
	"fmt"
	"slices"
	"strings"
)

// Kind classifies scene items. Sinks use it for CSS classes and JSON output.
type Kind string

const (
	KindGrid         Kind = "grid"
	KindBase         Kind = "base"
	KindUpper        Kind = "upper"
	KindWall         Kind = "wall"
	KindMainLine     Kind = "measure-line"
	KindLeader       Kind = "leader"
	KindMeasureLabel Kind = "measure-label"
	KindCabinetLabel Kind = "cabinet-label"
)

// Z-order of each kind. Higher values are drawn later.
var zOrder = map[Kind]int{
	KindGrid:         0,
	KindBase:         1,
	KindUpper:        2,
	KindWall:         3,
	KindMainLine:     4,
	KindLeader:       4,
	KindCabinetLabel: 5,
	KindMeasureLabel: 5,
}

// Z returns the drawing order of k.
func (k Kind) Z() int { return zOrder[k] }

// Rect is a filled or outlined rectangle.
type Rect struct {
	ID          string  `json:"id,omitempty"`
	Kind        Kind    `json:"kind"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
}

// Line is a straight segment from (X1, Y1) to (X2, Y2).
type Line struct {
	Kind        Kind    `json:"kind"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	X2          float64 `json:"x2"`
	Y2          float64 `json:"y2"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
	Dashed      bool    `json:"dashed,omitempty"`
}

// VAlign places text vertically relative to its Y coordinate.
type VAlign string

const (
	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "middle"
)

// Text is a label horizontally centred on X.
type Text struct {
	Kind   Kind    `json:"kind"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	Color  string  `json:"color"`
	VAlign VAlign  `json:"valign"`
}

// Scene is everything a sink draws. Rects, Lines and Texts are each sorted
// by z-order; sinks draw Rects, then Lines, then Texts.
type Scene struct {
	Title      string  `json:"title,omitempty"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background"`
	Rects      []Rect  `json:"rects"`
	Lines      []Line  `json:"lines"`
	Texts      []Text  `json:"texts"`
}

// Sort orders every list by z-order. The sort is stable, so items of the
// same kind keep their insertion order.
func (s *Scene) Sort() {
	slices.SortStableFunc(s.Rects, func(a, b Rect) int { return a.Kind.Z() - b.Kind.Z() })
	slices.SortStableFunc(s.Lines, func(a, b Line) int { return a.Kind.Z() - b.Kind.Z() })
	slices.SortStableFunc(s.Texts, func(a, b Text) int { return a.Kind.Z() - b.Kind.Z() })
}

// Count returns the number of items of kind k.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, r := range s.Rects {
		if r.Kind == k {
			n++
		}
	}
	for _, l := range s.Lines {
		if l.Kind == k {
			n++
		}
	}
	for _, t := range s.Texts {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// String summarizes the scene for logs.
func (s *Scene) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scene %gx%g:", s.Width, s.Height)
	for _, k := range []Kind{KindBase, KindUpper, KindWall, KindMainLine, KindMeasureLabel, KindCabinetLabel} {
		if n := s.Count(k); n > 0 {
			fmt.Fprintf(&b, " %s=%d", k, n)
		}
	}
	return b.String()
}
