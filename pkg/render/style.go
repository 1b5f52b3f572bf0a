package render

// Style holds colors and stroke widths. Colors are CSS color strings that
// both the SVG and PNG sinks understand (named colors or #rrggbb).
type Style struct {
	Background      string
	BaseStroke      string
	UpperStroke     string
	CabinetFill     string
	WallFill        string
	LineColor       string
	LeaderColor     string
	TextColor       string
	GridColor       string
	CabinetStrokePx float64
	LineStrokePx    float64
	GridStrokePx    float64
	CabinetTextSize float64
}

// DefaultStyle draws bases in red and uppers in black on white.
func DefaultStyle() Style {
	return Style{
		Background:      "white",
		BaseStroke:      "red",
		UpperStroke:     "black",
		CabinetFill:     "white",
		WallFill:        "black",
		LineColor:       "black",
		LeaderColor:     "#888888",
		TextColor:       "black",
		GridColor:       "#cccccc",
		CabinetStrokePx: 2,
		LineStrokePx:    1,
		GridStrokePx:    0.5,
		CabinetTextSize: 15,
	}
}
