package layout_test

import (
	"fmt"

	"github.com/cabinext/cabinext/pkg/layout"
)

func ExamplePlaceWall() {
	wall := layout.Wall{Orientation: layout.Top, LengthUnits: 120, Scale: 5}
	bases := []layout.Module{
		{Name: "B36", Width: 36, Depth: 24, IsBase: true},
		{Name: "B24", Width: 24, Depth: 24, IsBase: true},
	}

	wl, err := layout.PlaceWall(layout.DefaultConfig(), wall, bases, nil)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("wall: %+v\n", wl.Rect)
	for _, p := range wl.Bases {
		fmt.Printf("%s: %+v\n", p.Module.Name, p.Rect)
	}
	// Output:
	// wall: {X:0 Y:0 Width:600 Height:5}
	// B36: {X:180 Y:0 Width:180 Height:120}
	// B24: {X:360 Y:0 Width:120 Height:120}
}

func ExampleMeasure() {
	wall := layout.Rect{Width: 600, Height: 5}
	a, err := layout.Measure(layout.DefaultConfig(), 5, wall, layout.Top, layout.ClassWall)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("main line y:", a.MainLine.Y)
	fmt.Println("label:", a.Label.Text)
	// Output:
	// main line y: -200
	// label: 120 in
}
