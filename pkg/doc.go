// Package pkg contains the CabineXt libraries.
//
// # Overview
//
// CabineXt lays out cabinet modules along the three walls of a room (left,
// top and right, seen from above) and annotates every wall and cabinet with
// its dimension. The libraries are organized in layers:
//
//  1. Engine: [units], [layout] and [room] compute rectangles and
//     annotations. They are pure and synchronous.
//  2. View: [render] turns a composed room into a scene; [render/sink]
//     writes it as SVG, JSON or PNG.
//  3. Data: [catalog] fetches module lists from the catalog service,
//     [cache] and [httputil] keep responses and artifacts around.
//  4. Orchestration: [pipeline] runs fetch → compose → render, and
//     [config] reads room files.
//
// # Data Flow
//
//	catalog service (generate_wall, per wall)
//	         ↓
//	    [catalog] module lists, validated
//	         ↓
//	    [room] Compose → [layout] PlaceWall + Measure
//	         ↓
//	    [render] scene → [render/sink] SVG / JSON / PNG
//
// # Quick Start
//
//	cfg := layout.DefaultConfig()
//	wall := layout.Wall{Orientation: layout.Top, LengthUnits: 120, Scale: 5}
//	wl, err := layout.PlaceWall(cfg, wall, bases, uppers)
//	a, err := layout.Measure(cfg, wall.Scale, wl.Rect, layout.Top, layout.ClassWall)
//	fmt.Println(a.Label.Text) // 120 in
//
// Errors carry machine-readable codes from [errors]; the command-line tool
// lives in cmd/cabinext.
package pkg
