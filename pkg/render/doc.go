// Package render turns a composed room into a flat, read-only scene.
//
// A [Scene] is a list of rectangles, lines and text items in canvas
// coordinates, sorted by z-order. Sinks in the [sink] subpackage write a
// scene as SVG, JSON or PNG. Nothing in a scene refers back to the engine,
// so sinks never recompute geometry.
//
// Drawing rules:
//
//   - Optional grid lines first, then bases (z 1, red outline), uppers
//     (z 2, black outline) and walls (z 3, solid black)
//   - Measurement lines and labels are drawn last
//   - Cabinet labels show the module name; filler modules (names starting
//     with "F") are unlabeled
//
//	l, _ := room.Compose(cfg, left, top, right, modules)
//	scene := render.Build(l, render.Options{Measurements: true, Labels: true})
//	svg := sink.RenderSVG(scene)
//
// [sink]: github.com/cabinext/cabinext/pkg/render/sink
package render
