package sink

import (
	"encoding/json"

	"github.com/cabinext/cabinext/pkg/render"
)

// RenderJSON writes the scene as indented JSON.
func RenderJSON(s render.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReadJSON parses a scene written by [RenderJSON].
func ReadJSON(data []byte) (render.Scene, error) {
	var s render.Scene
	err := json.Unmarshal(data, &s)
	return s, err
}
