package catalog

import (
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/room"
)

// WallRequest is the generate_wall request body.
type WallRequest struct {
	Width       float64 `json:"width"`
	Orientation string  `json:"orientation"`
}

// WallResponse is the generate_wall response body.
type WallResponse struct {
	Cabinets *WallCabinets `json:"cabinets"`
}

// WallCabinets holds the ordered module lists of one wall.
type WallCabinets struct {
	Bases  []layout.Module `json:"bases"`
	Uppers []layout.Module `json:"uppers"`
}

func (r WallResponse) validate() error {
	if r.Cabinets == nil {
		return errors.New(errors.ErrCodeInvalidResponse, "response has no cabinets")
	}
	if err := validateModules("bases", r.Cabinets.Bases); err != nil {
		return err
	}
	return validateModules("uppers", r.Cabinets.Uppers)
}

// modules returns the lists with IsBase set from the list each module came
// in, so downstream code can rely on the flag.
func (r WallResponse) modules() room.WallModules {
	if r.Cabinets == nil {
		return room.WallModules{Bases: []layout.Module{}, Uppers: []layout.Module{}}
	}
	out := room.WallModules{
		Bases:  make([]layout.Module, len(r.Cabinets.Bases)),
		Uppers: make([]layout.Module, len(r.Cabinets.Uppers)),
	}
	for i, m := range r.Cabinets.Bases {
		m.IsBase = true
		out.Bases[i] = m
	}
	for i, m := range r.Cabinets.Uppers {
		m.IsBase = false
		out.Uppers[i] = m
	}
	return out
}

func validateModules(list string, mods []layout.Module) error {
	for i, m := range mods {
		if err := errors.ValidateModuleName(m.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidResponse, err, "%s[%d]", list, i)
		}
		if err := m.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidResponse, err, "%s[%d] %s", list, i, m.Name)
		}
	}
	return nil
}

// CabinetSpec describes an ad-hoc cabinet for place_cabinet.
type CabinetSpec struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// PlaceRequest is the place_cabinet request body.
type PlaceRequest struct {
	Cabinet CabinetSpec `json:"cabinet"`
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
}

func (r PlaceRequest) validate() error {
	if err := errors.ValidateModuleName(r.Cabinet.Name); err != nil {
		return err
	}
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"cabinet width", r.Cabinet.Width},
		{"cabinet height", r.Cabinet.Height},
		{"cabinet depth", r.Cabinet.Depth},
	} {
		if err := errors.ValidatePositive(d.name, d.v); err != nil {
			return err
		}
	}
	if err := errors.ValidateNonNegative("x", r.X); err != nil {
		return err
	}
	return errors.ValidateNonNegative("y", r.Y)
}

// PlaceResponse is the place_cabinet response body.
type PlaceResponse struct {
	PlacedCabinet *PlacedCabinet `json:"placed_cabinet"`
}

// PlacedCabinet is the service's answer to a placement request.
type PlacedCabinet struct {
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

func (r PlaceResponse) validate() error {
	if r.PlacedCabinet == nil {
		return errors.New(errors.ErrCodeInvalidResponse, "response has no placed_cabinet")
	}
	if err := errors.ValidatePositive("placed width", r.PlacedCabinet.Width); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidResponse, err, "placed_cabinet")
	}
	if err := errors.ValidatePositive("placed height", r.PlacedCabinet.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidResponse, err, "placed_cabinet")
	}
	return nil
}
