package imaging

import (
	"fmt"
	"strings"

	"github.com/ironsheep/shape-count/internal/bitmap"
)

// Region is a rectangle in grid coordinates; (X1,Y1) inclusive, (X2,Y2) exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Crop extracts a rectangular region from a grid
func Crop(g *bitmap.Grid, r Region) (*bitmap.Grid, error) {
	if g == nil {
		return nil, fmt.Errorf("crop: nil grid")
	}
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > g.Width() || r.Y2 > g.Height() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, g.Width(), g.Height())
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	return g.Crop(r.X1, r.Y1, r.X2, r.Y2)
}

// NamedRegion resolves a region name against a width x height grid.
//
// Supported names: top-left, top-right, bottom-left, bottom-right,
// top-half, bottom-half, left-half, right-half, center.
func NamedRegion(name string, w, h int) (Region, error) {
	midX := w / 2
	midY := h / 2

	switch strings.ToLower(name) {
	case "top-left":
		return Region{0, 0, midX, midY}, nil
	case "top-right":
		return Region{midX, 0, w, midY}, nil
	case "bottom-left":
		return Region{0, midY, midX, h}, nil
	case "bottom-right":
		return Region{midX, midY, w, h}, nil
	case "top-half":
		return Region{0, 0, w, midY}, nil
	case "bottom-half":
		return Region{0, midY, w, h}, nil
	case "left-half":
		return Region{0, 0, midX, h}, nil
	case "right-half":
		return Region{midX, 0, w, h}, nil
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		return Region{qW, qH, w - qW, h - qH}, nil
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}
}

// CropQuadrant extracts a named region from a grid
func CropQuadrant(g *bitmap.Grid, name string) (*bitmap.Grid, error) {
	if g == nil {
		return nil, fmt.Errorf("crop: nil grid")
	}
	r, err := NamedRegion(name, g.Width(), g.Height())
	if err != nil {
		return nil, err
	}
	return Crop(g, r)
}
