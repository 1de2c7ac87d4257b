// Package mapview turns lookup, recommendation and evaluation results into
// map commands, and records those commands on a canvas that can be rendered
// to HTML, captured as an image or exported as shapefiles.
package mapview

import "listing-advisor/models"

// Map is the drawing surface results are presented on.
type Map interface {
	SetCenter(lat, lon float64)
	SetZoom(level int)
	ClearMarkers()
	ClearShapes()
	AddMarker(lat, lon float64, label string)
	DrawPolyline(points []models.GeoPoint, color string, width int)
}

// StateSource is implemented by maps that can report what is drawn on them.
type StateSource interface {
	State() State
}

// Marker is a labelled point.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// Path is a drawn polyline.
type Path struct {
	Points []models.GeoPoint `json:"points"`
	Color  string            `json:"color"`
	Width  int               `json:"width"`
}

// State is a copy of everything on the map.
type State struct {
	Center  models.GeoPoint `json:"center"`
	Zoom    int             `json:"zoom"`
	Markers []Marker        `json:"markers"`
	Paths   []Path          `json:"paths"`
}
