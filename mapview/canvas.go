package mapview

import (
	"sync"

	"listing-advisor/models"
)

// Canvas is an in-memory Map. It is safe for concurrent use so the HTTP
// server can render it while a session draws on it.
type Canvas struct {
	mu      sync.RWMutex
	state   State
	version uint64
}

// NewCanvas creates a canvas centred on center at zoom.
func NewCanvas(center models.GeoPoint, zoom int) *Canvas {
	return &Canvas{state: State{Center: center, Zoom: zoom}}
}

// SetCenter moves the view to lat, lon.
func (c *Canvas) SetCenter(lat, lon float64) {
	c.mutate(func(s *State) { s.Center = models.GeoPoint{Lat: lat, Lon: lon} })
}

// SetZoom sets the zoom level.
func (c *Canvas) SetZoom(level int) {
	c.mutate(func(s *State) { s.Zoom = level })
}

// ClearMarkers removes every marker.
func (c *Canvas) ClearMarkers() {
	c.mutate(func(s *State) { s.Markers = nil })
}

// ClearShapes removes every drawn path.
func (c *Canvas) ClearShapes() {
	c.mutate(func(s *State) { s.Paths = nil })
}

// AddMarker places a labelled marker.
func (c *Canvas) AddMarker(lat, lon float64, label string) {
	c.mutate(func(s *State) { s.Markers = append(s.Markers, Marker{Lat: lat, Lon: lon, Label: label}) })
}

// DrawPolyline records a path. points is copied.
func (c *Canvas) DrawPolyline(points []models.GeoPoint, color string, width int) {
	pts := append([]models.GeoPoint(nil), points...)
	c.mutate(func(s *State) { s.Paths = append(s.Paths, Path{Points: pts, Color: color, Width: width}) })
}

// State returns a deep copy of the current map state.
func (c *Canvas) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := State{Center: c.state.Center, Zoom: c.state.Zoom}
	s.Markers = append([]Marker(nil), c.state.Markers...)
	s.Paths = make([]Path, len(c.state.Paths))
	for i, p := range c.state.Paths {
		s.Paths[i] = Path{Points: append([]models.GeoPoint(nil), p.Points...), Color: p.Color, Width: p.Width}
	}
	return s
}

// Version increments on every drawing command, including ones that leave
// the state as it was.
func (c *Canvas) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Canvas) mutate(fn func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.version++
}
