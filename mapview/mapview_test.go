package mapview

import (
	"bytes"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"

	"listing-advisor/models"
)

var home = models.GeoPoint{Lat: -37.8136, Lon: 144.9631}

func intp(n int) *int { return &n }

func listing(id int, suburb string, price float64, coords ...float64) *models.Listing {
	l := &models.Listing{ID: id, Suburb: suburb, Price: price, Rooms: intp(3), Garage: intp(1)}
	if len(coords) == 2 {
		lat, lon := coords[0], coords[1]
		l.Latitude, l.Longitude = &lat, &lon
	}
	return l
}

func newFixture() (*Canvas, *Presenter) {
	c := NewCanvas(home, 10)
	return c, NewPresenter(c, home, 10, 14)
}

func TestShowListingWithCoordinates(t *testing.T) {
	c, p := newFixture()
	c.AddMarker(1, 1, "stale")

	if !p.ShowListing(listing(5, "X", 1, -37.7, 145.0)) {
		t.Fatal("ShowListing should report a move")
	}
	s := c.State()
	if s.Center != (models.GeoPoint{Lat: -37.7, Lon: 145.0}) || s.Zoom != 14 {
		t.Errorf("view: got %+v zoom %d", s.Center, s.Zoom)
	}
	if len(s.Markers) != 1 || s.Markers[0].Label != "Listing 5" {
		t.Errorf("markers: got %+v", s.Markers)
	}
}

func TestShowListingWithoutCoordinatesLeavesMap(t *testing.T) {
	c, p := newFixture()
	before := c.Version()
	if p.ShowListing(listing(5, "X", 1)) {
		t.Error("ShowListing should not move without coordinates")
	}
	if c.Version() != before {
		t.Error("map should be untouched")
	}
}

func TestShowRecommendation(t *testing.T) {
	c, p := newFixture()
	c.DrawPolyline([]models.GeoPoint{{Lat: 0, Lon: 0}}, "#000", 1)

	rec := &models.Recommendation{
		Best: listing(1, "X", 480000, -37.80, 144.90),
		Peers: []*models.Listing{
			listing(2, "X", 300000, -37.82, 144.94),
			listing(3, "X", 700000),
		},
	}
	p.ShowRecommendation(rec)

	s := c.State()
	if len(s.Markers) != 1 || !strings.Contains(s.Markers[0].Label, "#1") {
		t.Errorf("markers: got %+v", s.Markers)
	}
	if len(s.Paths) != 1 {
		t.Fatalf("paths: got %d, want 1 (stale path cleared, peer without coords skipped)", len(s.Paths))
	}
	path := s.Paths[0]
	if len(path.Points) != PeerSegments+1 || path.Color != PeerColor || path.Width != PeerWidth {
		t.Errorf("peer outline: %d points, color %s, width %d", len(path.Points), path.Color, path.Width)
	}
	if s.Zoom != 14 {
		t.Errorf("zoom: got %d", s.Zoom)
	}
}

func TestShowRecommendationBestWithoutCoordinates(t *testing.T) {
	c, p := newFixture()
	p.ShowRecommendation(&models.Recommendation{Best: listing(1, "X", 1)})
	s := c.State()
	if len(s.Markers) != 0 || s.Center != home {
		t.Errorf("expected no marker and unchanged center, got %+v", s)
	}
}

func TestShowComparables(t *testing.T) {
	c, p := newFixture()
	p.ShowComparables([]*models.Listing{
		listing(1, "X", 1234.56, -37.0, 145.0),
		listing(2, "X", 2000, -38.0, 144.0),
		listing(3, "X", 3000),
	})

	s := c.State()
	if len(s.Markers) != 2 {
		t.Fatalf("markers: got %d, want 2", len(s.Markers))
	}
	if s.Markers[0].Label != "Listing #1: R$ 1.234,56" {
		t.Errorf("label: got %q", s.Markers[0].Label)
	}
	if math.Abs(s.Center.Lat+37.5) > 1e-9 || math.Abs(s.Center.Lon-144.5) > 1e-9 {
		t.Errorf("center: got %+v, want centroid", s.Center)
	}
	if s.Zoom != 14 {
		t.Errorf("zoom: got %d", s.Zoom)
	}
}

func TestShowComparablesEmptyClearsMarkers(t *testing.T) {
	c, p := newFixture()
	c.AddMarker(1, 1, "old")
	p.ShowComparables(nil)
	s := c.State()
	if len(s.Markers) != 0 {
		t.Errorf("markers should be cleared, got %d", len(s.Markers))
	}
	if s.Center != home || s.Zoom != 10 {
		t.Errorf("view should not move: %+v zoom %d", s.Center, s.Zoom)
	}
}

func TestReset(t *testing.T) {
	c, p := newFixture()
	c.SetCenter(1, 2)
	c.SetZoom(18)
	c.AddMarker(1, 2, "m")
	c.DrawPolyline(nil, "#fff", 1)

	p.Reset()
	s := c.State()
	if s.Center != home || s.Zoom != 10 || len(s.Markers) != 0 || len(s.Paths) != 0 {
		t.Errorf("Reset left %+v", s)
	}
}

func TestCircleIsClosed(t *testing.T) {
	center := models.GeoPoint{Lat: -37.8, Lon: 144.9}
	pts := Circle(center, PeerRadius, PeerSegments)
	if len(pts) != 37 {
		t.Fatalf("points: got %d, want 37", len(pts))
	}
	if pts[0] != pts[36] {
		t.Error("circle should be closed")
	}
	for i, p := range pts {
		d := math.Hypot(p.Lat-center.Lat, p.Lon-center.Lon)
		if math.Abs(d-PeerRadius) > 1e-12 {
			t.Errorf("point %d at distance %v", i, d)
		}
	}
}

func TestCentroidSkipsMissingCoordinates(t *testing.T) {
	if _, ok := Centroid([]*models.Listing{listing(1, "X", 1)}); ok {
		t.Error("expected no centroid")
	}
	got, ok := Centroid([]*models.Listing{listing(1, "X", 1, 10, 20), listing(2, "X", 1), listing(3, "X", 1, 20, 40)})
	if !ok || got != (models.GeoPoint{Lat: 15, Lon: 30}) {
		t.Errorf("Centroid: got %+v, %v", got, ok)
	}
}

func TestCanvasStateIsACopy(t *testing.T) {
	c := NewCanvas(home, 10)
	c.AddMarker(1, 2, "a")
	s := c.State()
	s.Markers[0].Label = "changed"
	if c.State().Markers[0].Label != "a" {
		t.Error("State should return a copy")
	}
}

func TestRenderHTML(t *testing.T) {
	c := NewCanvas(home, 10)
	c.AddMarker(-37.8, 144.9, "Listing #1: <b>R$ 1,00</b>")
	var buf bytes.Buffer
	if err := RenderHTML(&buf, "Test map", c.State()); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Test map</title>") {
		t.Error("missing title")
	}
	if strings.Contains(out, "<b>R$") {
		t.Error("marker label should be escaped inside the script")
	}
	if !strings.Contains(out, "leaflet") {
		t.Error("missing leaflet include")
	}
}

func TestExportShapefiles(t *testing.T) {
	c, p := newFixture()
	p.ShowRecommendation(&models.Recommendation{
		Best:  listing(1, "X", 1, -37.80, 144.90),
		Peers: []*models.Listing{listing(2, "X", 1, -37.82, 144.94)},
	})

	base := filepath.Join(t.TempDir(), "out", "recommend")
	written, err := ExportShapefiles(c.State(), base)
	if err != nil {
		t.Fatalf("ExportShapefiles: %v", err)
	}
	want := []string{base + "_markers.shp", base + "_paths.shp"}
	if !reflect.DeepEqual(written, want) {
		t.Fatalf("written: got %v, want %v", written, want)
	}

	r, err := shp.Open(want[0])
	if err != nil {
		t.Fatalf("open markers: %v", err)
	}
	defer r.Close()
	count := 0
	for r.Next() {
		_, shape := r.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			t.Fatalf("expected point, got %T", shape)
		}
		if pt.X != 144.90 || pt.Y != -37.80 {
			t.Errorf("point: got (%v, %v)", pt.X, pt.Y)
		}
		count++
	}
	if count != 1 {
		t.Errorf("markers: got %d, want 1", count)
	}

	pr, err := shp.Open(want[1])
	if err != nil {
		t.Fatalf("open paths: %v", err)
	}
	defer pr.Close()
	for pr.Next() {
		_, shape := pr.Shape()
		line, ok := shape.(*shp.PolyLine)
		if !ok {
			t.Fatalf("expected polyline, got %T", shape)
		}
		if len(line.Points) != PeerSegments+1 {
			t.Errorf("polyline points: got %d", len(line.Points))
		}
	}
}

func TestExportShapefilesEmptyState(t *testing.T) {
	written, err := ExportShapefiles(State{}, filepath.Join(t.TempDir(), "empty"))
	if err != nil {
		t.Fatalf("ExportShapefiles: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("expected nothing written, got %v", written)
	}
}
