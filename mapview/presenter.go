package mapview

import (
	"fmt"

	"listing-advisor/models"
	"listing-advisor/services"
)

// Peer overlay style: a ~120 m outline around every other listing in the
// recommended suburb.
const (
	PeerRadius   = 0.0011
	PeerSegments = 36
	PeerColor    = "#ff8888"
	PeerWidth    = 2
)

// Presenter issues the map commands for each kind of result.
type Presenter struct {
	m         Map
	home      models.GeoPoint
	homeZoom  int
	focusZoom int
}

// NewPresenter creates a Presenter drawing on m. Reset returns to home at
// homeZoom; focused views use focusZoom.
func NewPresenter(m Map, home models.GeoPoint, homeZoom, focusZoom int) *Presenter {
	return &Presenter{m: m, home: home, homeZoom: homeZoom, focusZoom: focusZoom}
}

// State returns a copy of the map contents when the map can report them.
func (p *Presenter) State() (State, bool) {
	src, ok := p.m.(StateSource)
	if !ok {
		return State{}, false
	}
	return src.State(), true
}

// ShowListing focuses the map on l with a single marker. A listing without
// coordinates leaves the map untouched; the result reports whether it moved.
func (p *Presenter) ShowListing(l *models.Listing) bool {
	if !l.HasCoordinates() {
		return false
	}
	p.m.SetCenter(*l.Latitude, *l.Longitude)
	p.m.SetZoom(p.focusZoom)
	p.m.ClearMarkers()
	p.m.AddMarker(*l.Latitude, *l.Longitude, services.SelectionLabel(l.ID))
	return true
}

// ShowRecommendation marks the recommended listing and outlines its peers.
func (p *Presenter) ShowRecommendation(rec *models.Recommendation) {
	p.m.ClearMarkers()
	p.m.ClearShapes()

	if best := rec.Best; best.HasCoordinates() {
		p.m.SetCenter(*best.Latitude, *best.Longitude)
		p.m.SetZoom(p.focusZoom)
		p.m.AddMarker(*best.Latitude, *best.Longitude, fmt.Sprintf("Recommended listing (#%d)", best.ID))
	}

	for _, peer := range rec.Peers {
		if !peer.HasCoordinates() {
			continue
		}
		p.m.DrawPolyline(Circle(peer.Point(), PeerRadius, PeerSegments), PeerColor, PeerWidth)
	}
}

// ShowComparables marks every comparable listing with its ordinal and price
// and centres on their centroid. An empty set only clears the markers.
func (p *Presenter) ShowComparables(listings []*models.Listing) {
	p.m.ClearMarkers()
	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		p.m.AddMarker(*l.Latitude, *l.Longitude,
			fmt.Sprintf("Listing #%d: %s", l.ID, services.FormatCurrency(l.Price)))
	}

	if c, ok := Centroid(listings); ok {
		p.m.SetCenter(c.Lat, c.Lon)
		p.m.SetZoom(p.focusZoom)
	}
}

// Reset clears everything and returns to the default view.
func (p *Presenter) Reset() {
	p.m.ClearMarkers()
	p.m.ClearShapes()
	p.m.SetCenter(p.home.Lat, p.home.Lon)
	p.m.SetZoom(p.homeZoom)
}
