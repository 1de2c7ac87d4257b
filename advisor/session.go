// Package advisor wires the decision services to the map. A Session owns the
// map side effects of each user action; dialogs mirror the open/submit/close
// lifecycle of the recommendation and evaluation forms.
package advisor

import (
	"sync"

	"listing-advisor/mapview"
	"listing-advisor/models"
	"listing-advisor/services"
	"listing-advisor/utils"
)

// ModelLoader loads the price model. It is called once per evaluation dialog.
type ModelLoader func() (services.PriceModel, error)

// Session serialises actions against one shared map.
type Session struct {
	mu sync.Mutex

	table       *services.Table
	lookup      *services.LookupService
	recommender *services.Recommender
	presenter   *mapview.Presenter
	loadModel   ModelLoader
	logger      *utils.Logger
}

// NewSession creates a Session over table drawing through presenter.
func NewSession(table *services.Table, presenter *mapview.Presenter, loadModel ModelLoader, logger *utils.Logger) *Session {
	return &Session{
		table:       table,
		lookup:      services.NewLookupService(table),
		recommender: services.NewRecommender(table, logger),
		presenter:   presenter,
		loadModel:   loadModel,
		logger:      logger,
	}
}

// Table returns the dataset the session works on.
func (s *Session) Table() *services.Table {
	return s.table
}

// Options returns the selection labels of every listing.
func (s *Session) Options() []string {
	return s.lookup.Options()
}

// ListingView is a resolved listing ready for display.
type ListingView struct {
	Listing *models.Listing
	Details []services.DetailLine
	// OnMap reports whether the map was moved to the listing.
	OnMap bool
}

// ShowListing resolves a selection and focuses the map on it when it has
// coordinates. An invalid selection leaves the map as it was.
func (s *Session) ShowListing(selection string) (*ListingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.lookup.Select(selection)
	if err != nil {
		return nil, err
	}
	return &ListingView{
		Listing: l,
		Details: services.Details(l),
		OnMap:   s.presenter.ShowListing(l),
	}, nil
}

// Reset returns the map to its default view.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presenter.Reset()
}

// MapState returns a copy of the map taken between actions, never halfway
// through a redraw. ok is false when the map cannot report its contents.
func (s *Session) MapState() (state mapview.State, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presenter.State()
}
