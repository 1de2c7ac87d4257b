package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"listing-advisor/advisor"
	"listing-advisor/mapview"
	"listing-advisor/services"
)

// Handlers serve one shared session and its map. The open evaluation
// dialog survives across requests so its model is loaded once.
type Handlers struct {
	session *advisor.Session
	title   string

	mu       sync.Mutex
	evaluate *advisor.EvaluateDialog
}

// NewHandlers creates handlers over session. title heads the rendered map
// page.
func NewHandlers(session *advisor.Session, title string) *Handlers {
	return &Handlers{session: session, title: title}
}

// HandleHealth - GET /healthz
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleMap - GET /map renders the current map as a Leaflet page.
func (h *Handlers) HandleMap(w http.ResponseWriter, r *http.Request) {
	state, ok := h.session.MapState()
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "Map is not available")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := mapview.RenderHTML(w, h.title, state); err != nil {
		LoggerFromContext(r.Context()).Error("Failed to render map", "error", err)
	}
}

// HandleSuburbs - GET /api/v1/suburbs
func (h *Handlers) HandleSuburbs(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, SuburbsResponse{Suburbs: h.session.Table().Suburbs()})
}

// HandleShowListing - GET /api/v1/listings/{id}
func (h *Handlers) HandleShowListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.session.ShowListing(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ListingResponse{
		Selection: services.SelectionLabel(view.Listing.ID),
		Listing:   toListingDTO(view.Listing),
		Details:   view.Details,
		OnMap:     view.OnMap,
	})
}

// HandleRecommend - POST /api/v1/recommend
func (h *Handlers) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context()).With("handler", "HandleRecommend")

	var req RecommendRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.session.OpenRecommend().Search(req.form())
	if errors.Is(err, services.ErrNoMatch) {
		RespondWithJSON(w, http.StatusOK, RecommendResponse{Found: false, Message: err.Error()})
		return
	}
	if err != nil {
		logger.Warn("Recommendation rejected", "error", err)
		writeServiceError(w, err)
		return
	}

	best := toListingDTO(rec.Best)
	RespondWithJSON(w, http.StatusOK, RecommendResponse{
		Found:      true,
		Best:       &best,
		Peers:      toListingDTOs(rec.Peers),
		Candidates: rec.Candidates,
	})
}

// HandleCloseRecommend - DELETE /api/v1/recommend resets the map.
func (h *Handlers) HandleCloseRecommend(w http.ResponseWriter, r *http.Request) {
	h.session.OpenRecommend().Close()
	w.WriteHeader(http.StatusNoContent)
}

// HandleEvaluate - POST /api/v1/evaluate
func (h *Handlers) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context()).With("handler", "HandleEvaluate")

	var req EvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.evaluate == nil {
		d, err := h.session.OpenEvaluate()
		h.evaluate = d
		if err != nil {
			logger.Error("Price model unavailable", "error", err)
			writeServiceError(w, err)
			return
		}
	}

	eval, err := h.evaluate.Evaluate(req.form())
	if err != nil {
		logger.Warn("Evaluation failed", "error", err)
		writeServiceError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toEvaluateResponse(eval))
}

// HandleCloseEvaluate - DELETE /api/v1/evaluate closes the dialog and resets the map.
func (h *Handlers) HandleCloseEvaluate(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.evaluate != nil {
		h.evaluate.Close()
		h.evaluate = nil
	} else {
		h.session.Reset()
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return false
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}
