package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

const defaultListLimit = 50

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Health(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryInt parses an optional non-negative integer query parameter
func queryInt(r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (s *Server) handleListNeighborhoods(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		ns, err := s.svc.SearchNeighborhoods(r.Context(), q)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, nonNil(ns))
		return
	}

	limit, ok := queryInt(r, "limit", defaultListLimit)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	offset, ok := queryInt(r, "offset", 0)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	opts := database.ListOptions{Limit: limit, Offset: offset}
	if city := r.URL.Query().Get("city"); city != "" {
		opts.City = &city
	}
	if state := r.URL.Query().Get("state"); state != "" {
		opts.State = &state
	}

	ns, err := s.svc.ListNeighborhoods(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(ns))
}

func nonNil(ns []database.Neighborhood) []database.Neighborhood {
	if ns == nil {
		return []database.Neighborhood{}
	}
	return ns
}

func (s *Server) handleGetNeighborhood(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.FindNeighborhood(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleAllRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.svc.AllRatings(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ratings)
}

// MatchRequest ranks for a saved user (body or X-User-ID) or for inline
// preferences
type MatchRequest struct {
	UserID      string                     `json:"user_id"`
	Preferences *service.InlinePreferences `json:"preferences"`
	Limit       int                        `json:"limit"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}
	if req.Limit < -1 {
		writeError(w, r, http.StatusBadRequest, "limit must be -1 or greater")
		return
	}

	var ranking *service.Ranking
	var err error
	if req.Preferences != nil {
		if req.UserID != "" {
			writeError(w, r, http.StatusBadRequest, "give user_id or preferences, not both")
			return
		}
		ranking, err = s.svc.RankWith(r.Context(), req.Preferences.View(), req.Limit)
	} else {
		userID := req.UserID
		if userID == "" {
			userID = r.Header.Get(userIDHeader)
		}
		if userID == "" {
			writeError(w, r, http.StatusBadRequest, "user_id, "+userIDHeader+" header, or preferences is required")
			return
		}
		ranking, err = s.svc.Rank(r.Context(), userID, req.Limit)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// reviewRef reads the neighborhood from ?area= or ?neighborhoodId=
func reviewRef(r *http.Request) string {
	if area := r.URL.Query().Get("area"); area != "" {
		return area
	}
	return r.URL.Query().Get("neighborhoodId")
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	ref := reviewRef(r)
	if ref == "" {
		writeError(w, r, http.StatusBadRequest, "area or neighborhoodId is required")
		return
	}

	reviews, err := s.svc.ListReviews(r.Context(), ref, r.URL.Query().Get("category"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []database.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var in service.ReviewInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.UserID == "" {
		in.UserID = r.Header.Get(userIDHeader)
	}

	created, err := s.svc.SubmitReview(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleReviewAverage(w http.ResponseWriter, r *http.Request) {
	ref := reviewRef(r)
	if ref == "" {
		writeError(w, r, http.StatusBadRequest, "area is required")
		return
	}

	summary, err := s.svc.ReviewAverages(r.Context(), ref)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, userIDHeader+" header is required")
		return
	}

	if err := s.svc.DeleteOwnReview(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, userIDHeader+" header is required")
		return
	}

	var in service.ReviewUpdate
	if !decodeBody(w, r, &in) {
		return
	}

	updated, err := s.svc.UpdateOwnReview(r.Context(), chi.URLParam(r, "id"), userID, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, userIDHeader+" header is required")
		return
	}

	prefs, err := s.svc.GetPreferences(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, userIDHeader+" header is required")
		return
	}

	var in service.PreferencesInput
	if !decodeBody(w, r, &in) {
		return
	}
	in.UserID = userID

	saved, err := s.svc.SavePreferences(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
