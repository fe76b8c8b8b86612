package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"robot/db"
)

type SightingView struct {
	Person     string    `json:"person"`
	Room       string    `json:"room"`
	ObservedAt time.Time `json:"observed_at"`
}

type SightingsResponse struct {
	Sightings []SightingView `json:"sightings"`
	Total     int64          `json:"total"`
	HasMore   bool           `json:"has_more"`
}

// SightingsHandler serves the persisted person-sighting history.
func SightingsHandler(repo *db.SightingRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		person := r.URL.Query().Get("person")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		// Set defaults
		if limit <= 0 || limit > 100 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		sightings, total, err := repo.History(r.Context(), person, limit, offset)
		if err != nil {
			http.Error(w, "Failed to load sightings", http.StatusInternalServerError)
			return
		}

		resp := SightingsResponse{
			Sightings: []SightingView{},
			Total:     total,
			HasMore:   int64(offset+len(sightings)) < total,
		}
		for _, s := range sightings {
			resp.Sightings = append(resp.Sightings, SightingView{
				Person:     s.Person,
				Room:       s.Room,
				ObservedAt: s.ObservedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
