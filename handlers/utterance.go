package handlers

import (
	"encoding/json"
	"net/http"

	"robot/memory"
)

type UtteranceRequest struct {
	Message string `json:"message"`
}

type UtteranceResponse struct {
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
}

// UtteranceHandler accepts one user utterance and returns the robot's reply.
func (a *Assistant) UtteranceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UtteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Missing 'message' field", http.StatusBadRequest)
		return
	}

	reply, intent := a.RespondTo(r.Context(), req.Message)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UtteranceResponse{Reply: reply, Intent: intent.String()})
}

type PeopleResponse struct {
	People []PersonView `json:"people"`
}

type PersonView struct {
	Name       string `json:"name"`
	LastRoom   string `json:"last_room"`
	ObservedAt string `json:"observed_at"`
}

// PeopleHandler exposes the robot's current person memory.
func PeopleHandler(mem *memory.Memory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		resp := PeopleResponse{People: []PersonView{}}
		for _, record := range mem.People() {
			resp.People = append(resp.People, PersonView{
				Name:       record.Name,
				LastRoom:   record.LastRoom,
				ObservedAt: record.ObservedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
