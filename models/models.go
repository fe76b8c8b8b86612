package models

import (
	"strings"
	"time"
)

// HomeBase is the room the robot always returns to after a task.
const HomeBase = "living room"

// NormalizeRoom canonicalizes a room name so that shorthand forms never
// collide with the full names used by the scenario files.
func NormalizeRoom(room string) string {
	room = strings.ToLower(strings.TrimSpace(room))
	if room == "dining" {
		return "dining room"
	}
	if room == "hallway" {
		return "hall"
	}
	return room
}

// ObjectRecord describes one object placed in the simulated house.
// Owned by the world state; the core only reads these through sensing calls.
type ObjectRecord struct {
	Type     string  `json:"type"`
	Room     string  `json:"location"`
	WeightKg float64 `json:"weight_kg"`
}

// PersonRecord is the robot's last-known sighting of a person. It lives in
// robot memory, not in the world state, so it can be stale or wrong.
type PersonRecord struct {
	Name       string    `json:"name"`
	LastRoom   string    `json:"last_room"`
	ObservedAt time.Time `json:"observed_at"`
}

// SearchResult is the outcome of one multi-room scan. It is consumed by the
// reporting step and never persisted.
type SearchResult struct {
	Found        bool
	Location     string
	RoomsVisited []string
}

// Document is one retrieved knowledge-base chunk. Transient: it exists only
// for the duration of one retrieval call.
type Document struct {
	Content string
	Class   string
	Source  string
}

// DocClassRulebook marks authoritative competition documents, which are
// ranked first for rules-related queries.
const DocClassRulebook = "rulebook"
