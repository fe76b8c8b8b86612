// Package world simulates the ground-truth state of the house for testing.
// The agent never reads it directly; it only sees the sensing methods, the
// same way a real robot would only see its sensors.
package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"robot/models"
)

// Person is one occupant of the simulated house.
type Person struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Scenario is the on-disk format of one simulated house layout.
type Scenario struct {
	Name    string                `json:"scenario_name"`
	People  []Person              `json:"people"`
	Objects []models.ObjectRecord `json:"objects"`
}

// World holds the active scenario and answers sensing queries against it.
// All lookups are case-insensitive and never fail; an unknown object or
// person is simply not sensed.
type World struct {
	scenario Scenario
}

// New builds a world from an in-memory scenario, mainly for tests.
func New(scenario Scenario) *World {
	return &World{scenario: scenario}
}

// Load reads a scenario JSON file from disk.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario file: %w", err)
	}

	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario JSON: %w", err)
	}

	log.Printf("[WORLD] Loaded scenario: %s", scenario.Name)
	return &World{scenario: scenario}, nil
}

// Name returns the scenario name.
func (w *World) Name() string {
	if w.scenario.Name == "" {
		return "unknown"
	}
	return w.scenario.Name
}

// PersonInRoom simulates a sensor check: is this person in this room?
func (w *World) PersonInRoom(name, room string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	room = strings.ToLower(strings.TrimSpace(room))

	for _, person := range w.scenario.People {
		if strings.ToLower(person.Name) == name {
			return strings.ToLower(person.Location) == room
		}
	}
	return false
}

// ObjectsInRoom returns every object visible in a room.
func (w *World) ObjectsInRoom(room string) []models.ObjectRecord {
	room = strings.ToLower(strings.TrimSpace(room))

	var objects []models.ObjectRecord
	for _, obj := range w.scenario.Objects {
		if strings.ToLower(obj.Room) == room {
			objects = append(objects, obj)
		}
	}
	return objects
}

// ObjectInRoom reports whether at least one object of this type is in the room.
func (w *World) ObjectInRoom(objectType, room string) bool {
	objectType = strings.ToLower(strings.TrimSpace(objectType))
	room = strings.ToLower(strings.TrimSpace(room))

	for _, obj := range w.scenario.Objects {
		if strings.ToLower(obj.Type) == objectType && strings.ToLower(obj.Room) == room {
			return true
		}
	}
	return false
}

// ObjectWeight returns the weight of an object in a room, or false if the
// object is not there.
func (w *World) ObjectWeight(objectType, room string) (float64, bool) {
	objectType = strings.ToLower(strings.TrimSpace(objectType))
	room = strings.ToLower(strings.TrimSpace(room))

	for _, obj := range w.scenario.Objects {
		if strings.ToLower(obj.Type) == objectType && strings.ToLower(obj.Room) == room {
			return obj.WeightKg, true
		}
	}
	return 0, false
}

// AllRooms returns the sorted set of rooms mentioned anywhere in the scenario.
func (w *World) AllRooms() []string {
	seen := make(map[string]bool)
	for _, person := range w.scenario.People {
		seen[strings.ToLower(person.Location)] = true
	}
	for _, obj := range w.scenario.Objects {
		seen[strings.ToLower(obj.Room)] = true
	}

	rooms := make([]string, 0, len(seen))
	for room := range seen {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)
	return rooms
}

// Summary returns a human-readable description of the scenario for logs.
func (w *World) Summary() string {
	rooms := w.AllRooms()
	return fmt.Sprintf("Scenario: %s | Rooms: %d (%s) | People: %d | Objects: %d",
		w.Name(), len(rooms), strings.Join(rooms, ", "),
		len(w.scenario.People), len(w.scenario.Objects))
}
