// Package memory holds the robot's epistemic state: where it is, what rooms
// and objects it has ever observed, and where it last saw each person. This
// is independent from the world state and can be wrong.
package memory

import (
	"log"
	"strings"
	"sync"
	"time"

	"robot/models"
)

// DefaultRooms is the house layout the robot assumes before it has explored
// anything. New rooms are appended as they are encountered.
var DefaultRooms = []string{
	"bedroom", "kitchen", "living room", "dining room",
	"bathroom", "hall", "laundry room", "garage",
}

// DefaultObjects seeds the known-objects registry with the household
// inventory the robot is trained to recognize.
var DefaultObjects = []string{
	"cup", "mug", "bowl", "dish", "spoon", "fork", "knife", "napkin",
	"tray", "basket", "trash bag", "book", "CD", "DVD", "BluRay",
	"cereal box", "milk carton", "bag", "coat", "apple", "paper",
	"teabag", "pen", "remote control", "chocolate egg",
	"refrigerator bottle", "newspaper", "umbrella",
}

// SightingSink receives a copy of every person sighting for durable storage.
// The write is best-effort; memory itself stays authoritative in-process.
type SightingSink interface {
	RecordSighting(record models.PersonRecord)
}

// Memory is the single shared mutable store of the robot's knowledge.
// All access is mutex-guarded; task execution on one robot is serialized
// above this layer, but handlers may read concurrently.
type Memory struct {
	mu          sync.Mutex
	currentRoom string
	rooms       []string
	objects     []string
	people      []models.PersonRecord
	sink        SightingSink
	now         func() time.Time
}

// New creates a memory seeded with the default rooms and objects, with the
// robot at home base.
func New() *Memory {
	return &Memory{
		currentRoom: models.HomeBase,
		rooms:       append([]string(nil), DefaultRooms...),
		objects:     append([]string(nil), DefaultObjects...),
		now:         time.Now,
	}
}

// SetSightingSink attaches an optional durable store for person sightings.
func (m *Memory) SetSightingSink(sink SightingSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink = sink
}

// CurrentRoom returns where the robot believes it is.
func (m *Memory) CurrentRoom() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentRoom
}

// SetCurrentRoom moves the robot. Only successful navigation calls this.
// An empty room resets to home base. The room is added to the known-rooms
// set if it is novel, keeping the invariant that the current room is always
// a known room.
func (m *Memory) SetCurrentRoom(room string) {
	room = models.NormalizeRoom(room)
	if room == "" {
		room = models.HomeBase
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentRoom = room
	if !containsFold(m.rooms, room) {
		m.rooms = append(m.rooms, room)
		log.Printf("[ROBOT_MEMORY] Room '%s' added to known rooms", room)
	}
	log.Printf("[ROBOT_MEMORY] Current room updated to: '%s'", room)
}

// KnownRooms returns a copy of the known-rooms set in its stable scan order.
func (m *Memory) KnownRooms() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.rooms...)
}

// KnowsRoom reports whether a room has been observed or assumed before.
func (m *Memory) KnowsRoom(room string) bool {
	room = models.NormalizeRoom(room)
	m.mu.Lock()
	defer m.mu.Unlock()
	return containsFold(m.rooms, room)
}

// AddObject appends a newly observed object name to the known-objects set.
// The set is append-only with case-insensitive dedup.
func (m *Memory) AddObject(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !containsFold(m.objects, name) {
		m.objects = append(m.objects, name)
		log.Printf("[ROBOT_MEMORY] Object '%s' added to known objects", name)
	}
}

// KnownObjects returns a copy of the known-objects set.
func (m *Memory) KnownObjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.objects...)
}

// RecordPerson stores or refreshes a person's last-known location. Names are
// unique case-insensitively and updated in place; the observation timestamp
// never moves backwards.
func (m *Memory) RecordPerson(name, room string) models.PersonRecord {
	room = models.NormalizeRoom(room)
	record := models.PersonRecord{Name: name, LastRoom: room, ObservedAt: m.now()}

	m.mu.Lock()
	updated := false
	for i := range m.people {
		if strings.EqualFold(m.people[i].Name, name) {
			if record.ObservedAt.Before(m.people[i].ObservedAt) {
				record.ObservedAt = m.people[i].ObservedAt
			}
			m.people[i].LastRoom = room
			m.people[i].ObservedAt = record.ObservedAt
			record = m.people[i]
			updated = true
			break
		}
	}
	if !updated {
		m.people = append(m.people, record)
	}
	sink := m.sink
	m.mu.Unlock()

	if updated {
		log.Printf("[ROBOT_MEMORY] Updated %s's location to %s", name, room)
	} else {
		log.Printf("[ROBOT_MEMORY] Added %s to known people at %s", name, room)
	}

	if sink != nil {
		sink.RecordSighting(record)
	}
	return record
}

// LookupPerson returns the last-known record for a person, if any.
func (m *Memory) LookupPerson(name string) (models.PersonRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, person := range m.people {
		if strings.EqualFold(person.Name, name) {
			return person, true
		}
	}
	return models.PersonRecord{}, false
}

// ForgetPerson removes a person record. Used only immediately before a
// verification re-search, which re-creates the record from its outcome.
func (m *Memory) ForgetPerson(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, person := range m.people {
		if strings.EqualFold(person.Name, name) {
			m.people = append(m.people[:i], m.people[i+1:]...)
			log.Printf("[ROBOT_MEMORY] Removed old record of %s", name)
			return
		}
	}
}

// People returns a copy of every person record.
func (m *Memory) People() []models.PersonRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PersonRecord(nil), m.people...)
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
