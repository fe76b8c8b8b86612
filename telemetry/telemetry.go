// Package telemetry provides the one-way status channel the robot publishes
// on while executing tasks. Events are fire-and-forget: nothing in the core
// ever waits on, or consumes, its own telemetry.
package telemetry

import (
	"log"
	"sync"
)

// Topic identifies a telemetry stream.
type Topic string

const (
	// TopicRoom carries the name of each room the robot arrives at.
	TopicRoom Topic = "room"
	// TopicPersonSearch carries person-search status updates.
	TopicPersonSearch Topic = "person_search"
	// TopicObject carries the name of each object the robot finds.
	TopicObject Topic = "object"
)

// Person-search statuses.
const (
	StatusSearching = "searching"
	StatusFound     = "found"
	StatusNotFound  = "not_found"
	StatusKnown     = "known"
)

// Event is one published status notification.
type Event struct {
	Topic Topic
	Data  map[string]any
}

// Publisher is what the task engine emits events through.
type Publisher interface {
	Publish(event Event)
}

// Handler receives events for one topic.
type Handler func(Event)

// Bus is a minimal in-process pub/sub channel. Delivery is asynchronous so
// a slow subscriber never blocks a task step.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish delivers an event to every subscriber of its topic.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Topic]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
}

// Room publishes a room-arrival event.
func Room(p Publisher, room string) {
	p.Publish(Event{Topic: TopicRoom, Data: map[string]any{"room": room}})
}

// Object publishes an object-found event.
func Object(p Publisher, object string) {
	p.Publish(Event{Topic: TopicObject, Data: map[string]any{"object": object}})
}

// ObjectSearch publishes an object-search status update with extra context
// fields (action, rooms_searched, ...).
func ObjectSearch(p Publisher, status, object string, context map[string]any) {
	data := map[string]any{"status": status, "object": object}
	for key, value := range context {
		data[key] = value
	}
	p.Publish(Event{Topic: TopicObject, Data: data})
}

// PersonSearch publishes a person-search status update with extra context
// fields (current_room, rooms_searched, known_location, action, ...).
func PersonSearch(p Publisher, status, person string, context map[string]any) {
	data := map[string]any{"status": status, "person": person}
	for key, value := range context {
		data[key] = value
	}
	p.Publish(Event{Topic: TopicPersonSearch, Data: data})
}

// LogPublisher writes events to the process log. Used when no external
// subscriber is wired up.
type LogPublisher struct{}

// Publish logs the event.
func (LogPublisher) Publish(event Event) {
	log.Printf("[TELEMETRY] %s: %v", event.Topic, event.Data)
}
