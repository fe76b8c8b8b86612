// Package engine executes physical task directives against the simulated
// house: navigate, pick up, search, deliver, and person location tasks.
// One engine drives one robot, so execution is serialized; the robot can
// only be in one room at a time.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"

	"robot/memory"
	"robot/models"
	"robot/telemetry"
)

// MaxPayloadKg is the heaviest object the robot can carry.
const MaxPayloadKg = 3.0

// Sensor is the robot's view of the world. Sensing calls are pure lookups
// and never fail; an absent object or person is just not sensed.
type Sensor interface {
	PersonInRoom(name, room string) bool
	ObjectsInRoom(room string) []models.ObjectRecord
	ObjectInRoom(objectType, room string) bool
	ObjectWeight(objectType, room string) (float64, bool)
}

// UserIO asks the user a question and waits for the answer.
type UserIO interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Outcome is the result of one task primitive: a human-readable report plus
// an internal success signal. Sensing misses and weight failures are
// outcomes, not errors.
type Outcome struct {
	Report string
	OK     bool
}

func success(format string, args ...any) Outcome {
	return Outcome{Report: fmt.Sprintf(format, args...), OK: true}
}

func failure(format string, args ...any) Outcome {
	return Outcome{Report: fmt.Sprintf(format, args...)}
}

// Engine is the task state machine for one robot.
type Engine struct {
	mu        sync.Mutex
	memory    *memory.Memory
	sensor    Sensor
	user      UserIO
	publisher telemetry.Publisher
}

// New wires a task engine to its collaborators. The publisher may not be
// nil; pass telemetry.LogPublisher{} when nothing subscribes.
func New(mem *memory.Memory, sensor Sensor, user UserIO, publisher telemetry.Publisher) *Engine {
	return &Engine{memory: mem, sensor: sensor, user: user, publisher: publisher}
}

// Execute runs one directive to completion. Concurrent calls are queued, and
// whatever the primitive did, the robot ends up back at home base. A
// malformed directive is reported as a structured error without touching
// any state.
func (e *Engine) Execute(ctx context.Context, directive models.Directive) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := directive.Validate(); err != nil {
		return failure("Error: %s.", err.Error())
	}

	var out Outcome
	switch directive.Action {
	case models.ActionNavigate:
		out = e.Navigate(ctx, directive.Room)
	case models.ActionPickUp:
		out = e.PickUp(ctx, directive.Object)
	case models.ActionSearchObject:
		out = e.SearchForObject(ctx, directive.Object)
	case models.ActionFindObject:
		out = e.FindObject(ctx, directive.Object)
	case models.ActionDeliver:
		out = e.Deliver(ctx, directive.Object, directive.Target)
	case models.ActionFindPerson:
		out = e.FindPerson(ctx, directive.Person, directive.Message, directive.Room)
	case models.ActionSearchPerson:
		out = e.SearchForPerson(ctx, directive.Person, directive.Message, directive.MaxRooms, "")
	case models.ActionUpdatePerson:
		out = e.UpdatePersonLocation(directive.Person, directive.Room)
	}

	// Home-base invariant: a task never strands the robot elsewhere,
	// whether it succeeded, failed, or was abandoned.
	if e.memory.CurrentRoom() != models.HomeBase {
		e.Navigate(ctx, models.HomeBase)
	}
	return out
}

// Navigate moves the robot to a room. Simulated navigation never fails; an
// unrecognized room is added to the known-rooms set on arrival.
func (e *Engine) Navigate(ctx context.Context, room string) Outcome {
	room = models.NormalizeRoom(room)
	log.Printf("[TASK_ENGINE] Navigating to room: %s", room)

	telemetry.Room(e.publisher, room)
	e.memory.SetCurrentRoom(room)

	return success("Robot arrived at %s.", room)
}

// returnHome brings the robot back to home base before a report is handed
// to the user.
func (e *Engine) returnHome(ctx context.Context) {
	log.Printf("[TASK_ENGINE] Returning to %s (home base)", models.HomeBase)
	e.Navigate(ctx, models.HomeBase)
}

// Deliver hands over an object the robot is carrying. Target defaults to
// the user.
func (e *Engine) Deliver(ctx context.Context, object, target string) Outcome {
	if target == "" {
		target = "user"
	}
	log.Printf("[TASK_ENGINE] Delivering '%s' to '%s'", object, target)
	return success("Object '%s' delivered to '%s'.", object, target)
}

// UpdatePersonLocation records a user-supplied correction of where a person
// is, without any physical verification.
func (e *Engine) UpdatePersonLocation(name, room string) Outcome {
	record := e.memory.RecordPerson(name, room)
	return success("Location updated: %s is at %s.", name, record.LastRoom)
}
