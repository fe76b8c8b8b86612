package engine

import (
	"context"
	"log"

	"robot/models"
	"robot/telemetry"
)

// PickUp attempts to grab an object in the robot's current room. Not-found
// and too-heavy are distinct failure outcomes, and both end with the robot
// back at home base so it can report face to face.
func (e *Engine) PickUp(ctx context.Context, object string) Outcome {
	currentRoom := e.memory.CurrentRoom()
	log.Printf("[TASK_ENGINE] Attempting to pick up '%s' in %s", object, currentRoom)

	if !e.sensor.ObjectInRoom(object, currentRoom) {
		e.returnHome(ctx)
		return failure("I don't see '%s' in the %s. Could you tell me which room it's in?",
			object, currentRoom)
	}

	telemetry.Object(e.publisher, object)

	if out, ok := e.liftCheck(ctx, object, currentRoom); !ok {
		return out
	}

	e.memory.AddObject(object)
	return success("Object '%s' picked up successfully.", object)
}

// liftCheck enforces the payload gate for an object known to be present.
func (e *Engine) liftCheck(ctx context.Context, object, room string) (Outcome, bool) {
	weight, known := e.sensor.ObjectWeight(object, room)
	if known && weight <= MaxPayloadKg {
		return Outcome{}, true
	}

	if known {
		log.Printf("[TASK_ENGINE] '%s' is too heavy (%.1f kg), abandoning", object, weight)
	} else {
		log.Printf("[TASK_ENGINE] '%s' has no measurable weight in %s, abandoning", object, room)
	}
	e.returnHome(ctx)
	return failure("I cannot carry the %s from the %s. It is too heavy for me. "+
		"I can only carry objects up to %.1f kg maximum.", object, room, MaxPayloadKg), false
}

// SearchForObject scans the known rooms in their stable order, one at a
// time, stopping at the first room that contains the object. The scan is
// serialized because the robot occupies one room at a time; each room is
// visited at most once.
func (e *Engine) SearchForObject(ctx context.Context, object string) Outcome {
	log.Printf("[TASK_ENGINE] Starting search for '%s'", object)

	result := models.SearchResult{}
	for _, room := range e.memory.KnownRooms() {
		if err := ctx.Err(); err != nil {
			telemetry.ObjectSearch(e.publisher, telemetry.StatusNotFound, object,
				map[string]any{"action": "cancelled", "rooms_searched": len(result.RoomsVisited)})
			return e.cancelSearch(ctx, result)
		}

		log.Printf("[TASK_ENGINE] Searching for '%s' in %s", object, room)
		e.Navigate(ctx, room)
		result.RoomsVisited = append(result.RoomsVisited, room)

		if e.sensor.ObjectInRoom(object, room) {
			result.Found = true
			result.Location = room
			break
		}
	}

	if !result.Found {
		e.returnHome(ctx)
		return failure("I searched %d rooms but couldn't find '%s'. Could you tell me "+
			"which room it's in, or if it might be called by a different name?",
			len(result.RoomsVisited), object)
	}

	log.Printf("[TASK_ENGINE] Found '%s' in %s", object, result.Location)
	telemetry.Object(e.publisher, object)

	if out, ok := e.liftCheck(ctx, object, result.Location); !ok {
		return out
	}

	e.memory.AddObject(object)
	return success("Found '%s' in the %s! I'm currently at the %s.",
		object, result.Location, result.Location)
}

// FindObject asks the user where an object is and goes to fetch it. When
// the user doesn't know, it escalates to a physical search once; a bad
// answer is never trusted over a search.
func (e *Engine) FindObject(ctx context.Context, object string) Outcome {
	log.Printf("[TASK_ENGINE] Looking for '%s'", object)

	answer := e.ask(ctx, "Where is the "+object+"?")
	if answer == UnknownLocation {
		log.Printf("[TASK_ENGINE] User doesn't know where '%s' is, starting physical search", object)
		return e.SearchForObject(ctx, object)
	}

	room := models.NormalizeRoom(stripLocative(answer))
	log.Printf("[TASK_ENGINE] User said '%s' is at: %s", object, room)

	e.Navigate(ctx, room)
	return e.PickUp(ctx, object)
}

// cancelSearch handles a context cancellation between room visits.
func (e *Engine) cancelSearch(ctx context.Context, result models.SearchResult) Outcome {
	log.Printf("[TASK_ENGINE] Search cancelled after %d rooms", len(result.RoomsVisited))
	e.returnHome(context.WithoutCancel(ctx))
	return failure("Search cancelled after %d rooms. Returned to the %s.",
		len(result.RoomsVisited), models.HomeBase)
}
