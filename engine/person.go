package engine

import (
	"context"
	"log"

	"robot/models"
	"robot/telemetry"
)

// FindPerson resolves a person-location request. A user-supplied room is
// treated as ground truth and not physically verified; a cached sighting is
// offered first with the option to go verify; an unknown person triggers a
// physical search straight away.
func (e *Engine) FindPerson(ctx context.Context, name, message, hintRoom string) Outcome {
	log.Printf("[TASK_ENGINE] Looking for %s", name)

	if hintRoom != "" {
		return e.findPersonAtHint(ctx, name, message, hintRoom)
	}

	record, known := e.memory.LookupPerson(name)
	if !known {
		log.Printf("[TASK_ENGINE] %s is unknown, starting physical search", name)
		telemetry.PersonSearch(e.publisher, telemetry.StatusSearching, name,
			map[string]any{"action": "find"})
		return e.SearchForPerson(ctx, name, message, 0, "")
	}

	lastSeen := record.ObservedAt.Format("15:04")
	question := "I know " + name + "! Last seen at " + record.LastRoom + " at " + lastSeen + "."
	if message != "" {
		question += "\n\nMessage to deliver: '" + message + "'"
	}

	telemetry.PersonSearch(e.publisher, telemetry.StatusKnown, name, map[string]any{
		"last_location": record.LastRoom,
		"timestamp":     record.ObservedAt,
	})

	answer := e.ask(ctx, question+"\n\nWould you like me to go verify? (yes/no)")
	if !isAffirmative(answer) {
		return success("Understood. %s was last seen at %s.", name, record.LastRoom)
	}

	// Fresh physical search: drop the cached record so the search outcome
	// re-creates it, and scan the cached room first.
	e.memory.ForgetPerson(name)
	log.Printf("[TASK_ENGINE] Verifying %s's location with a physical search", name)
	return e.SearchForPerson(ctx, name, message, 0, record.LastRoom)
}

// findPersonAtHint trusts a user-supplied room: record it, go there, deliver
// the message, come home. No physical verification.
func (e *Engine) findPersonAtHint(ctx context.Context, name, message, hintRoom string) Outcome {
	log.Printf("[TASK_ENGINE] User provided location for %s: %s", name, hintRoom)

	record := e.memory.RecordPerson(name, hintRoom)
	e.Navigate(ctx, record.LastRoom)
	telemetry.PersonSearch(e.publisher, telemetry.StatusSearching, name, map[string]any{
		"known_location": record.LastRoom,
		"action":         "direct_navigation",
	})
	e.returnHome(ctx)

	if message != "" {
		return success("Went to %s, found %s and delivered message: '%s'. Returned to the %s.",
			record.LastRoom, name, message, models.HomeBase)
	}
	return success("Went to %s, found %s. Location confirmed! Returned to the %s.",
		record.LastRoom, name, models.HomeBase)
}

// SearchForPerson physically scans rooms for a person, visiting each room at
// most once. hintRoom, if set, is scanned first. maxRooms <= 0 means the
// whole known-rooms set. On exhaustion the robot asks for a hint, remembers
// it unverified, and goes home.
func (e *Engine) SearchForPerson(ctx context.Context, name, message string, maxRooms int, hintRoom string) Outcome {
	rooms := e.scanOrder(hintRoom)
	if maxRooms <= 0 || maxRooms > len(rooms) {
		maxRooms = len(rooms)
	}

	log.Printf("[TASK_ENGINE] Starting physical search for %s (max %d rooms)", name, maxRooms)
	telemetry.PersonSearch(e.publisher, telemetry.StatusSearching, name, map[string]any{
		"action":    "physical_search",
		"max_rooms": maxRooms,
	})

	result := models.SearchResult{}
	for i, room := range rooms {
		if i >= maxRooms {
			log.Printf("[TASK_ENGINE] Reached maximum room search limit (%d)", maxRooms)
			break
		}
		if err := ctx.Err(); err != nil {
			telemetry.PersonSearch(e.publisher, telemetry.StatusNotFound, name,
				map[string]any{"action": "cancelled", "rooms_searched": len(result.RoomsVisited)})
			return e.cancelSearch(ctx, result)
		}

		log.Printf("[TASK_ENGINE] Searching for %s in %s (%d/%d)", name, room, i+1, maxRooms)
		e.Navigate(ctx, room)
		result.RoomsVisited = append(result.RoomsVisited, room)

		telemetry.PersonSearch(e.publisher, telemetry.StatusSearching, name, map[string]any{
			"current_room":   room,
			"rooms_searched": len(result.RoomsVisited),
		})

		if e.sensor.PersonInRoom(name, room) {
			result.Found = true
			result.Location = room
			break
		}
	}

	if result.Found {
		log.Printf("[TASK_ENGINE] Found %s in %s", name, result.Location)
		e.memory.RecordPerson(name, result.Location)
		telemetry.PersonSearch(e.publisher, telemetry.StatusFound, name, map[string]any{
			"location":       result.Location,
			"rooms_searched": len(result.RoomsVisited),
		})

		report := "Found " + name + " at " + result.Location + "! "
		if message != "" {
			log.Printf("[TASK_ENGINE] Delivering message to %s: '%s'", name, message)
			report = "Found " + name + " at " + result.Location + "! Delivered message: '" + message + "'. "
		}

		e.returnHome(ctx)
		return success("%sReturning to the %s.", report, models.HomeBase)
	}

	telemetry.PersonSearch(e.publisher, telemetry.StatusNotFound, name,
		map[string]any{"rooms_searched": len(result.RoomsVisited)})

	hint := e.ask(ctx, "I couldn't find "+name+" after searching the rooms. Do you know where "+
		name+" might be?")
	e.returnHome(ctx)

	if hint != UnknownLocation && hint != "" {
		// Lesson learned: remember the hint without verifying it.
		hintedRoom := models.NormalizeRoom(stripLocative(hint))
		e.memory.RecordPerson(name, hintedRoom)
		return failure("Thank you! I'll remember to look for %s at %s next time. Returned to the %s.",
			name, hintedRoom, models.HomeBase)
	}

	return failure("I searched %d rooms but couldn't find %s. They might not be home. Returned to the %s.",
		len(result.RoomsVisited), name, models.HomeBase)
}

// scanOrder returns the known rooms with an optional hint room moved to the
// front of the scan.
func (e *Engine) scanOrder(hintRoom string) []string {
	rooms := e.memory.KnownRooms()
	if hintRoom == "" {
		return rooms
	}

	hintRoom = models.NormalizeRoom(hintRoom)
	ordered := []string{hintRoom}
	for _, room := range rooms {
		if room != hintRoom {
			ordered = append(ordered, room)
		}
	}
	return ordered
}
