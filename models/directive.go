package models

import "fmt"

// Action names the task primitive a directive invokes.
type Action string

const (
	ActionNavigate     Action = "navigate"
	ActionPickUp       Action = "pick_up"
	ActionSearchObject Action = "search_object"
	ActionFindObject   Action = "find_object"
	ActionDeliver      Action = "deliver"
	ActionFindPerson   Action = "find_person"
	ActionSearchPerson Action = "search_person"
	ActionUpdatePerson Action = "update_person"
)

// Directive is a structured request into the task engine. Which fields are
// required depends on the action; Validate reports the first missing one.
type Directive struct {
	Action   Action `json:"action"`
	Object   string `json:"object,omitempty"`
	Room     string `json:"room,omitempty"`
	Person   string `json:"person,omitempty"`
	Target   string `json:"target,omitempty"`
	Message  string `json:"message,omitempty"`
	MaxRooms int    `json:"max_rooms,omitempty"`
}

// Validate checks that every field the action requires is present. A failed
// validation is a user-facing structured error, never a crash.
func (d Directive) Validate() error {
	switch d.Action {
	case ActionNavigate:
		if d.Room == "" {
			return fmt.Errorf("directive %q requires a 'room' field", d.Action)
		}
	case ActionPickUp, ActionSearchObject, ActionFindObject, ActionDeliver:
		if d.Object == "" {
			return fmt.Errorf("directive %q requires an 'object' field", d.Action)
		}
	case ActionFindPerson, ActionSearchPerson:
		if d.Person == "" {
			return fmt.Errorf("directive %q requires a 'person' field", d.Action)
		}
	case ActionUpdatePerson:
		if d.Person == "" || d.Room == "" {
			return fmt.Errorf("directive %q requires 'person' and 'room' fields", d.Action)
		}
	default:
		return fmt.Errorf("unknown directive action %q", d.Action)
	}
	return nil
}
