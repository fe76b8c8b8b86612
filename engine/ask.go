package engine

import (
	"context"
	"log"
	"strings"
)

// UnknownLocation is the canonical sentinel for "the user doesn't know".
// Seeing it means the caller must fall back to a physical search instead of
// trusting the answer.
const UnknownLocation = "__UNKNOWN_LOCATION__"

// unknownPhrases are the explicit "I don't know" variations we recognize.
var unknownPhrases = []string{
	"i don't know", "dont know", "don't know", "i dont know",
	"no idea", "not sure", "não sei", "dunno", "idk",
	"i have no idea", "no clue", "not a clue",
}

// searchVerbs in an answer also mean the user wants the robot to look for
// itself rather than being told a location.
var searchVerbs = []string{"find", "search", "look"}

// locativePhrases are the filler prefixes stripped from answers like
// "it's in the kitchen" before the remainder is treated as a room name.
var locativePhrases = []string{
	"it's in the ", "its in the ", "it is in the ",
	"in the ", "at the ", "on the ",
	"it's in ", "its in ", "it is in ",
	"in ", "at ", "on ",
}

// ask puts a question to the user and classifies don't-know answers into the
// UnknownLocation sentinel. A missing or failed user channel counts as not
// knowing, which pushes callers toward the physical-search fallback.
func (e *Engine) ask(ctx context.Context, question string) string {
	if e.user == nil {
		return UnknownLocation
	}

	answer, err := e.user.Ask(ctx, question)
	if err != nil {
		log.Printf("[TASK_ENGINE] User interaction failed: %v", err)
		return UnknownLocation
	}

	if IsUnknownAnswer(answer) {
		return UnknownLocation
	}
	return answer
}

// IsUnknownAnswer reports whether an answer means the user doesn't know.
func IsUnknownAnswer(answer string) bool {
	lower := strings.ToLower(strings.TrimSpace(answer))
	if lower == "" {
		return true
	}

	for _, phrase := range unknownPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, verb := range searchVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// isAffirmative recognizes yes answers to a verification offer.
func isAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y", "sim", "s", "yeah", "yep", "sure":
		return true
	}
	return false
}

// stripLocative removes filler like "it's in the" from a location answer,
// leaving just the room name.
func stripLocative(answer string) string {
	location := strings.ToLower(strings.TrimSpace(answer))
	for _, phrase := range locativePhrases {
		if strings.HasPrefix(location, phrase) {
			location = location[len(phrase):]
			break
		}
	}
	return strings.TrimSpace(location)
}
