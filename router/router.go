// Package router classifies user utterances and decides which part of the
// robot handles them: the task engine, the knowledge base, or small talk.
// Classification is a first-match-wins cascade: curated keyword gates, then
// a structured LLM call, then ordered text heuristics. The LLM is never
// trusted to be well-formed and never allowed to take the router down.
package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"robot/llm"
	"robot/prompts"
)

// Intent is the router's verdict for one utterance.
type Intent int

const (
	IntentConversation Intent = iota
	IntentCommand
	IntentKnowledgeQuery
)

// String returns the wire name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentCommand:
		return "command"
	case IntentKnowledgeQuery:
		return "knowledge_query"
	default:
		return "conversation"
	}
}

// Keywords holds every curated word list the cascade consults. The lists are
// configuration, not a trained classifier; deployments tune them per locale.
type Keywords struct {
	// Knowledge marks robotics/competition questions for the knowledge base.
	Knowledge []string
	// SelfCapability excludes "what can you do" style questions from the
	// knowledge gate; those are conversation.
	SelfCapability []string
	// Locate marks disguised person-search commands ("where is Ana").
	Locate []string
	// Info marks requests for information or help.
	Info []string
	// Command marks physical action verbs.
	Command []string
	// Learning marks academic/teaching requests that override command verbs.
	Learning []string
	// Objects, Rooms and RuleWords ground the disguised-command check: a
	// "where is X" about any of these is not a person search.
	Objects   []string
	Rooms     []string
	RuleWords []string
}

// DefaultKeywords returns the stock configuration.
func DefaultKeywords() Keywords {
	return Keywords{
		Knowledge: []string{
			"competition", "rulebook", "regulation", "scoring", "referee",
			"robocup", "arena", "penalty", "navigation rules",
			"manipulation rules", "what are the rules", "rules",
		},
		SelfCapability: []string{
			"what can you do", "can you pick", "can you bring", "can you take",
			"can you go", "what do you do", "are you able",
		},
		Locate:   []string{"where is", "find ", "locate "},
		Info:     []string{"help", "explain", "what", "how", "why", "when", "can you", "could you", "would you"},
		Command:  []string{"pick up", "go to", "bring", "take", "move", "get", "deliver"},
		Learning: []string{"help me", "explain", "understand", "learn", "teach"},
		Objects: []string{
			"cup", "mug", "bowl", "dish", "spoon", "fork", "knife", "napkin",
			"tray", "basket", "trash bag", "book", "bag", "coat", "apple",
			"paper", "teabag", "pen", "remote control", "newspaper", "umbrella",
		},
		Rooms: []string{
			"bedroom", "kitchen", "living room", "dining room", "bathroom",
			"hall", "hallway", "laundry room", "garage",
		},
		RuleWords: []string{"rule", "competition", "score", "task"},
	}
}

// Router classifies utterances. Pure: all dispatch happens in the caller.
type Router struct {
	generator llm.Generator
	keywords  Keywords
}

// New creates a router over an inference service with the given keyword
// configuration.
func New(generator llm.Generator, keywords Keywords) *Router {
	return &Router{generator: generator, keywords: keywords}
}

// Classify decides the intent of one utterance. It never returns an error:
// inference failures downgrade to the heuristic cascade, which always
// resolves to one of the three intents.
func (r *Router) Classify(ctx context.Context, utterance string) Intent {
	lower := strings.ToLower(utterance)

	// 1. Knowledge-base questions, unless the user is asking about the
	// robot's own capabilities.
	if containsAny(lower, r.keywords.Knowledge) && !containsAny(lower, r.keywords.SelfCapability) {
		return IntentKnowledgeQuery
	}

	// 2. Structured classification by the model.
	reply, err := r.generator.GenerateJSON(ctx, fmt.Sprintf(prompts.RouterPrompt, utterance))
	if err == nil {
		if intent, ok := parseIntentReply(reply); ok {
			return intent
		}
		log.Printf("[ROUTER] Could not parse model reply, falling back to heuristics: %q", reply)
	} else {
		log.Printf("[ROUTER_ERROR] Inference failed, falling back to heuristics: %v", err)
	}

	return r.heuristicIntent(lower)
}

// heuristicIntent is the ordered fallback cascade used when the model is
// unavailable or unparseable.
func (r *Router) heuristicIntent(lower string) Intent {
	// "Where is Ana?" is a disguised person-search command as long as the
	// thing being located is not an object, a room or a rules topic.
	if containsAny(lower, r.keywords.Locate) &&
		!containsAny(lower, r.keywords.Objects) &&
		!containsAny(lower, r.keywords.Rooms) &&
		!containsAny(lower, r.keywords.RuleWords) {
		return IntentCommand
	}

	if containsAny(lower, r.keywords.Info) && !strings.Contains(lower, "where") {
		return IntentConversation
	}

	if containsAny(lower, r.keywords.Command) && !containsAny(lower, r.keywords.Learning) {
		return IntentCommand
	}

	return IntentConversation
}

// parseIntentReply extracts a {"type": ...} object from the model's free
// text and maps it to an intent.
func parseIntentReply(reply string) (Intent, bool) {
	fragment, ok := extractJSONObject(reply)
	if !ok {
		return IntentConversation, false
	}

	var parsed struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(fragment), &parsed); err != nil {
		return IntentConversation, false
	}

	switch parsed.Type {
	case "command":
		return IntentCommand, true
	case "conversation":
		return IntentConversation, true
	default:
		return IntentConversation, false
	}
}

// extractJSONObject finds the first balanced {...} substring in free text.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
