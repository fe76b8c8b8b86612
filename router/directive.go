package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"robot/models"
	"robot/prompts"
)

// ExtractDirective turns a command utterance into a structured directive for
// the task engine. It asks the model for a JSON directive first and falls
// back to keyword extraction when the model is unavailable or emits garbage.
func (r *Router) ExtractDirective(ctx context.Context, utterance string) (models.Directive, error) {
	reply, err := r.generator.GenerateJSON(ctx, fmt.Sprintf(prompts.DirectivePrompt, utterance))
	if err == nil {
		if directive, ok := parseDirectiveReply(reply); ok {
			return directive, nil
		}
		log.Printf("[ROUTER] Could not parse directive reply, falling back to keywords: %q", reply)
	} else {
		log.Printf("[ROUTER_ERROR] Directive inference failed, falling back to keywords: %v", err)
	}

	return r.keywordDirective(utterance)
}

func parseDirectiveReply(reply string) (models.Directive, bool) {
	fragment, ok := extractJSONObject(reply)
	if !ok {
		return models.Directive{}, false
	}

	var directive models.Directive
	if err := json.Unmarshal([]byte(fragment), &directive); err != nil {
		return models.Directive{}, false
	}
	if err := directive.Validate(); err != nil {
		return models.Directive{}, false
	}
	return directive, true
}

// keywordDirective builds a directive from surface patterns alone. It covers
// the common phrasings; anything it cannot place is reported back to the
// user as not understood.
func (r *Router) keywordDirective(utterance string) (models.Directive, error) {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	if rest, ok := after(lower, "go to"); ok {
		return models.Directive{Action: models.ActionNavigate, Room: stripFiller(rest)}, nil
	}

	if rest, ok := after(lower, "pick up"); ok {
		return models.Directive{Action: models.ActionPickUp, Object: stripFiller(rest)}, nil
	}

	for _, pattern := range []string{"where is", "find", "locate"} {
		rest, ok := after(lower, pattern)
		if !ok {
			continue
		}
		subject := stripFiller(rest)
		if containsAny(subject, r.keywords.Objects) {
			return models.Directive{Action: models.ActionFindObject, Object: subject}, nil
		}
		return models.Directive{Action: models.ActionFindPerson, Person: subject}, nil
	}

	for _, verb := range []string{"bring", "get", "take", "deliver", "move"} {
		if rest, ok := after(lower, verb); ok {
			return models.Directive{Action: models.ActionFindObject, Object: stripFiller(rest)}, nil
		}
	}

	return models.Directive{}, fmt.Errorf("could not understand the command %q", utterance)
}

// after returns the text following the first occurrence of a pattern.
func after(text, pattern string) (string, bool) {
	idx := strings.Index(text, pattern)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(text[idx+len(pattern):]), true
}

// stripFiller removes leading articles and trailing punctuation from an
// extracted subject.
func stripFiller(subject string) string {
	subject = strings.TrimSpace(subject)
	for _, article := range []string{"the ", "a ", "an ", "my "} {
		if strings.HasPrefix(subject, article) {
			subject = strings.TrimSpace(subject[len(article):])
			break
		}
	}
	return strings.TrimRight(subject, "?!. ")
}
