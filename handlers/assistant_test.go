package handlers

import (
	"context"
	"strings"
	"testing"

	"robot/conversation"
	"robot/engine"
	"robot/llm"
	"robot/memory"
	"robot/models"
	"robot/retrieval"
	"robot/router"
	"robot/telemetry"
	"robot/world"
)

// fakeGenerator scripts the model: one reply for plain generation, one for
// JSON-mode calls, or a hard failure for both.
type fakeGenerator struct {
	textReply string
	jsonReply string
	err       error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.textReply, g.err
}

func (g *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return g.jsonReply, g.err
}

type fakeSearcher struct {
	docs []models.Document
}

func (s *fakeSearcher) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.Document, error) {
	return s.docs, nil
}

func newTestAssistant(gen llm.Generator, docs []models.Document) (*Assistant, *memory.Memory) {
	mem := memory.New()
	house := world.New(world.Scenario{
		Name:   "test_house",
		People: []world.Person{{Name: "Ana", Location: "bedroom"}},
		Objects: []models.ObjectRecord{
			{Type: "cup", Room: "kitchen", WeightKg: 1.0},
		},
	})

	return &Assistant{
		Router:    router.New(gen, router.DefaultKeywords()),
		Engine:    engine.New(mem, house, nil, telemetry.LogPublisher{}),
		Federator: retrieval.NewFederator(&fakeSearcher{docs: docs}),
		Chat:      conversation.NewAgent(gen),
	}, mem
}

func TestRespondToCommandRunsDirective(t *testing.T) {
	gen := &fakeGenerator{
		jsonReply: `{"type": "command"}`,
	}
	assistant, mem := newTestAssistant(gen, nil)

	// The JSON reply doubles as directive extraction input; make the second
	// call return the directive by swapping the reply after classification
	// is exercised through a command-verb utterance instead.
	gen.jsonReply = `{"action": "search_object", "object": "cup"}`
	reply, intent := assistant.RespondTo(context.Background(), "pick up the cup")

	if intent != router.IntentCommand {
		t.Fatalf("intent = %v, want command", intent)
	}
	if !strings.Contains(reply, "cup") {
		t.Errorf("reply = %q, want cup search outcome", reply)
	}
	if mem.CurrentRoom() != models.HomeBase {
		t.Errorf("robot left at %q after task", mem.CurrentRoom())
	}
}

func TestRespondToKnowledgeQuery(t *testing.T) {
	docs := []models.Document{{Content: "Robots must not exceed the arena boundary.", Class: "rulebook"}}
	assistant, _ := newTestAssistant(&fakeGenerator{err: llm.ErrUnavailable}, docs)

	reply, intent := assistant.RespondTo(context.Background(), "what are the rules for navigation?")

	if intent != router.IntentKnowledgeQuery {
		t.Fatalf("intent = %v, want knowledge_query", intent)
	}
	if !strings.Contains(reply, "arena boundary") {
		t.Errorf("reply = %q, want retrieved context", reply)
	}
	if !strings.Contains(reply, "According to the competition rules") {
		t.Errorf("reply = %q, want rules framing", reply)
	}
}

func TestRespondToKnowledgeQueryEmptyBase(t *testing.T) {
	assistant, _ := newTestAssistant(&fakeGenerator{err: llm.ErrUnavailable}, nil)

	reply, _ := assistant.RespondTo(context.Background(), "what are the rules for navigation?")
	if !strings.Contains(reply, "No specific rules found") {
		t.Errorf("reply = %q, want empty-base sentence", reply)
	}
}

func TestRespondToConversation(t *testing.T) {
	gen := &fakeGenerator{
		jsonReply: `{"type": "conversation"}`,
		textReply: "I'm doing great, thanks for asking!",
	}
	assistant, _ := newTestAssistant(gen, nil)

	reply, intent := assistant.RespondTo(context.Background(), "how are you today?")
	if intent != router.IntentConversation {
		t.Fatalf("intent = %v, want conversation", intent)
	}
	if reply != "I'm doing great, thanks for asking!" {
		t.Errorf("reply = %q", reply)
	}
}

func TestRespondToCommandModeRedirect(t *testing.T) {
	// Classified as conversation, but the conversation agent flags it as a
	// command; the utterance then runs through directive extraction.
	gen := &fakeGenerator{
		jsonReply: `{"type": "conversation"}`,
		textReply: "I understand you want me to perform a command.",
	}
	assistant, _ := newTestAssistant(gen, nil)

	reply, _ := assistant.RespondTo(context.Background(), "grab the cup from the kitchen please")
	// jsonReply is not a directive, so the keyword fallback parses the
	// sentence; there is no parseable verb pattern for "grab", so the
	// assistant apologizes rather than crashing.
	if reply == conversation.CommandMode {
		t.Error("command-mode sentinel leaked to the user")
	}
}

func TestRespondToLearningRequestGetsApology(t *testing.T) {
	gen := &fakeGenerator{
		jsonReply: `{"type": "conversation"}`,
		textReply: "I understand you want me to perform a command.",
	}
	assistant, _ := newTestAssistant(gen, nil)

	reply, _ := assistant.RespondTo(context.Background(), "help me understand how to take derivatives")
	if !strings.Contains(reply, "cannot help with academic subjects") {
		t.Errorf("reply = %q, want academic apology", reply)
	}
}

func TestRespondToNeverErrorsWhenEverythingIsDown(t *testing.T) {
	assistant, _ := newTestAssistant(&fakeGenerator{err: llm.ErrUnavailable}, nil)

	utterances := []string{
		"hello there",
		"pick up the cup",
		"what are the rules?",
		"where is Ana?",
	}
	for _, utterance := range utterances {
		reply, _ := assistant.RespondTo(context.Background(), utterance)
		if reply == "" {
			t.Errorf("empty reply for %q", utterance)
		}
		if strings.Contains(reply, "unavailable") {
			t.Errorf("raw error leaked for %q: %q", utterance, reply)
		}
	}
}
