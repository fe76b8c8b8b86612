package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"robot/llm"
	"robot/memory"
)

func TestUtteranceHandler(t *testing.T) {
	gen := &fakeGenerator{
		jsonReply: `{"type": "conversation"}`,
		textReply: "Hello! Ready to help around the house.",
	}
	assistant, _ := newTestAssistant(gen, nil)

	req := httptest.NewRequest(http.MethodPost, "/utterance",
		strings.NewReader(`{"message": "hi robot"}`))
	w := httptest.NewRecorder()
	assistant.UtteranceHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp UtteranceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Intent != "conversation" {
		t.Errorf("intent = %q, want conversation", resp.Intent)
	}
	if resp.Reply != "Hello! Ready to help around the house." {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestUtteranceHandlerRejectsBadRequests(t *testing.T) {
	assistant, _ := newTestAssistant(&fakeGenerator{err: llm.ErrUnavailable}, nil)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"malformed JSON", http.MethodPost, "{not json", http.StatusBadRequest},
		{"missing message", http.MethodPost, "{}", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/utterance", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			assistant.UtteranceHandler(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestPeopleHandler(t *testing.T) {
	mem := memory.New()
	mem.RecordPerson("Ana", "bedroom")

	req := httptest.NewRequest(http.MethodGet, "/people", nil)
	w := httptest.NewRecorder()
	PeopleHandler(mem)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp PeopleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.People) != 1 || resp.People[0].Name != "Ana" || resp.People[0].LastRoom != "bedroom" {
		t.Errorf("people = %+v", resp.People)
	}
}
