package retrieval

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"robot/models"
)

// fakeSearcher maps exact queries to canned results and records calls.
type fakeSearcher struct {
	results map[string][]models.Document
	err     error
	queries []string
	filters []map[string]string
}

func (s *fakeSearcher) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.Document, error) {
	s.queries = append(s.queries, query)
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return nil, s.err
	}
	docs := s.results[query]
	if len(docs) > k {
		docs = docs[:k]
	}
	return docs, nil
}

func TestQueryVariants(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			"localized terms canonicalized",
			"regras de navegação do robô",
			[]string{"rules de navigation do robot", "regras de navegação do robô"},
		},
		{
			"english passes through lowered",
			"Robot Navigation",
			[]string{"robot navigation", "Robot Navigation"},
		},
		{
			"canonical vocabulary never re-substituted",
			"robot robots rule",
			[]string{"robot robots rule", "robot robots rule"},
		},
		{
			"plural localized forms",
			"robôs e comandos",
			[]string{"robots e commands", "robôs e comandos"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QueryVariants(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("QueryVariants(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestContextDeduplicatesAcrossVariants(t *testing.T) {
	shared := models.Document{Content: "shared chunk", Class: "other"}
	searcher := &fakeSearcher{results: map[string][]models.Document{
		"robot navigation": {shared, {Content: "normalized only", Class: "other"}},
		"Robot Navigation": {shared, {Content: "raw only", Class: "other"}},
	}}

	got := NewFederator(searcher).Context(context.Background(), "Robot Navigation", 4)

	if strings.Count(got, "shared chunk") != 1 {
		t.Errorf("shared content duplicated in %q", got)
	}
	// Normalized variant is scanned first, so its unique result precedes
	// the raw variant's.
	if strings.Index(got, "normalized only") > strings.Index(got, "raw only") {
		t.Errorf("variant order wrong in %q", got)
	}
}

func TestContextRulebookPriority(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Document{
		"competition rules": {
			{Content: "general chunk", Class: "other"},
			{Content: "rulebook chunk", Class: models.DocClassRulebook},
		},
	}}

	got := NewFederator(searcher).Context(context.Background(), "competition rules", 4)

	if strings.Index(got, "rulebook chunk") > strings.Index(got, "general chunk") {
		t.Errorf("rulebook content not ranked first for rules query: %q", got)
	}
}

func TestContextPreservesDiscoveryOrderForPlainQueries(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Document{
		"household chores": {
			{Content: "general chunk", Class: "other"},
			{Content: "rulebook chunk", Class: models.DocClassRulebook},
		},
	}}

	got := NewFederator(searcher).Context(context.Background(), "household chores", 4)

	if strings.Index(got, "general chunk") > strings.Index(got, "rulebook chunk") {
		t.Errorf("plain query reordered results: %q", got)
	}
}

func TestContextTruncatesToK(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Document{
		"robot tasks": {
			{Content: "one"}, {Content: "two"}, {Content: "three"},
		},
	}}

	got := NewFederator(searcher).Context(context.Background(), "robot tasks", 2)

	if strings.Contains(got, "three") {
		t.Errorf("result not truncated to k: %q", got)
	}
}

func TestContextEmptyReturnsSentinel(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Document{}}
	got := NewFederator(searcher).Context(context.Background(), "anything", 3)
	if got != NoContext {
		t.Errorf("Context = %q, want sentinel", got)
	}
}

func TestContextSearchErrorDegradesToSentinel(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("index offline")}
	got := NewFederator(searcher).Context(context.Background(), "anything", 3)
	if got != NoContext {
		t.Errorf("Context = %q, want sentinel on search failure", got)
	}
}

func TestWithFilterShortCircuits(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.Document{
		"manipulation": {{Content: "rulebook chunk", Class: models.DocClassRulebook}},
	}}

	got := NewFederator(searcher).WithFilter(context.Background(), "manipulation", "rulebook", 3)

	if !strings.Contains(got, "rulebook chunk") {
		t.Errorf("WithFilter = %q", got)
	}
	// One raw-query search, constrained to the class: no variant fan-out.
	if len(searcher.queries) != 1 {
		t.Errorf("WithFilter issued %d searches, want 1", len(searcher.queries))
	}
	if searcher.filters[0]["class"] != "rulebook" {
		t.Errorf("filter = %v, want class=rulebook", searcher.filters[0])
	}
}

func TestWithFilterFallsBackOnError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("index offline")}
	got := NewFederator(searcher).WithFilter(context.Background(), "manipulation", "rulebook", 3)
	if got != NoContext {
		t.Errorf("WithFilter = %q, want sentinel after fallback", got)
	}
}
