// Package retrieval federates knowledge-base lookups over an external
// similarity-search capability: it fans a query out as several variants,
// deduplicates what comes back, and biases ranking toward authoritative
// documents for rules-related questions.
package retrieval

import (
	"context"
	"log"
	"strings"

	"robot/models"
)

// NoContext is the sentinel returned when no relevant documents exist.
// An empty knowledge base is a normal outcome, not an error.
const NoContext = "No relevant context found."

// Searcher is the similarity-search capability the federator consumes. The
// vector index itself (embedding, nearest-neighbor search) lives behind it.
type Searcher interface {
	Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.Document, error)
}

// canonicalTokens maps localized spellings to the canonical English
// vocabulary the knowledge base is written in. Matched against whole tokens
// only, so canonical words pass through untouched.
var canonicalTokens = map[string]string{
	"robô":         "robot",
	"robo":         "robot",
	"robôs":        "robots",
	"robos":        "robots",
	"navegação":    "navigation",
	"navegacao":    "navigation",
	"competição":   "competition",
	"competicao":   "competition",
	"tarefa":       "task",
	"tarefas":      "tasks",
	"manipulação":  "manipulation",
	"manipulacao":  "manipulation",
	"percepção":    "perception",
	"percepcao":    "perception",
	"localização":  "localization",
	"localizacao":  "localization",
	"mapeamento":   "mapping",
	"planejamento": "planning",
	"comando":      "command",
	"comandos":     "commands",
	"regra":        "rule",
	"regras":       "rules",
}

// rulesIndicators mark queries that should see rulebook documents first.
var rulesIndicators = []string{
	"rule", "regra", "competition", "competição",
	"task", "tarefa", "score", "pontuação",
}

// QueryVariants returns the normalized form of a query followed by the raw
// original. Scan order matters downstream: the normalized variant's results
// win dedup ties.
func QueryVariants(query string) []string {
	tokens := strings.Fields(strings.ToLower(query))
	for i, token := range tokens {
		if canonical, ok := canonicalTokens[token]; ok {
			tokens[i] = canonical
		}
	}
	return []string{strings.Join(tokens, " "), query}
}

// Federator merges multi-variant search results into one ranked context block.
type Federator struct {
	searcher Searcher
}

// NewFederator wraps a search capability.
func NewFederator(searcher Searcher) *Federator {
	return &Federator{searcher: searcher}
}

// Context retrieves up to k documents relevant to the query and returns
// their bodies concatenated, or the NoContext sentinel. Errors from the
// search capability degrade to the sentinel; nothing propagates.
func (f *Federator) Context(ctx context.Context, query string, k int) string {
	var pool []models.Document
	seen := make(map[string]bool)

	for _, variant := range QueryVariants(query) {
		results, err := f.searcher.Search(ctx, variant, k, nil)
		if err != nil {
			log.Printf("[RETRIEVAL_ERROR] Search failed for variant %q: %v", variant, err)
			continue
		}
		for _, doc := range results {
			if !seen[doc.Content] {
				pool = append(pool, doc)
				seen[doc.Content] = true
			}
		}
	}

	// If no variant produced anything, fall back to one raw-query search.
	if len(pool) == 0 {
		results, err := f.searcher.Search(ctx, query, k, nil)
		if err != nil {
			log.Printf("[RETRIEVAL_ERROR] Raw-query fallback failed: %v", err)
			return NoContext
		}
		pool = results
	}

	final := rankPool(query, pool, k)
	return joinDocuments(final)
}

// WithFilter bypasses variant ranking entirely: one raw-query search
// constrained to a document class. On failure it degrades to the unfiltered
// Context path.
func (f *Federator) WithFilter(ctx context.Context, query, docClass string, k int) string {
	results, err := f.searcher.Search(ctx, query, k, map[string]string{"class": docClass})
	if err != nil {
		log.Printf("[RETRIEVAL_ERROR] Filtered search failed: %v", err)
		return f.Context(ctx, query, k)
	}
	return joinDocuments(results)
}

// rankPool puts rulebook documents first when the query looks like a rules
// or competition question, otherwise preserves discovery order.
func rankPool(query string, pool []models.Document, k int) []models.Document {
	queryLower := strings.ToLower(query)
	rulesQuery := false
	for _, indicator := range rulesIndicators {
		if strings.Contains(queryLower, indicator) {
			rulesQuery = true
			break
		}
	}

	var final []models.Document
	if rulesQuery {
		var rulebook, other []models.Document
		for _, doc := range pool {
			if strings.Contains(doc.Class, models.DocClassRulebook) {
				rulebook = append(rulebook, doc)
			} else {
				other = append(other, doc)
			}
		}
		final = append(rulebook, other...)
	} else {
		final = pool
	}

	if len(final) > k {
		final = final[:k]
	}
	return final
}

func joinDocuments(docs []models.Document) string {
	var bodies []string
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) != "" {
			bodies = append(bodies, doc.Content)
		}
	}
	if len(bodies) == 0 {
		return NoContext
	}
	return strings.Join(bodies, "\n\n")
}
