package search

import (
	"slices"
	"strings"
)

// Document is anything the ranker can score against a query.
type Document interface {
	SearchName() string
	SearchDescription() string
}

// Rank returns items re-ordered by match quality against rawQuery: a name
// containing the query first, then a name starting with it, then a
// description containing it. The sort is stable, so the catalog order
// survives among equal matches. A blank query or empty input is returned
// unchanged. The input slice is not modified.
func Rank[T Document](items []T, rawQuery string) []T {
	q := Normalize(rawQuery)
	if q == "" || len(items) == 0 {
		return items
	}

	type scored struct {
		item  T
		score int
	}
	ranked := make([]scored, len(items))
	for i, it := range items {
		ranked[i] = scored{item: it, score: matchScore(it, q)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return b.score - a.score
	})

	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

// matchScore packs the three match signals into one comparable number with
// name containment as the most significant bit.
func matchScore(d Document, q string) int {
	name := Normalize(d.SearchName())
	desc := Normalize(d.SearchDescription())

	score := 0
	if strings.Contains(name, q) {
		score |= 4
	}
	if strings.HasPrefix(name, q) {
		score |= 2
	}
	if strings.Contains(desc, q) {
		score |= 1
	}
	return score
}
