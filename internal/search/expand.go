package search

import (
	"strings"
	"unicode/utf8"
)

// Expand derives the plural, singular and synonym variants of a query. The
// rules are a fixed heuristic, applied in order for every word longer than
// one character:
//
//   - a word ending in "s" longer than 3 also yields the word without the "s"
//   - a word ending in "es" longer than 4 also yields the word without the "es"
//   - a word not ending in "s" yields word+"s", plus word+"es" when it does
//     not end in a vowel
//   - a word found in Synonyms yields its whole group
//
// The normalized full term always seeds the result. The result keeps first
// insertion order and holds no duplicates; a blank term yields nil.
func Expand(term string) []string {
	normalized := Normalize(term)
	if normalized == "" {
		return nil
	}

	set := newOrderedSet()
	set.add(normalized)

	for _, word := range strings.Fields(normalized) {
		n := utf8.RuneCountInString(word)
		if n <= 1 {
			continue
		}

		if strings.HasSuffix(word, "s") && n > 3 {
			set.add(strings.TrimSuffix(word, "s"))
		}
		if strings.HasSuffix(word, "es") && n > 4 {
			set.add(strings.TrimSuffix(word, "es"))
		}
		if !strings.HasSuffix(word, "s") {
			set.add(word + "s")
			if !endsInVowel(word) {
				set.add(word + "es")
			}
		}

		for _, v := range Synonyms[word] {
			set.add(v)
		}
	}

	return set.items
}

func endsInVowel(word string) bool {
	r, _ := utf8.DecodeLastRuneInString(word)
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
