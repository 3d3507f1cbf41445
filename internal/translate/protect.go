package translate

import (
	"fmt"
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

// DefaultProtectedTerms are the names and endearments shielded from the
// translator when PROTECTED_TERMS is not configured.
var DefaultProtectedTerms = []string{
	"Omar", "Mila", "Milochka", "солнышко", "зайка", "tesoruccio",
}

// protectedPair is one ordered term -> placeholder binding. Pairs are held
// longest-term-first so an overlapping shorter term can never corrupt a
// longer one.
type protectedPair struct {
	term        string
	placeholder string
}

// Protector replaces configured literal terms with placeholder tokens
// before translation and restores them afterwards. Matching is an ordered,
// non-overlapping, leftmost-longest literal scan over an Aho-Corasick
// automaton; it is case-sensitive, like the terms it guards.
type Protector struct {
	matcher *goahocorasick.Machine
	pairs   []protectedPair
	byTerm  map[string]string
}

// NewProtector builds a protector for the given literal terms. Empty and
// duplicate terms are dropped.
func NewProtector(terms []string) (*Protector, error) {
	seen := make(map[string]struct{}, len(terms))
	ordered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		ordered = append(ordered, t)
	}
	// Longest term wins on overlap; ties keep configured order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return len([]rune(ordered[i])) > len([]rune(ordered[j]))
	})

	p := &Protector{byTerm: make(map[string]string, len(ordered))}
	for i, t := range ordered {
		ph := placeholder(i)
		p.pairs = append(p.pairs, protectedPair{term: t, placeholder: ph})
		p.byTerm[t] = ph
	}

	if len(p.pairs) == 0 {
		return p, nil
	}

	patterns := make([][]rune, len(ordered))
	for i, t := range ordered {
		patterns[i] = []rune(t)
	}
	// The underlying trie wants its keys sorted.
	sort.Slice(patterns, func(i, j int) bool {
		return string(patterns[i]) < string(patterns[j])
	})

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build protected-term matcher: %w", err)
	}
	p.matcher = m
	return p, nil
}

// Protect substitutes every occurrence of each protected term with its
// placeholder token.
func (p *Protector) Protect(text string) string {
	if p.matcher == nil || text == "" {
		return text
	}
	runes := []rune(text)
	spans := p.matcher.MultiPatternSearch(runes, false)
	if len(spans) == 0 {
		return text
	}

	// Leftmost first, and on equal start the longest match.
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Pos != spans[j].Pos {
			return spans[i].Pos < spans[j].Pos
		}
		return len(spans[i].Word) > len(spans[j].Word)
	})

	var b strings.Builder
	next := 0
	for _, span := range spans {
		if span.Pos < next {
			continue // overlaps a match already taken
		}
		b.WriteString(string(runes[next:span.Pos]))
		b.WriteString(p.byTerm[string(span.Word)])
		next = span.Pos + len(span.Word)
	}
	b.WriteString(string(runes[next:]))
	return b.String()
}

// Unprotect restores all protected terms. Placeholders are unique, so
// restoration order does not matter.
func (p *Protector) Unprotect(text string) string {
	for _, pair := range p.pairs {
		text = strings.ReplaceAll(text, pair.placeholder, pair.term)
	}
	return text
}

// placeholder yields a token the provider passes through untouched. The
// bracket runes do not occur in natural text, so round-tripping is lossless
// unless user input contains the placeholder verbatim.
func placeholder(i int) string {
	return fmt.Sprintf("⟦%d⟧", i)
}
