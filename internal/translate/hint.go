package translate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// shortTextRunes is the length under which the provider's auto-detection
// gets too little signal to be trusted, so we guess ourselves.
const shortTextRunes = 12

// Common Italian function words and greetings, matched whole-word and
// case-insensitively. Words shared with English ("no", "via") are left out.
var italianWords = []string{
	"ciao", "grazie", "prego", "amore", "tesoro", "bene", "benissimo",
	"buongiorno", "buonasera", "buonanotte", "come", "stai", "sei",
	"sono", "anche", "subito", "bella", "bello", "bacio", "baci",
	"ti", "amo", "sì", "si",
}

// sourceHint picks the source language sent to the provider. An explicit
// caller hint always wins, except "auto", which asks for automatic
// handling and is never a provider code. Short text is guessed by script
// and word list; longer text returns "" so the provider auto-detects.
func sourceHint(explicit, text string) string {
	if explicit != "" && !strings.EqualFold(explicit, "auto") {
		return strings.ToUpper(explicit)
	}
	trimmed := strings.TrimSpace(text)
	if !isShort(trimmed) {
		return ""
	}
	switch {
	case containsCyrillic(trimmed):
		return "RU"
	case looksItalian(trimmed):
		return "IT"
	}
	return "EN"
}

func isShort(text string) bool {
	return utf8.RuneCountInString(text) <= shortTextRunes || len(strings.Fields(text)) == 1
}

func containsCyrillic(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

func looksItalian(text string) bool {
	for _, field := range strings.Fields(text) {
		word := strings.ToLower(strings.TrimFunc(field, unicode.IsPunct))
		if lo.Contains(italianWords, word) {
			return true
		}
	}
	return false
}
