package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceHint(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		text     string
		want     string
	}{
		{name: "explicit hint wins", explicit: "it", text: "Привет", want: "IT"},
		{name: "explicit hint skips heuristics for long text", explicit: "ru", text: "this is a very long english sentence", want: "RU"},
		{name: "auto is not a hint, heuristics apply", explicit: "auto", text: "Привет", want: "RU"},
		{name: "auto on long text lets provider detect", explicit: "AUTO", text: "I had a really long day at work today", want: ""},
		{name: "short cyrillic is russian", text: "Привет", want: "RU"},
		{name: "cyrillic beats word list", text: "Чао", want: "RU"},
		{name: "short italian greeting", text: "Ciao", want: "IT"},
		{name: "italian with punctuation", text: "Ciao!", want: "IT"},
		{name: "italian two words", text: "Ciao amore", want: "IT"},
		{name: "short latin default english", text: "Hello", want: "EN"},
		{name: "single long token is still short", text: "extraordinarily", want: "EN"},
		{name: "long text lets provider detect", text: "I had a really long day at work today", want: ""},
		{name: "twelve runes counts as short", text: "How are you?", want: "EN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sourceHint(tt.explicit, tt.text))
		})
	}
}

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "RU", want: "RU"},
		{in: "en-gb", want: "EN-GB"},
		{in: "it", want: "IT"},
		{in: "fr", want: "EN"},
		{in: "", want: "EN"},
		{in: " en-us ", want: "EN-US"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTarget(tt.in), "input %q", tt.in)
	}
}
