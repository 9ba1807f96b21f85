package chatbot

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s, strips diacritics and collapses whitespace, so
// "Estación Girón" and "estacion giron" compare equal.
func fold(s string) string {
	// Chained transformers keep state; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// utterance is a folded user input with its token view.
type utterance struct {
	text   string
	tokens []string
	padded string
}

func newUtterance(raw string) utterance {
	return fromFolded(fold(raw))
}

func fromFolded(folded string) utterance {
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != ','
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.Trim(f, ".,"); f != "" {
			tokens = append(tokens, f)
		}
	}
	return utterance{
		text:   folded,
		tokens: tokens,
		padded: " " + strings.Join(tokens, " ") + " ",
	}
}

// without blanks every occurrence of a folded phrase.
func (u utterance) without(phrase string) utterance {
	return fromFolded(strings.ReplaceAll(u.text, phrase, " "))
}

func (u utterance) hasToken(tok string) bool {
	for _, t := range u.tokens {
		if t == tok {
			return true
		}
	}
	return false
}

// keyword is a folded search term. Whole keywords must match complete tokens
// (or a complete run of tokens); the rest match anywhere in the text.
type keyword struct {
	text  string
	whole bool
}

func sub(s string) keyword { return keyword{text: s} }
func word(s string) keyword { return keyword{text: s, whole: true} }

func (k keyword) in(u utterance) bool {
	if k.whole {
		return strings.Contains(u.padded, " "+k.text+" ")
	}
	return strings.Contains(u.text, k.text)
}

func anyIn(u utterance, kws []keyword) bool {
	for _, k := range kws {
		if k.in(u) {
			return true
		}
	}
	return false
}
