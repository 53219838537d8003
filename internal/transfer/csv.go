package transfer

import (
	"strings"
)

// Column positions of the exchange format.
const (
	ColWord = iota
	ColMeaning
	ColExample
	ColArticle
	ColPlural
	ColPastTense
	ColPastParticiple
	ColDecks
	ColAttempts
	ColSuccesses
	ColMastery
)

// Header is the descriptive first row written on export.
var Header = []string{
	"Word", "Meaning", "Example",
	"Article", "Plural", "Past Tense", "Past Participle",
	"Decks",
	"Attempts", "Successes", "Mastery",
}

// DeckSeparator joins deck names inside the Decks field.
const DeckSeparator = "; "

// EscapeField quotes a field when it contains a comma, a double quote or a
// line break, doubling any embedded quotes.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// JoinFields renders one CSV row.
func JoinFields(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	return strings.Join(escaped, ",")
}

// SplitFields splits one line into fields. Outside quotes a comma ends the
// field; inside quotes it is literal. A doubled quote inside a quoted section
// is a literal quote. Any other quote toggles quote mode, so an unterminated
// quote swallows the rest of the line.
func SplitFields(line string) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"' && inQuotes && i+1 < len(runes) && runes[i+1] == '"':
			field.WriteRune('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	return append(fields, field.String())
}
