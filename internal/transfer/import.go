package transfer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// ErrEmptyImport is returned for a payload with no data rows.
var ErrEmptyImport = errors.New("transfer: no rows to import")

// Row is one successfully parsed data row.
type Row struct {
	// Line is the 1-based line number in the original payload.
	Line      int
	Fields    domain.CardFields
	DeckNames []string
	Attempts  int
	Successes int
}

// LineError describes a rejected row.
type LineError struct {
	Line    int
	Message string
}

// Error implements the error interface for LineError.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult holds the accepted rows and the per-line errors of an import.
type ParseResult struct {
	Rows   []Row
	Errors []*LineError
}

// Messages returns the error messages in line order.
func (r ParseResult) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Error()
	}
	return out
}

// ParseImport parses CSV text. The first non-empty record is the header and
// is skipped. Blank lines are skipped but still count towards line numbers.
// A quoted field may span lines; a quote left open until the end of the
// payload only affects its own line. Malformed rows are collected in
// ParseResult.Errors; only a payload without any data row fails as a whole.
func ParseImport(text string) (ParseResult, error) {
	var result ParseResult

	headerSeen := false
	dataLines := 0
	for _, rec := range splitRecords(text) {
		if strings.TrimSpace(rec.text) == "" {
			continue
		}
		if !headerSeen {
			headerSeen = true
			continue
		}
		dataLines++

		row, lineErr := parseRow(rec.line, SplitFields(rec.text))
		if lineErr != nil {
			result.Errors = append(result.Errors, lineErr)
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	if dataLines == 0 {
		return ParseResult{}, ErrEmptyImport
	}
	return result, nil
}

type record struct {
	// line is the 1-based line the record starts on.
	line int
	text string
}

// splitRecords cuts text into records at line breaks outside quotes.
func splitRecords(text string) []record {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	var records []record
	for i := 0; i < len(lines); {
		end := i
		open := quoteOpen(false, lines[i])
		for open && end+1 < len(lines) {
			end++
			open = quoteOpen(open, lines[end])
		}
		if open {
			end = i
		}
		records = append(records, record{line: i + 1, text: strings.Join(lines[i:end+1], "\n")})
		i = end + 1
	}
	return records
}

// quoteOpen reports whether quote mode is still on after s, given its state
// before s. Doubled quotes toggle twice and leave it unchanged.
func quoteOpen(open bool, s string) bool {
	return open != (strings.Count(s, `"`)%2 == 1)
}

func parseRow(lineNo int, fields []string) (Row, *LineError) {
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	word, meaning := get(ColWord), get(ColMeaning)
	if strings.TrimSpace(word) == "" || strings.TrimSpace(meaning) == "" {
		return Row{}, &LineError{Line: lineNo, Message: "missing word or meaning"}
	}

	attempts := parseCount(get(ColAttempts))
	successes := min(parseCount(get(ColSuccesses)), attempts)

	return Row{
		Line: lineNo,
		Fields: domain.CardFields{
			Term:    word,
			Meaning: meaning,
			Example: get(ColExample),
			Annotations: domain.Annotations{
				Article:        get(ColArticle),
				Plural:         get(ColPlural),
				PastTense:      get(ColPastTense),
				PastParticiple: get(ColPastParticiple),
			},
		},
		DeckNames: splitDeckNames(get(ColDecks)),
		Attempts:  attempts,
		Successes: successes,
	}, nil
}

// parseCount reads a non-negative counter; anything unparsable is zero.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func splitDeckNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ";") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
