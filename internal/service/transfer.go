package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/transfer"
)

// ImportOptions tunes ImportCSV.
type ImportOptions struct {
	// TargetDeckID receives rows whose Decks column names no user deck.
	TargetDeckID *uuid.UUID
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	// Imported counts rows that became cards.
	Imported int
	// Errors holds one "line N: ..." message per rejected row or deck, in line order.
	Errors []string
	// CreatedDecks names the decks created for unknown deck names.
	CreatedDecks []string
}

// ImportCSV creates one card per valid CSV row. Malformed rows are reported
// in the result and skipped; only an empty or header-only payload fails as a
// whole, with transfer.ErrEmptyImport. A persistence failure is returned
// together with the result of the applied import.
func (l *Library) ImportCSV(ctx context.Context, text string, opts ImportOptions) (*ImportResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, l.logger)

	var target []uuid.UUID
	if opts.TargetDeckID != nil {
		deck, err := l.engine.Deck(*opts.TargetDeckID)
		if err != nil {
			return nil, err
		}
		if deck.IsSystem() && deck.Name != domain.UncategorizedDeckName {
			return nil, domain.ErrProtectedDeck
		}
		if !deck.IsSystem() {
			target = []uuid.UUID{deck.ID}
		}
	}

	parsed, err := transfer.ParseImport(text)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	lineErrs := slices.Clone(parsed.Errors)

	for _, row := range parsed.Rows {
		deckIDs, errs := l.resolveDecks(row, result)
		lineErrs = append(lineErrs, errs...)
		if len(deckIDs) == 0 {
			deckIDs = target
		}

		card, err := l.engine.CreateCard(row.Fields, deckIDs)
		if err != nil {
			lineErrs = append(lineErrs, &transfer.LineError{Line: row.Line, Message: err.Error()})
			continue
		}
		if row.Attempts > 0 {
			if _, err := l.engine.SetStatistics(card.ID, row.Attempts, row.Successes); err != nil {
				lineErrs = append(lineErrs, &transfer.LineError{Line: row.Line, Message: err.Error()})
			}
		}
		result.Imported++
	}

	slices.SortStableFunc(lineErrs, func(a, b *transfer.LineError) int { return cmp.Compare(a.Line, b.Line) })
	for _, e := range lineErrs {
		result.Errors = append(result.Errors, e.Error())
	}

	log.Info("imported csv",
		slog.Int("imported", result.Imported),
		slog.Int("rejected", len(parsed.Errors)),
		slog.Int("created_decks", len(result.CreatedDecks)))

	if result.Imported == 0 && len(result.CreatedDecks) == 0 {
		return result, nil
	}
	return result, l.persist(ctx, "import_csv")
}

// resolveDecks maps a row's deck names to deck ids. System names are skipped
// and unknown names become new top-level decks; later rows find them by name.
func (l *Library) resolveDecks(
	row transfer.Row,
	result *ImportResult,
) ([]uuid.UUID, []*transfer.LineError) {
	var (
		ids  []uuid.UUID
		errs []*transfer.LineError
	)
	for _, name := range row.DeckNames {
		if domain.IsSystemDeckName(name) {
			continue
		}
		if deck, ok := l.engine.DeckByName(name); ok {
			ids = append(ids, deck.ID)
			continue
		}
		deck, err := l.engine.CreateDeck(name, nil)
		if err != nil {
			errs = append(errs, &transfer.LineError{
				Line:    row.Line,
				Message: fmt.Sprintf("cannot create deck %q: %v", name, err),
			})
			continue
		}
		result.CreatedDecks = append(result.CreatedDecks, deck.Name)
		ids = append(ids, deck.ID)
	}
	return ids, errs
}

// ExportCSV renders every card, or the members of one deck, as CSV.
func (l *Library) ExportCSV(deckID *uuid.UUID) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cards := l.engine.Cards()
	if deckID != nil {
		var err error
		if cards, err = l.engine.CardsInDeck(*deckID); err != nil {
			return "", err
		}
	}
	return transfer.Export(cards, l.engine), nil
}
