package collection

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/learning"
)

// Engine is the authoritative in-memory card and deck store.
type Engine struct {
	cards    []*domain.Card
	decks    []*domain.Deck
	learning learning.Service
	logger   *slog.Logger
}

// NewEngine creates an empty engine holding only the system decks.
// If svc is nil the default learning service is used; if logger is nil,
// slog.Default() is used.
func NewEngine(svc learning.Service, logger *slog.Logger) *Engine {
	if svc == nil {
		svc = learning.NewDefaultService()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		learning: svc,
		logger:   logger.With(slog.String("component", "collection_engine")),
	}
	e.EnsureSystemDecks()
	return e
}

// Restore replaces both collections, typically with freshly decoded records,
// and reconciles all derived state. It reports whether reconciliation had to
// change anything, in which case the caller should persist the result.
func (e *Engine) Restore(cards []*domain.Card, decks []*domain.Deck) bool {
	e.cards = slices.DeleteFunc(slices.Clone(cards), func(c *domain.Card) bool { return c == nil })
	e.decks = slices.DeleteFunc(slices.Clone(decks), func(d *domain.Deck) bool { return d == nil })

	created := e.EnsureSystemDecks()
	changed := e.Rebuild()
	return created > 0 || changed
}

// EnsureSystemDecks creates any missing system deck and returns how many were created.
func (e *Engine) EnsureSystemDecks() int {
	created := 0
	for _, name := range domain.SystemDeckNames {
		if e.systemDeck(name) != nil {
			continue
		}
		e.decks = append(e.decks, domain.NewDeck(name, nil))
		created++
		e.logger.Debug("created system deck", slog.String("name", name))
	}
	return created
}

// Rebuild recomputes every piece of derived state from the primary fields:
// dangling or too deep parents and dangling deck references are dropped, sub-deck lists are
// recomputed, counters are clamped and Learning/Learnt membership is
// re-derived from the counters. It reports whether anything changed.
func (e *Engine) Rebuild() bool {
	changed := false

	for _, d := range e.decks {
		if d.ParentID != nil && (e.findDeck(*d.ParentID) == nil || *d.ParentID == d.ID) {
			d.ParentID = nil
			changed = true
		}
	}
	// Only one level of nesting exists: a deck under a sub-deck or under a
	// system deck is lifted to the top. This also breaks parent cycles.
	for _, d := range e.decks {
		if d.ParentID == nil {
			continue
		}
		if parent := e.findDeck(*d.ParentID); parent.ParentID != nil || parent.IsSystem() {
			d.ParentID = nil
			changed = true
		}
	}
	for _, d := range e.decks {
		subs := e.childIDs(d.ID)
		if !slices.Equal(subs, d.SubDeckIDs) {
			changed = true
		}
		d.SubDeckIDs = subs
	}

	uncategorized := e.systemDeck(domain.UncategorizedDeckName)
	for _, c := range e.cards {
		before := slices.Clone(c.DeckIDs)
		c.DeckIDs = slices.DeleteFunc(c.DeckIDs, func(id uuid.UUID) bool {
			return e.findDeck(id) == nil || (uncategorized != nil && id == uncategorized.ID)
		})

		a, s := c.Attempts, c.Successes
		c.NormalizeCounters()
		e.classify(c)

		if a != c.Attempts || s != c.Successes || !slices.Equal(before, c.DeckIDs) {
			changed = true
		}
	}

	if changed {
		e.logger.Info("reconciled collection state",
			slog.Int("card_count", len(e.cards)),
			slog.Int("deck_count", len(e.decks)))
	}
	return changed
}

// Cards returns copies of all cards in insertion order.
func (e *Engine) Cards() []*domain.Card {
	return cloneCards(e.cards)
}

// Card returns a copy of the card with the given id.
func (e *Engine) Card(id uuid.UUID) (*domain.Card, error) {
	c := e.findCard(id)
	if c == nil {
		return nil, domain.ErrCardNotFound
	}
	return c.Clone(), nil
}

// CardsByID returns copies of the cards with the given ids, skipping unknown ids.
func (e *Engine) CardsByID(ids []uuid.UUID) []*domain.Card {
	out := make([]*domain.Card, 0, len(ids))
	for _, id := range ids {
		if c := e.findCard(id); c != nil {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Decks returns copies of all decks in insertion order.
func (e *Engine) Decks() []*domain.Deck {
	return cloneDecks(e.decks)
}

// Deck returns a copy of the deck with the given id.
func (e *Engine) Deck(id uuid.UUID) (*domain.Deck, error) {
	d := e.findDeck(id)
	if d == nil {
		return nil, domain.ErrDeckNotFound
	}
	return d.Clone(), nil
}

// DeckByName returns a copy of the first deck whose name matches exactly.
func (e *Engine) DeckByName(name string) (*domain.Deck, bool) {
	for _, d := range e.decks {
		if d.Name == name {
			return d.Clone(), true
		}
	}
	return nil, false
}

// SystemDeck returns a copy of the named system deck.
func (e *Engine) SystemDeck(name string) (*domain.Deck, bool) {
	d := e.systemDeck(name)
	if d == nil {
		return nil, false
	}
	return d.Clone(), true
}

// CardsInDeck projects the deck's members from the card collection, ordered
// by creation time. The Uncategorized deck holds every card without user
// deck membership.
func (e *Engine) CardsInDeck(deckID uuid.UUID) ([]*domain.Card, error) {
	d := e.findDeck(deckID)
	if d == nil {
		return nil, domain.ErrDeckNotFound
	}

	var members []*domain.Card
	if d.IsSystem() && d.Name == domain.UncategorizedDeckName {
		for _, c := range e.cards {
			if !e.hasUserDeck(c) {
				members = append(members, c)
			}
		}
	} else {
		for _, c := range e.cards {
			if c.InDeck(deckID) {
				members = append(members, c)
			}
		}
	}

	out := cloneCards(members)
	slices.SortStableFunc(out, func(a, b *domain.Card) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.Term, b.Term))
	})
	return out, nil
}

// UserDeckNames returns the names of the user decks a card belongs to, in
// membership order. System decks are omitted.
func (e *Engine) UserDeckNames(card *domain.Card) []string {
	var names []string
	for _, id := range card.DeckIDs {
		if d := e.findDeck(id); d != nil && !d.IsSystem() {
			names = append(names, d.Name)
		}
	}
	return names
}

func (e *Engine) findCard(id uuid.UUID) *domain.Card {
	for _, c := range e.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (e *Engine) findDeck(id uuid.UUID) *domain.Deck {
	for _, d := range e.decks {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (e *Engine) systemDeck(name string) *domain.Deck {
	for _, d := range e.decks {
		if d.IsSystem() && d.Name == name {
			return d
		}
	}
	return nil
}

func (e *Engine) childIDs(parentID uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, d := range e.decks {
		if d.HasParent(parentID) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// hasUserDeck reports whether the card belongs to any non-system deck.
func (e *Engine) hasUserDeck(c *domain.Card) bool {
	for _, id := range c.DeckIDs {
		if d := e.findDeck(id); d != nil && !d.IsSystem() {
			return true
		}
	}
	return false
}

func cloneCards(cards []*domain.Card) []*domain.Card {
	out := make([]*domain.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

func cloneDecks(decks []*domain.Deck) []*domain.Deck {
	out := make([]*domain.Deck, len(decks))
	for i, d := range decks {
		out[i] = d.Clone()
	}
	return out
}
