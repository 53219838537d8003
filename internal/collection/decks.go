package collection

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CreateDeck creates a top-level deck, or a sub-deck when parentID is set.
// Names are trimmed and must be non-empty and unused by any other deck.
// Only one level of nesting is supported and system decks take no children.
func (e *Engine) CreateDeck(name string, parentID *uuid.UUID) (*domain.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyDeckName
	}
	if e.nameTaken(name, uuid.Nil) {
		return nil, domain.ErrDuplicateDeckName
	}

	var parent *domain.Deck
	if parentID != nil {
		parent = e.findDeck(*parentID)
		if parent == nil {
			return nil, domain.ErrDeckNotFound
		}
		if parent.IsSystem() {
			return nil, domain.ErrProtectedDeck
		}
		if !parent.IsTopLevel() {
			return nil, domain.ErrNestingTooDeep
		}
	}

	deck := domain.NewDeck(name, parentID)
	e.decks = append(e.decks, deck)
	if parent != nil {
		parent.SubDeckIDs = append(parent.SubDeckIDs, deck.ID)
	}

	e.logger.Debug("created deck",
		slog.String("deck_id", deck.ID.String()),
		slog.Bool("sub_deck", parent != nil))
	return deck.Clone(), nil
}

// RenameDeck renames a user deck. System decks, blank names, unchanged names
// and names used by another deck are refused.
func (e *Engine) RenameDeck(id uuid.UUID, newName string) (*domain.Deck, error) {
	deck := e.findDeck(id)
	if deck == nil {
		return nil, domain.ErrDeckNotFound
	}
	if deck.IsSystem() {
		return nil, domain.ErrProtectedDeck
	}

	newName = strings.TrimSpace(newName)
	switch {
	case newName == "":
		return nil, domain.ErrEmptyDeckName
	case newName == deck.Name:
		return nil, domain.ErrSameDeckName
	case e.nameTaken(newName, deck.ID):
		return nil, domain.ErrDuplicateDeckName
	}

	deck.Name = newName
	return deck.Clone(), nil
}

// DeleteDeck deletes a user deck together with all of its sub-decks,
// depth-first. Every deleted id is removed from every card and the deck is
// unlinked from its parent. It returns the deleted ids, children first.
func (e *Engine) DeleteDeck(id uuid.UUID) ([]uuid.UUID, error) {
	deck := e.findDeck(id)
	if deck == nil {
		return nil, domain.ErrDeckNotFound
	}
	if deck.IsSystem() {
		return nil, domain.ErrProtectedDeck
	}

	var deleted []uuid.UUID
	e.deleteDeck(deck, map[uuid.UUID]bool{}, &deleted)

	e.logger.Debug("deleted deck",
		slog.String("deck_id", id.String()),
		slog.Int("deleted_count", len(deleted)))
	return deleted, nil
}

func (e *Engine) deleteDeck(deck *domain.Deck, seen map[uuid.UUID]bool, deleted *[]uuid.UUID) {
	seen[deck.ID] = true
	for _, childID := range e.childIDs(deck.ID) {
		if child := e.findDeck(childID); child != nil && !seen[childID] {
			e.deleteDeck(child, seen, deleted)
		}
	}

	for _, c := range e.cards {
		c.RemoveDeck(deck.ID)
	}
	if deck.ParentID != nil {
		if parent := e.findDeck(*deck.ParentID); parent != nil {
			parent.SubDeckIDs = slices.DeleteFunc(parent.SubDeckIDs, func(sid uuid.UUID) bool {
				return sid == deck.ID
			})
		}
	}
	e.decks = slices.DeleteFunc(e.decks, func(d *domain.Deck) bool { return d.ID == deck.ID })
	*deleted = append(*deleted, deck.ID)
}

// TopLevelDecks returns the decks without a parent, sorted by name.
func (e *Engine) TopLevelDecks() []*domain.Deck {
	var top []*domain.Deck
	for _, d := range e.decks {
		if d.IsTopLevel() {
			top = append(top, d)
		}
	}
	return sortedByName(top)
}

// SubDecks returns the children of a deck, sorted by name.
func (e *Engine) SubDecks(parentID uuid.UUID) ([]*domain.Deck, error) {
	if e.findDeck(parentID) == nil {
		return nil, domain.ErrDeckNotFound
	}
	var subs []*domain.Deck
	for _, d := range e.decks {
		if d.HasParent(parentID) {
			subs = append(subs, d)
		}
	}
	return sortedByName(subs), nil
}

// HierarchicalDecks returns top-level decks sorted by name, each immediately
// followed by its own sub-decks sorted by name.
func (e *Engine) HierarchicalDecks() []*domain.Deck {
	var out []*domain.Deck
	for _, top := range e.TopLevelDecks() {
		out = append(out, top)
		subs, _ := e.SubDecks(top.ID)
		out = append(out, subs...)
	}
	return out
}

// nameTaken reports whether any deck other than except uses name exactly.
func (e *Engine) nameTaken(name string, except uuid.UUID) bool {
	return slices.ContainsFunc(e.decks, func(d *domain.Deck) bool {
		return d.ID != except && d.Name == name
	})
}

func sortedByName(decks []*domain.Deck) []*domain.Deck {
	out := cloneDecks(decks)
	slices.SortStableFunc(out, func(a, b *domain.Deck) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
