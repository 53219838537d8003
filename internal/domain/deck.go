package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Reserved names of the system decks.
const (
	UncategorizedDeckName = "Uncategorized"
	LearningDeckName      = "Learning"
	LearntDeckName        = "Learnt"
)

// SystemDeckNames lists the reserved deck names in creation order.
var SystemDeckNames = []string{UncategorizedDeckName, LearningDeckName, LearntDeckName}

// IsSystemDeckName reports whether name is one of the reserved deck names.
func IsSystemDeckName(name string) bool {
	return slices.Contains(SystemDeckNames, name)
}

// Deck is a named collection of cards. Membership is not stored on the deck;
// it is projected from Card.DeckIDs.
type Deck struct {
	ID         uuid.UUID
	Name       string
	ParentID   *uuid.UUID
	SubDeckIDs []uuid.UUID
	CreatedAt  time.Time
}

// NewDeck creates a deck with a fresh ID.
func NewDeck(name string, parentID *uuid.UUID) *Deck {
	d := &Deck{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if parentID != nil {
		p := *parentID
		d.ParentID = &p
	}
	return d
}

// IsSystem reports whether the deck is one of the protected system decks.
func (d *Deck) IsSystem() bool {
	return d.ParentID == nil && IsSystemDeckName(d.Name)
}

// IsTopLevel reports whether the deck has no parent.
func (d *Deck) IsTopLevel() bool {
	return d.ParentID == nil
}

// HasParent reports whether the deck's parent is parentID.
func (d *Deck) HasParent(parentID uuid.UUID) bool {
	return d.ParentID != nil && *d.ParentID == parentID
}

// Clone returns a deep copy of the deck.
func (d *Deck) Clone() *Deck {
	out := *d
	if d.ParentID != nil {
		p := *d.ParentID
		out.ParentID = &p
	}
	out.SubDeckIDs = slices.Clone(d.SubDeckIDs)
	return &out
}
