// Package collection owns the in-memory card and deck collections and is the
// only code that mutates them. Every exported operation leaves the
// collections satisfying these invariants:
//
//   - a card's DeckIDs only reference existing decks, and never the
//     Uncategorized deck (that membership is derived);
//   - a deck's SubDeckIDs are exactly the decks whose ParentID is that deck;
//   - a card is never in both the Learning and the Learnt deck, and its
//     membership there matches its counters.
//
// Deck contents are never stored on the deck. CardsInDeck projects them from
// the card collection on every call.
//
// An Engine is not safe for concurrent use. The owner serializes calls.
package collection
