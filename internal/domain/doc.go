// Package domain contains the core entities of the deck engine: cards, decks,
// the reserved system decks and the errors shared by every layer above it.
// It has no knowledge of storage formats or delivery mechanisms.
package domain
