// Package codec converts card and deck collections to and from the persisted
// record format.
//
// Records are JSON. The current shapes are wrapped in a small envelope carrying
// a schema number; every historical shape is still accepted by the decoders,
// which try an ordered chain of schemas from newest to oldest and upgrade the
// first one that parses into the current domain types.
package codec
