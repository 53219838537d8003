// Package service contains the Library, the single entry point hosts use to
// work with a card collection.
//
// A Library composes the collection engine, the learning statistics engine,
// the record codec and the CSV transfer codec on top of a store.Gateway:
//
//   - Load reads the three records, decodes them through the schema chain,
//     merges the legacy card-status table, reconciles derived state and
//     writes the upgraded records back when anything changed.
//   - Every mutation is applied in memory first and then mirrored to the
//     gateway. A failed save is logged, emitted as an event and returned as
//     ErrPersistFailed; the in-memory change stays applied.
//
// Library methods are safe for concurrent use; calls are serialised.
package service
