// Package store defines the persistence gateway the library mirrors its
// collections to. A gateway is a key/value store of opaque byte payloads;
// encoding and schema upgrades happen above it, in the codec package.
package store
