// Package sqlite provides the on-device persistence gateway: a single
// records table in a SQLite file holding one payload per record key.
package sqlite
