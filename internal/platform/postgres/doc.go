// Package postgres provides the PostgreSQL persistence gateway. It keeps one
// row per record key in the records table, maps driver errors onto the store
// error vocabulary and ships its schema as embedded goose migrations.
package postgres
