// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// The database URL is read from FLASHDECK_TEST_DB_URL, falling back to
// DATABASE_URL. When neither is set the calling test is skipped, except in CI
// where a missing database is a configuration error and the test fails.
//
// Basic usage:
//
//	func TestSomething(t *testing.T) {
//		s := testdb.OpenPostgres(t)
//		// s is empty and closed automatically when the test ends
//	}
package testdb
