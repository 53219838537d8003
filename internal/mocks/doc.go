// Package mocks provides centralized mock implementations for testing.
//
// Mocks follow one pattern: a function field per interface method that,
// when set, overrides a simple in-memory default. Tests set only the
// function fields they need:
//
//	gw := mocks.NewMockGateway()
//	gw.SaveAllFn = func(ctx context.Context, records ...store.Record) error {
//	    return errors.New("disk full")
//	}
package mocks
