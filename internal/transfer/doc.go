// Package transfer implements the CSV exchange format used to import and
// export cards.
//
// Columns are positional. The header row is descriptive only and is skipped on
// import without validation. Fields containing a comma, a double quote or a
// line break are quoted with embedded quotes doubled.
package transfer
