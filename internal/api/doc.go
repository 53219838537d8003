// Package api exposes the flashcard library over HTTP. It handles routing,
// request validation and response formatting, and translates library
// errors to status codes without leaking internal details.
package api
