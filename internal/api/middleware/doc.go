// Package middleware holds the HTTP middleware of the flashdeck API.
package middleware
