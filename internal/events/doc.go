// Package events provides the library's change notifications.
//
// The store façade emits an Event after loading, after each successful save
// and when a save fails. Hosts register an EventHandler to surface those, for
// example to warn the user that the last change was not persisted.
//
// The primary components are:
// - Event: a typed notification with a JSON payload
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
package events
