// Package logging provides concrete implementations of the trackseed.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stdout (or any writer) with thread-safe output
//   - NewDiscardLogger: a ConsoleLogger bound to io.Discard (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
