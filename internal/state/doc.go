// Package state implements the synchronization layer between commands and
// the two observable state slices.
//
// Commands ([Command] variants) are dispatched by presentation; the
// [Dispatcher] invokes the media store and the playback engine and turns
// every asynchronous completion into exactly one [Outcome]. A single
// goroutine folds outcomes into [models.LibraryState] and
// [models.PlayerState] in completion order through the pure functions
// [FoldLibrary] and [FoldPlayer]; outcomes a fold does not recognize leave
// the slice unchanged.
//
// Command handlers never mutate state directly, and validation failures are
// caught at the command boundary before anything reaches the store.
package state
