// Package models defines the domain entities for the local media library.
//
// The package contains two categories of types:
//
// 1. Persistent entities backed by the media store:
//   - [Track] : Track metadata with resolved payload handles
//   - [Payload] : Raw audio or cover bytes keyed by the owning track ID
//
// 2. State slices consumed by presentation:
//   - [LibraryState] : Ordered track collection, loading flag, last error, focused track
//   - [PlayerState] : Playback status, position, duration, volume, loaded track
//
// Field constraints live on [Track.Validate] and are checked at the command
// boundary before anything reaches the store.
package models
