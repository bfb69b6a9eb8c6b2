// Package store implements SQLite persistence for track metadata and binary
// payloads, plus the session-scoped resource handles derived from them.
//
// Three keyed collections share the track ID: tracks (metadata only),
// audio_files and cover_images (payload bytes). Every public [MediaStore]
// operation runs in exactly one transaction spanning the collections it
// touches, so partial writes are never observable.
//
// Key implementations:
//   - [MediaStore] : transactional CRUD over the three collections
//   - [HandleManager] : payload bytes -> revocable temp-file handles
//
// Handles live only for the current session. Callers release a track's
// handles when its payload is replaced or the track is deleted; the manager's
// Close drops whatever is left.
package store
