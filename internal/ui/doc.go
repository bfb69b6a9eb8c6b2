// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI renders exclusively from the two state slices produced by the
// dispatcher: a track list from [models.LibraryState] and a now-playing
// footer from [models.PlayerState]. User input is translated into commands
// dispatched through the synchronization layer; the UI never calls the media
// store or the playback engine directly.
//
// Snapshots flow through a channel from [state.Dispatcher.Subscribe],
// re-armed after every message in the same way the transfer progress channel
// works in the CLI.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, space, s, +/-,
// left/right, d, q) with contextual help via charmbracelet/bubbles/help.
package ui
