// Package player owns the single playback device and exposes normalized
// playback state.
//
// The [Device] interface is the signal contract: a device reports the small
// enumerated set of [Signal] values (playing, paused, buffering, ended) and
// the [Engine] maps each signal to exactly one status transition. Commands
// flow the other way (Load, Pause, Stop, Seek, SetVolume) and are never
// preempted; the device is the single point of truth for current status, so
// the last command wins.
//
// Status, position and duration are observable as channels that replay the
// latest known value to new subscribers, then stream changes. The position
// sampling loop ticks once per second and checks the paused/stopped state
// before emitting, so no stale "playing" positions escape after a pause.
//
// [BeepDevice] implements Device over faiface/beep and the system speaker;
// tests inject a fake implementing the same contract.
package player
