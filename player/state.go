// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package player

// State is the lifecycle state of a Session.
type State int

const (
	// StateIdle is the state before Start. No buffers are allocated.
	StateIdle State = iota

	// StateRunning holds buffers and an active ticker.
	StateRunning

	// StateStopped is terminal.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
