// Package hook runs external executables in response to flip events.
// Hooks live in a hooks directory, one subdirectory per hook with a
// hook.json manifest, and receive the event as JSON on stdin.
package hook

import (
	"encoding/json"
	"strings"
)

// Manifest describes a hook's metadata and event subscriptions.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	// Events lists the event kinds the hook wants: "flip" for every
	// flip, "flip:left" or "flip:right" for one hand only. Empty or
	// "*" means all events.
	Events []string `json:"events"`
}

// Request represents a flip event sent to a hook for execution.
type Request struct {
	Event     string  `json:"event"`
	Hand      string  `json:"hand"`
	Direction string  `json:"direction"`
	Velocity  float64 `json:"velocity"`
	Message   string  `json:"message"`
	Timestamp int64   `json:"timestamp"`
}

// Response represents the response from a hook execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook represents a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Subscribed reports whether the hook wants flip events for the given
// hand ("Left" or "Right").
func (h *Hook) Subscribed(hand string) bool {
	if len(h.Manifest.Events) == 0 {
		return true
	}
	key := "flip:" + strings.ToLower(hand)
	for _, e := range h.Manifest.Events {
		if e == "*" || e == "flip" || e == key {
			return true
		}
	}
	return false
}
