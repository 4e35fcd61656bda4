package entity

import "time"

// Event describes one processed command; it is published to spectators.
type Event struct {
	Command string    `json:"command"`
	Outcome string    `json:"outcome"`
	Winner  string    `json:"winner,omitempty"`
	Board   string    `json:"board"`
	At      time.Time `json:"at"`
}
