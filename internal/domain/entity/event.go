package entity

import "time"

const (
	OperationLoad      = "load"
	OperationAddToCart = "add_to_cart"
	OperationIncrement = "increment"
	OperationDecrement = "decrement"
	OperationClear     = "clear"
)

// CartEvent is emitted after a committed mutation and carries the full snapshot.
// Version increases by one per commit, so consumers can drop stale events.
type CartEvent struct {
	EventID    string     `json:"event_id"`
	Version    uint64     `json:"version"`
	Operation  string     `json:"operation"`
	Items      []LineItem `json:"items"`
	Summary    Summary    `json:"summary"`
	OccurredAt time.Time  `json:"occurred_at"`
}
