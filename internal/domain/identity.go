package domain

import (
	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// NewRequestID generates the opaque identifier a client uses to poll
// progress when it did not supply one of its own. KSUIDs sort
// chronologically, which keeps history listings in insertion order.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewTempID generates the unique on-disk filename stem for one session.
// No other session may produce a file with this prefix.
func NewTempID() string {
	return uuid.New().String()
}
