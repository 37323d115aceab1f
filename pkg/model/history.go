package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryID string

// NewHistoryID generates a new time-ordered HistoryID (UUIDv7)
func NewHistoryID() HistoryID {
	return HistoryID(uuid.Must(uuid.NewV7()).String())
}

// HistoryItem is one completed cast. It is created once and never mutated.
type HistoryItem struct {
	ID        HistoryID `json:"id" yaml:"id"`
	Timestamp int64     `json:"timestamp" yaml:"timestamp"` // epoch milliseconds
	Input     Input     `json:"input" yaml:"input"`
	Result    Result    `json:"result" yaml:"result"`
}

// NewHistoryItem stamps a fresh item at now
func NewHistoryItem(input Input, result Result, now time.Time) *HistoryItem {
	return &HistoryItem{
		ID:        NewHistoryID(),
		Timestamp: now.UnixMilli(),
		Input:     input,
		Result:    result,
	}
}

// CreatedAt converts Timestamp back to a time.Time
func (h *HistoryItem) CreatedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}
