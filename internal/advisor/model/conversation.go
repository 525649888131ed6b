package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ConversationStore holds per-user conversation turns. Implementations
// absorb backend failures internally (degrading to process memory), so
// none of these operations can fail from the caller's point of view.
type ConversationStore interface {
	// History returns the stored turns for the user, oldest first.
	History(ctx context.Context, userID string) []*schema.Message

	// Append stores new turns, trimming to the configured cap.
	Append(ctx context.Context, userID string, turns ...*schema.Message)

	// Clear removes all stored turns for the user.
	Clear(ctx context.Context, userID string)

	// Degraded reports whether the durable backend has been abandoned.
	Degraded() bool
}

// Meta optionally accompanies a query with facts the caller already
// knows, so stage estimation does not depend on text detection.
type Meta struct {
	CropKey    string `json:"crop"`
	SowingDate string `json:"sowing_date"`
}
