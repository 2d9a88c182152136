// Package store provides the optional parse audit trail.
package store

import (
	"context"
	"time"
)

// ParseEvent records one parsing request and its outcome. Events are
// diagnostics only; order records themselves are never persisted.
type ParseEvent struct {
	ID         int64     `json:"id"`
	Endpoint   string    `json:"endpoint"`
	InputText  string    `json:"input_text"`
	Structured string    `json:"structured"`
	Algo       string    `json:"algo"`
	Confidence float64   `json:"confidence"`
	LLMPath    bool      `json:"llm_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditStore persists parse events.
type AuditStore interface {
	// SaveParseEvent appends one event to the trail.
	SaveParseEvent(ctx context.Context, event ParseEvent) error
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]ParseEvent, error)
	// Close releases the underlying resources.
	Close() error
}
