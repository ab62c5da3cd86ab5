// Package audit builds audit events and hands them to a Recorder.
package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohit/cms-editorial/internal/domain/models"
)

// Recorder accepts audit events. Record must not block the caller and must
// not report failures; durability is the recorder's concern.
type Recorder interface {
	Record(event models.AuditEvent)
}

// Nop discards every event
type Nop struct{}

func (Nop) Record(models.AuditEvent) {}

// RequestInfo is the transport metadata attached to events
type RequestInfo struct {
	RequestID string
	Endpoint  string
	Method    string
	IPAddress string
	UserAgent string
}

type requestInfoKey struct{}

// WithRequest stores request metadata on the context
func WithRequest(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// RequestFromContext returns the request metadata stored on ctx, if any
func RequestFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info, ok
}

// Action derives the action name from a verb and a resource, e.g. SUBMIT_ARTICLE
func Action(verb, resource string) string {
	return strings.ToUpper(verb) + "_" + strings.ToUpper(resource)
}

// Entry describes an operation outcome to be turned into an event
type Entry struct {
	UserID     *uuid.UUID
	Verb       string
	Resource   string
	Module     string
	StatusCode int
	Message    string
	Level      models.AuditLevel
	Metadata   map[string]interface{}
}

// NewEvent builds an event from entry and the request metadata on ctx.
// Metadata is redacted before encoding.
func NewEvent(ctx context.Context, e Entry) models.AuditEvent {
	event := models.AuditEvent{
		ID:         uuid.New(),
		UserID:     e.UserID,
		Action:     Action(e.Verb, e.Resource),
		Module:     e.Module,
		StatusCode: e.StatusCode,
		Message:    e.Message,
		Level:      e.Level,
		Timestamp:  time.Now().UTC(),
	}
	if event.Level == "" {
		event.Level = models.AuditLevelInfo
	}

	metadata := Sanitize(e.Metadata)
	if info, ok := RequestFromContext(ctx); ok {
		event.Endpoint = info.Endpoint
		event.Method = info.Method
		event.IPAddress = info.IPAddress
		event.UserAgent = info.UserAgent
		if info.RequestID != "" {
			if metadata == nil {
				metadata = map[string]interface{}{}
			}
			metadata["requestId"] = info.RequestID
		}
	}

	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			event.Metadata = b
		}
	}
	return event
}
