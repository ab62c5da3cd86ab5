package mocks

import (
	"sync"

	"github.com/rohit/cms-editorial/internal/domain/models"
)

// RecordingRecorder is an audit.Recorder that keeps every event in memory
type RecordingRecorder struct {
	mu     sync.Mutex
	events []models.AuditEvent
}

func NewRecordingRecorder() *RecordingRecorder {
	return &RecordingRecorder{}
}

func (r *RecordingRecorder) Record(event models.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *RecordingRecorder) Events() []models.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditEvent(nil), r.events...)
}

// Last returns the most recent event, or the zero event when none were recorded
func (r *RecordingRecorder) Last() models.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return models.AuditEvent{}
	}
	return r.events[len(r.events)-1]
}
