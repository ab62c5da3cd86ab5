package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLevel is the severity of an audit event
type AuditLevel string

const (
	AuditLevelInfo  AuditLevel = "info"
	AuditLevelWarn  AuditLevel = "warn"
	AuditLevelError AuditLevel = "error"
)

// AuditEvent is one structured record of a mutating operation
type AuditEvent struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     *uuid.UUID      `json:"userId,omitempty" db:"user_id"`
	Action     string          `json:"action" db:"action"`
	Module     string          `json:"module" db:"module"`
	Endpoint   string          `json:"endpoint" db:"endpoint"`
	Method     string          `json:"method" db:"method"`
	StatusCode int             `json:"statusCode" db:"status_code"`
	IPAddress  string          `json:"ipAddress" db:"ip_address"`
	UserAgent  string          `json:"userAgent" db:"user_agent"`
	Message    string          `json:"message" db:"message"`
	Level      AuditLevel      `json:"level" db:"level"`
	Metadata   json.RawMessage `json:"metadata,omitempty" db:"metadata"`
	Timestamp  time.Time       `json:"timestamp" db:"created_at"`
}
