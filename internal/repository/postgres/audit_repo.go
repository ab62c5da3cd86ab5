package postgres

import (
	"context"
	"fmt"

	"github.com/rohit/cms-editorial/internal/domain/models"
)

// AuditRepository implements repository.AuditRepository for PostgreSQL
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts an audit event
func (r *AuditRepository) Create(ctx context.Context, e *models.AuditEvent) error {
	var metadata *string
	if len(e.Metadata) > 0 {
		s := string(e.Metadata)
		metadata = &s
	}

	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO audit_logs (
			id, user_id, action, module, endpoint, method, status_code,
			ip_address, user_agent, message, level, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, e.ID, e.UserID, e.Action, e.Module, e.Endpoint, e.Method, e.StatusCode,
		e.IPAddress, e.UserAgent, e.Message, string(e.Level), metadata, e.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}
