package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"userdir/internal/audit"
	"userdir/internal/domain"
)

// DirectoryService is the slice of the directory service the handlers use.
type DirectoryService interface {
	GetAll(ctx context.Context) ([]*domain.User, error)
	FilterByActive(ctx context.Context, isActive bool) ([]*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	Add(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, user *domain.User) error
}

// AuditService is the slice of the audit service the handlers use.
type AuditService interface {
	GetByID(ctx context.Context, id int64) (*domain.AuditEntry, error)
	ListPage(ctx context.Context, page int) (audit.Page, error)
	RecordCreate(ctx context.Context, actingUser string, user *domain.User) error
	RecordUpdate(ctx context.Context, actingUser string, changes []string, user *domain.User) error
	RecordDelete(ctx context.Context, actingUser string, userID int64, email string) error
}

// Handler wires the admin endpoints to the services.
type Handler struct {
	directory DirectoryService
	audit     AuditService
	logger    *slog.Logger
}

// NewHandler constructs a Handler with its dependencies.
func NewHandler(directory DirectoryService, auditSvc AuditService, logger *slog.Logger) *Handler {
	return &Handler{
		directory: directory,
		audit:     auditSvc,
		logger:    logger,
	}
}

// actingUserHeader names the caller-supplied actor identity for audit rows.
const actingUserHeader = "X-Acting-User"

// defaultActingUser is the documented fallback when the caller cannot supply
// the real actor. An explicit default, not an error.
const defaultActingUser = "Admin"

func actingUser(r *http.Request) string {
	if name := r.Header.Get(actingUserHeader); name != "" {
		return name
	}
	return defaultActingUser
}
