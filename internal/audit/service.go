// Package audit produces and serves the append-only change history for
// users. Every user mutation that flows through the admin API is paired
// with exactly one entry written here.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"userdir/internal/audit/metrics"
	"userdir/internal/domain"
	"userdir/internal/store"
)

// Service writes and reads audit entries. It never updates or deletes an
// entry; the trail is append-only by construction.
type Service struct {
	entries store.Store[*domain.AuditEntry]
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// New constructs the audit service. Metrics may be nil in tests.
func New(entries store.Store[*domain.AuditEntry], logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		entries: entries,
		logger:  logger,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetAll returns every entry in the trail, unordered at this layer.
func (s *Service) GetAll(ctx context.Context) ([]*domain.AuditEntry, error) {
	return s.entries.GetAll(ctx)
}

// GetByID returns one entry or sentinel.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.AuditEntry, error) {
	return s.entries.GetByID(ctx, id)
}

// RecordCreate appends an "Add User" entry describing the freshly created
// user, field by field in fixed order.
func (s *Service) RecordCreate(ctx context.Context, actingUser string, user *domain.User) error {
	details := fmt.Sprintf(
		"User added - , Id: %d, Forename: %s, Surname: %s,  DateOfBirth: %s, Email: %s, IsActive: %t",
		user.ID, user.Forename, user.Surname,
		user.DateOfBirth.Format(domain.DateLayout), user.Email, user.IsActive,
	)
	return s.append(ctx, &domain.AuditEntry{
		UserID:   user.ID,
		Action:   domain.ActionAddUser,
		UserName: actingUser,
		Details:  details,
	})
}

// RecordUpdate appends an "Edit User" entry. An update with zero field
// deltas still writes an entry: distinguishing "nothing changed" from "no
// audit happened" is the caller's decision, not this service's.
func (s *Service) RecordUpdate(ctx context.Context, actingUser string, changes []string, user *domain.User) error {
	details := fmt.Sprintf("User Id: %d updated - , %s", user.ID, strings.Join(changes, ", "))
	return s.append(ctx, &domain.AuditEntry{
		UserID:   user.ID,
		Action:   domain.ActionEditUser,
		UserName: actingUser,
		Details:  details,
	})
}

// RecordDelete appends a "Delete User" entry. Only the ID and email survive
// the deletion, so only those are recorded.
func (s *Service) RecordDelete(ctx context.Context, actingUser string, userID int64, email string) error {
	details := fmt.Sprintf("User deleted - , Id: %d, Email: %s", userID, email)
	return s.append(ctx, &domain.AuditEntry{
		UserID:   userID,
		Action:   domain.ActionDeleteUser,
		UserName: actingUser,
		Details:  details,
	})
}

func (s *Service) append(ctx context.Context, entry *domain.AuditEntry) error {
	entry.Timestamp = s.now()
	if err := s.entries.Create(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "audit append failed",
			"action", entry.Action,
			"user_id", entry.UserID,
			"error", err,
		)
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementRecorded(entry.Action)
	}
	s.logger.InfoContext(ctx, "audit entry recorded",
		"entry_id", entry.ID,
		"action", entry.Action,
		"user_id", entry.UserID,
		"acting_user", entry.UserName,
	)
	return nil
}
