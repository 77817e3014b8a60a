package store

import (
	"context"

	"userdir/internal/domain"
)

// UserLogsLoader returns the relation loader that eagerly attaches a user's
// audit entries. The loaded slice is always non-nil so callers can tell
// "relation loaded, empty" apart from "relation not loaded".
func UserLogsLoader(entries Store[*domain.AuditEntry]) RelationLoader[*domain.User] {
	return func(ctx context.Context, user *domain.User) error {
		all, err := entries.GetAll(ctx)
		if err != nil {
			return err
		}
		logs := make([]*domain.AuditEntry, 0)
		for _, entry := range all {
			if entry.UserID == user.ID {
				logs = append(logs, entry)
			}
		}
		user.Logs = logs
		return nil
	}
}
