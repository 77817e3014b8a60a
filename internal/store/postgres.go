package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"userdir/internal/domain"
	"userdir/pkg/platform/sentinel"
)

// Schema for the relational store. The audit table deliberately carries no
// foreign key on user_id: entries must outlive the user they reference, and
// deleting a user must never fail or cascade because of its trail.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                  BIGSERIAL PRIMARY KEY,
	forename            TEXT        NOT NULL,
	surname             TEXT        NOT NULL,
	date_of_birth       DATE        NOT NULL,
	email               TEXT        NOT NULL,
	is_active           BOOLEAN     NOT NULL,
	username            TEXT        NOT NULL DEFAULT '',
	normalized_username TEXT        NOT NULL DEFAULT '',
	normalized_email    TEXT        NOT NULL DEFAULT '',
	password_hash       TEXT        NOT NULL DEFAULT '',
	email_confirmed     BOOLEAN     NOT NULL DEFAULT FALSE,
	security_stamp      TEXT        NOT NULL DEFAULT '',
	concurrency_stamp   TEXT        NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS audit_entries (
	id        BIGSERIAL   PRIMARY KEY,
	user_id   BIGINT      NOT NULL,
	action    TEXT        NOT NULL,
	user_name TEXT        NOT NULL,
	details   TEXT        NOT NULL,
	ts        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_entries_user_id ON audit_entries (user_id);
CREATE INDEX IF NOT EXISTS idx_audit_entries_ts ON audit_entries (ts DESC);
`

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return persistence("migrate", err)
	}
	return nil
}

func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrPersistence, err)
}

const userColumns = `forename, surname, date_of_birth, email, is_active,
	username, normalized_username, normalized_email, password_hash,
	email_confirmed, security_stamp, concurrency_stamp`

// PostgresUsers implements Store[*domain.User] on a users table.
type PostgresUsers struct {
	db      *sql.DB
	entries *PostgresAudit
}

// NewPostgresUsers constructs the user store. The audit store is used to
// satisfy GetWithRelations.
func NewPostgresUsers(db *sql.DB, entries *PostgresAudit) *PostgresUsers {
	return &PostgresUsers{db: db, entries: entries}
}

func (s *PostgresUsers) GetAll(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, persistence("select users", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, persistence("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate users", err)
	}
	return users, nil
}

func (s *PostgresUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, persistence("select user", err)
	}
	return user, nil
}

func (s *PostgresUsers) GetWithRelations(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.entries.listByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Logs = logs
	return user, nil
}

func (s *PostgresUsers) Create(ctx context.Context, user *domain.User) error {
	if user.ID == 0 {
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`,
			userArgs(user)...,
		).Scan(&user.ID)
		if err != nil {
			return persistence("insert user", err)
		}
		return nil
	}

	// Seeded rows arrive with explicit IDs; insert them verbatim and keep
	// the sequence ahead so store-assigned IDs never collide.
	args := append([]any{user.ID}, userArgs(user)...)
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, `+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		args...,
	); err != nil {
		return persistence("insert seeded user", err)
	}
	return s.advanceSequence(ctx, "users")
}

func (s *PostgresUsers) Update(ctx context.Context, user *domain.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			forename = $2, surname = $3, date_of_birth = $4, email = $5,
			is_active = $6, username = $7, normalized_username = $8,
			normalized_email = $9, password_hash = $10, email_confirmed = $11,
			security_stamp = $12, concurrency_stamp = $13
		WHERE id = $1`,
		append([]any{user.ID}, userArgs(user)...)...,
	)
	if err != nil {
		return persistence("update user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return persistence("update user", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user %d: %w", user.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresUsers) Delete(ctx context.Context, user *domain.User) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	if err != nil {
		return persistence("delete user", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return persistence("delete user", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete user %d: %w", user.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresUsers) advanceSequence(ctx context.Context, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`,
		table, table,
	)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return persistence("advance sequence", err)
	}
	return nil
}

func userArgs(u *domain.User) []any {
	return []any{
		u.Forename, u.Surname, u.DateOfBirth, u.Email, u.IsActive,
		u.Username, u.NormalizedUsername, u.NormalizedEmail, u.PasswordHash,
		u.EmailConfirmed, u.SecurityStamp, u.ConcurrencyStamp,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Forename, &u.Surname, &u.DateOfBirth, &u.Email, &u.IsActive,
		&u.Username, &u.NormalizedUsername, &u.NormalizedEmail, &u.PasswordHash,
		&u.EmailConfirmed, &u.SecurityStamp, &u.ConcurrencyStamp,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PostgresAudit implements Store[*domain.AuditEntry] on an audit_entries
// table. Entries have no declared related collection, so GetWithRelations
// degenerates to GetByID.
type PostgresAudit struct {
	db *sql.DB
}

func NewPostgresAudit(db *sql.DB) *PostgresAudit {
	return &PostgresAudit{db: db}
}

func (s *PostgresAudit) GetAll(ctx context.Context) ([]*domain.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, action, user_name, details, ts
		FROM audit_entries ORDER BY id`)
	if err != nil {
		return nil, persistence("select audit entries", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (s *PostgresAudit) GetByID(ctx context.Context, id int64) (*domain.AuditEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, action, user_name, details, ts
		FROM audit_entries WHERE id = $1`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, persistence("select audit entry", err)
	}
	return entry, nil
}

func (s *PostgresAudit) GetWithRelations(ctx context.Context, id int64) (*domain.AuditEntry, error) {
	return s.GetByID(ctx, id)
}

func (s *PostgresAudit) Create(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ID == 0 {
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO audit_entries (user_id, action, user_name, details, ts)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			entry.UserID, entry.Action, entry.UserName, entry.Details, entry.Timestamp,
		).Scan(&entry.ID)
		if err != nil {
			return persistence("insert audit entry", err)
		}
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, user_id, action, user_name, details, ts)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.UserID, entry.Action, entry.UserName, entry.Details, entry.Timestamp,
	); err != nil {
		return persistence("insert seeded audit entry", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('audit_entries', 'id'), (SELECT MAX(id) FROM audit_entries))`,
	); err != nil {
		return persistence("advance sequence", err)
	}
	return nil
}

// Update satisfies the generic Store contract. The audit service exposes no
// path here; the trail is append-only at the service surface.
func (s *PostgresAudit) Update(ctx context.Context, entry *domain.AuditEntry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE audit_entries SET
			user_id = $2, action = $3, user_name = $4, details = $5, ts = $6
		WHERE id = $1`,
		entry.ID, entry.UserID, entry.Action, entry.UserName, entry.Details, entry.Timestamp,
	)
	if err != nil {
		return persistence("update audit entry", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return persistence("update audit entry", err)
	}
	if affected == 0 {
		return fmt.Errorf("update audit entry %d: %w", entry.ID, sentinel.ErrNotFound)
	}
	return nil
}

// Delete satisfies the generic Store contract; see Update.
func (s *PostgresAudit) Delete(ctx context.Context, entry *domain.AuditEntry) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM audit_entries WHERE id = $1`, entry.ID)
	if err != nil {
		return persistence("delete audit entry", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return persistence("delete audit entry", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete audit entry %d: %w", entry.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresAudit) listByUser(ctx context.Context, userID int64) ([]*domain.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, action, user_name, details, ts
		FROM audit_entries WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, persistence("select audit entries by user", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]*domain.AuditEntry, error) {
	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, persistence("scan audit entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("iterate audit entries", err)
	}
	return entries, nil
}

func scanEntry(row rowScanner) (*domain.AuditEntry, error) {
	var e domain.AuditEntry
	var ts time.Time
	err := row.Scan(&e.ID, &e.UserID, &e.Action, &e.UserName, &e.Details, &ts)
	if err != nil {
		return nil, err
	}
	e.Timestamp = ts.UTC()
	return &e, nil
}
