package domain

import "time"

// Audit actions recorded against users. The literals are part of the stored
// data contract and match the seeded history.
const (
	ActionAddUser    = "Add User"
	ActionEditUser   = "Edit User"
	ActionDeleteUser = "Delete User"
)

// AuditEntry is one append-only record of a user mutation. Entries are only
// ever created; no update or delete path exists for them.
type AuditEntry struct {
	ID int64

	// UserID survives deletion of the referenced user so the trail stays
	// resolvable. User is the navigable side of the relation and is nil
	// unless explicitly loaded (or when the user no longer exists).
	UserID int64
	User   *User

	Action    string
	UserName  string
	Details   string
	Timestamp time.Time
}

func (e *AuditEntry) GetID() int64   { return e.ID }
func (e *AuditEntry) SetID(id int64) { e.ID = id }

// Clone returns a copy without the navigable User to keep copies cheap and
// cycle-free.
func (e *AuditEntry) Clone() *AuditEntry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.User = nil
	return &cp
}
