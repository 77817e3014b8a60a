// Package domain holds the shared entity models. Stores persist these,
// services orchestrate them, and the transport layer maps them to wire
// shapes.
package domain

import "time"

// DateLayout renders dates the way audit details and the admin UI expect:
// day-month-year.
const DateLayout = "02-01-2006"

// User is the primary directory entity. The ID is assigned by the store on
// creation and never supplied by callers. The provisioning fields below the
// active flag are populated by the directory service at creation time and
// treated opaquely everywhere else.
type User struct {
	ID          int64
	Forename    string
	Surname     string
	DateOfBirth time.Time
	Email       string
	IsActive    bool

	Username           string
	NormalizedUsername string
	NormalizedEmail    string
	PasswordHash       string
	EmailConfirmed     bool
	SecurityStamp      string
	ConcurrencyStamp   string

	// Logs is populated only by relation-aware fetches; a nil slice means
	// the relation was not loaded, an empty slice means it was loaded and
	// the user has no audit history yet.
	Logs []*AuditEntry
}

func (u *User) GetID() int64   { return u.ID }
func (u *User) SetID(id int64) { u.ID = id }

// Clone returns a deep copy. Stores hand out clones so diff snapshots never
// alias store-owned state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.Logs != nil {
		cp.Logs = make([]*AuditEntry, len(u.Logs))
		for i, l := range u.Logs {
			cp.Logs[i] = l.Clone()
		}
	}
	return &cp
}
