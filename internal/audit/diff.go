package audit

import (
	"fmt"

	"userdir/internal/domain"
)

// ComputeChanges diffs two user snapshots field by field in fixed order:
// Forename, Surname, DateOfBirth, Email, IsActive. Each changed field yields
// one description; unchanged fields yield nothing. The result preserves the
// fixed check order regardless of which fields changed.
//
// Unlike the listing formats, dates render day-month-year and booleans as
// their canonical true/false text.
//
// ComputeChanges is a pure function of the two snapshots. Callers that want
// the after-state persisted copy the fields across themselves before calling
// Update; this function never mutates either argument.
func ComputeChanges(before, after *domain.User) []string {
	changes := make([]string, 0)

	if before.Forename != after.Forename {
		changes = append(changes, changed("Forename", before.Forename, after.Forename))
	}
	if before.Surname != after.Surname {
		changes = append(changes, changed("Surname", before.Surname, after.Surname))
	}
	if !before.DateOfBirth.Equal(after.DateOfBirth) {
		changes = append(changes, changed("DateOfBirth",
			before.DateOfBirth.Format(domain.DateLayout),
			after.DateOfBirth.Format(domain.DateLayout)))
	}
	if before.Email != after.Email {
		changes = append(changes, changed("Email", before.Email, after.Email))
	}
	if before.IsActive != after.IsActive {
		changes = append(changes, changed("IsActive",
			fmt.Sprintf("%t", before.IsActive),
			fmt.Sprintf("%t", after.IsActive)))
	}

	return changes
}

func changed(field, old, new string) string {
	return fmt.Sprintf("%s changed from '%s' to '%s'", field, old, new)
}
