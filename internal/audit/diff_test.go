package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/domain"
)

func snapshot() *domain.User {
	return &domain.User{
		ID:          7,
		Forename:    "Jane",
		Surname:     "Doe",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Email:       "jane@example.com",
		IsActive:    true,
	}
}

func TestComputeChanges(t *testing.T) {
	t.Run("identical snapshots yield no changes", func(t *testing.T) {
		assert.Empty(t, ComputeChanges(snapshot(), snapshot()))
	})

	t.Run("single field change renders old and new value", func(t *testing.T) {
		after := snapshot()
		after.Email = "jane.smith@example.com"

		changes := ComputeChanges(snapshot(), after)
		require.Len(t, changes, 1)
		assert.Equal(t, "Email changed from 'jane@example.com' to 'jane.smith@example.com'", changes[0])
	})

	t.Run("multi-field change keeps the fixed field order", func(t *testing.T) {
		after := snapshot()
		// Email is assigned before Surname here; the output order must not care.
		after.Email = "jane.smith@example.com"
		after.Surname = "Smith"

		changes := ComputeChanges(snapshot(), after)
		require.Len(t, changes, 2)
		assert.Equal(t, "Surname changed from 'Doe' to 'Smith'", changes[0])
		assert.Equal(t, "Email changed from 'jane@example.com' to 'jane.smith@example.com'", changes[1])
	})

	t.Run("dates format day-month-year", func(t *testing.T) {
		after := snapshot()
		after.DateOfBirth = time.Date(1991, 12, 3, 0, 0, 0, 0, time.UTC)

		changes := ComputeChanges(snapshot(), after)
		require.Len(t, changes, 1)
		assert.Equal(t, "DateOfBirth changed from '12-04-1990' to '03-12-1991'", changes[0])
	})

	t.Run("booleans format as canonical true/false", func(t *testing.T) {
		after := snapshot()
		after.IsActive = false

		changes := ComputeChanges(snapshot(), after)
		require.Len(t, changes, 1)
		assert.Equal(t, "IsActive changed from 'true' to 'false'", changes[0])
	})

	t.Run("all fields changed yields one description per field in order", func(t *testing.T) {
		after := &domain.User{
			ID:          7,
			Forename:    "Janet",
			Surname:     "Smith",
			DateOfBirth: time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC),
			Email:       "janet@example.com",
			IsActive:    false,
		}

		changes := ComputeChanges(snapshot(), after)
		require.Len(t, changes, 5)
		assert.Contains(t, changes[0], "Forename changed")
		assert.Contains(t, changes[1], "Surname changed")
		assert.Contains(t, changes[2], "DateOfBirth changed")
		assert.Contains(t, changes[3], "Email changed")
		assert.Contains(t, changes[4], "IsActive changed")
	})

	t.Run("never mutates either snapshot", func(t *testing.T) {
		before := snapshot()
		after := snapshot()
		after.Surname = "Smith"

		ComputeChanges(before, after)
		assert.Equal(t, "Doe", before.Surname)
		assert.Equal(t, "Smith", after.Surname)
	})
}
