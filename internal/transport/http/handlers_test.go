package httptransport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/audit"
	"userdir/internal/directory"
	"userdir/internal/domain"
	"userdir/internal/store"
	"userdir/pkg/testutil"
)

type fixture struct {
	router    http.Handler
	users     *store.Memory[*domain.User]
	entries   *store.Memory[*domain.AuditEntry]
	auditSvc  *audit.Service
	directory *directory.Service
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func newFixture(t *testing.T, seed bool) *fixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	entries := store.NewMemory[*domain.AuditEntry](nil)
	users := store.NewMemory(store.UserLogsLoader(entries))
	if seed {
		require.NoError(t, store.Seed(context.Background(), users, entries))
	}

	auditSvc := audit.New(entries, log, nil)
	directorySvc := directory.New(users, fakeHasher{}, directory.UpperNormalizer{}, log, nil)

	return &fixture{
		router:    NewRouter(NewHandler(directorySvc, auditSvc, log)),
		users:     users,
		entries:   entries,
		auditSvc:  auditSvc,
		directory: directorySvc,
	}
}

func TestCreateUserScenario(t *testing.T) {
	f := newFixture(t, true)

	body := UserRequest{
		Forename:    "Test",
		Surname:     "User",
		DateOfBirth: "1990-04-12",
		Email:       "t@example.com",
		IsActive:    true,
	}
	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/users", body))
	require.Equal(t, http.StatusCreated, rr.Code)

	var created UserResponse
	testutil.DecodeBody(t, rr, &created)
	assert.Equal(t, int64(12), created.ID, "first created user lands after the seeded range")

	// Detail fetch returns the caller-set fields.
	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users/12"))
	require.Equal(t, http.StatusOK, rr.Code)

	var detail UserDetailResponse
	testutil.DecodeBody(t, rr, &detail)
	assert.Equal(t, "Test", detail.Forename)
	assert.Equal(t, "User", detail.Surname)
	assert.Equal(t, "t@example.com", detail.Email)
	require.Len(t, detail.Logs, 1, "creation writes exactly one audit entry")
	assert.Equal(t, domain.ActionAddUser, detail.Logs[0].Action)

	// The recorded details follow the fixed field listing.
	entry, err := f.auditSvc.GetByID(context.Background(), detail.Logs[0].ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entry.Details, "User added - , Id: 12, Forename: Test, Surname: User,"),
		"details %q", entry.Details)
	assert.Equal(t, "Admin", entry.UserName, "acting user defaults to Admin")
}

func TestUpdateUserRecordsDiff(t *testing.T) {
	f := newFixture(t, true)

	body := UserRequest{
		Forename:    "Peter",
		Surname:     "Lowe",
		DateOfBirth: "1985-04-12",
		Email:       "plowe@example.com",
		IsActive:    true,
	}
	req := testutil.NewJSONRequest(t, http.MethodPut, "/users/1", body)
	req.Header.Set("X-Acting-User", "Supervisor")
	rr := testutil.DoRequest(f.router, req)
	require.Equal(t, http.StatusOK, rr.Code)

	user, err := f.directory.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Lowe", user.Surname)
	require.Len(t, user.Logs, 2, "seed entry plus the update entry")

	var edit *domain.AuditEntry
	for _, e := range user.Logs {
		if e.Action == domain.ActionEditUser {
			edit = e
		}
	}
	require.NotNil(t, edit)
	assert.Equal(t, "Supervisor", edit.UserName)
	assert.Equal(t,
		"User Id: 1 updated - , Surname changed from 'Loew' to 'Lowe', Email changed from 'ploew@example.com' to 'plowe@example.com'",
		edit.Details,
	)
}

func TestUpdateWithoutChangesStillAudits(t *testing.T) {
	f := newFixture(t, true)

	body := UserRequest{
		Forename:    "Peter",
		Surname:     "Loew",
		DateOfBirth: "1985-04-12",
		Email:       "ploew@example.com",
		IsActive:    true,
	}
	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPut, "/users/1", body))
	require.Equal(t, http.StatusOK, rr.Code)

	user, err := f.directory.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, user.Logs, 2)
}

func TestDeleteUserKeepsTrail(t *testing.T) {
	f := newFixture(t, true)

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodDelete, "/users/1"))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users/1"))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// The seed entry for user 1 and the fresh delete entry both survive.
	entries, err := f.auditSvc.GetAll(context.Background())
	require.NoError(t, err)
	var forUser []string
	for _, e := range entries {
		if e.UserID == 1 {
			forUser = append(forUser, e.Details)
		}
	}
	require.Len(t, forUser, 2)
	assert.Contains(t, forUser[1], "User deleted - , Id: 1, Email: ploew@example.com")
}

func TestListUsersFilter(t *testing.T) {
	f := newFixture(t, true)

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users"))
	require.Equal(t, http.StatusOK, rr.Code)
	var all []UserResponse
	testutil.DecodeBody(t, rr, &all)
	require.Len(t, all, 11)

	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users?active=true"))
	require.Equal(t, http.StatusOK, rr.Code)
	var active []UserResponse
	testutil.DecodeBody(t, rr, &active)

	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users?active=false"))
	require.Equal(t, http.StatusOK, rr.Code)
	var inactive []UserResponse
	testutil.DecodeBody(t, rr, &inactive)

	assert.Len(t, active, 7)
	assert.Len(t, inactive, 4)
	assert.Len(t, all, len(active)+len(inactive))

	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users?active=banana"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogPagination(t *testing.T) {
	f := newFixture(t, false)

	ctx := context.Background()
	for i := 1; i <= 25; i++ {
		require.NoError(t, f.auditSvc.RecordDelete(ctx, "Admin", int64(i), fmt.Sprintf("u%d@example.com", i)))
	}

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/logs?page=1"))
	require.Equal(t, http.StatusOK, rr.Code)
	var page LogPageResponse
	testutil.DecodeBody(t, rr, &page)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)

	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/logs?page=4"))
	require.Equal(t, http.StatusOK, rr.Code)
	testutil.DecodeBody(t, rr, &page)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalPages)

	// Missing or nonsense page parameters behave like page one.
	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/logs"))
	require.Equal(t, http.StatusOK, rr.Code)
	testutil.DecodeBody(t, rr, &page)
	assert.Len(t, page.Items, 10)
}

func TestLogDetail(t *testing.T) {
	f := newFixture(t, true)

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/logs/3"))
	require.Equal(t, http.StatusOK, rr.Code)

	var detail LogDetailResponse
	testutil.DecodeBody(t, rr, &detail)
	assert.Equal(t, domain.ActionDeleteUser, detail.Action)
	assert.Equal(t, "User deleted - , Id: 3, Email: castro@example.com", detail.Details)
	assert.Equal(t, []string{"User deleted - ", " Id: 3", " Email: castro@example.com"}, detail.DetailsList)

	rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/logs/999"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestValidation(t *testing.T) {
	f := newFixture(t, false)

	t.Run("missing fields are rejected", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/users", UserRequest{}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		body := UserRequest{Forename: "A", Surname: "B", Email: "a@example.com", DateOfBirth: "12/04/1990"}
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/users", body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("update of an absent user is a 404", func(t *testing.T) {
		body := UserRequest{Forename: "A", Surname: "B", Email: "a@example.com", DateOfBirth: "1990-04-12"}
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPut, "/users/42", body))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric IDs are rejected", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users/abc"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, false)
	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	assert.Equal(t, http.StatusOK, rr.Code)
}
