package httptransport

import (
	"strings"
	"time"

	"userdir/internal/audit"
	"userdir/internal/domain"
)

// UserResponse is the wire shape of one user in listings.
type UserResponse struct {
	ID          int64  `json:"id"`
	Forename    string `json:"forename"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
}

// UserDetailResponse adds the user's audit trail to the listing shape.
type UserDetailResponse struct {
	UserResponse
	Logs []LogResponse `json:"logs"`
}

// LogResponse is the wire shape of one audit entry.
type LogResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	UserName  string    `json:"user_name"`
	Timestamp time.Time `json:"timestamp"`
}

// LogDetailResponse adds the raw details and their comma-split parts, which
// the admin UI renders as separate lines.
type LogDetailResponse struct {
	LogResponse
	Details     string   `json:"details"`
	DetailsList []string `json:"details_list"`
}

// LogPageResponse is one page of the audit trail.
type LogPageResponse struct {
	Items       []LogResponse `json:"items"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
}

func fromUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Forename:    u.Forename,
		Surname:     u.Surname,
		DateOfBirth: u.DateOfBirth.Format(time.DateOnly),
		Email:       u.Email,
		IsActive:    u.IsActive,
	}
}

func fromUsers(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, fromUser(u))
	}
	return out
}

func fromUserDetail(u *domain.User) UserDetailResponse {
	return UserDetailResponse{
		UserResponse: fromUser(u),
		Logs:         fromEntries(u.Logs),
	}
}

func fromEntry(e *domain.AuditEntry) LogResponse {
	return LogResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		UserName:  e.UserName,
		Timestamp: e.Timestamp,
	}
}

func fromEntries(entries []*domain.AuditEntry) []LogResponse {
	out := make([]LogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, fromEntry(e))
	}
	return out
}

func fromEntryDetail(e *domain.AuditEntry) LogDetailResponse {
	return LogDetailResponse{
		LogResponse: fromEntry(e),
		Details:     e.Details,
		DetailsList: strings.Split(e.Details, ","),
	}
}

func fromPage(p audit.Page) LogPageResponse {
	return LogPageResponse{
		Items:       fromEntries(p.Items),
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}
