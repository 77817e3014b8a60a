package httptransport

import (
	"time"

	"userdir/internal/domain"
	dErrors "userdir/pkg/domain-errors"
)

// UserRequest is the create/update payload. Dates travel as "2006-01-02".
type UserRequest struct {
	Forename    string `json:"forename"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
}

// Validate rejects the malformed payloads the services assume were filtered
// out before reaching them.
func (req *UserRequest) Validate() error {
	if req.Forename == "" {
		return dErrors.New(dErrors.CodeBadRequest, "forename is required")
	}
	if req.Surname == "" {
		return dErrors.New(dErrors.CodeBadRequest, "surname is required")
	}
	if req.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if _, err := req.ParsedDateOfBirth(); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "date_of_birth must be formatted 2006-01-02")
	}
	return nil
}

// ParsedDateOfBirth parses the wire date. An empty value is the zero date.
func (req *UserRequest) ParsedDateOfBirth() (time.Time, error) {
	if req.DateOfBirth == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, req.DateOfBirth)
}

// Apply copies the request fields onto a user, leaving provisioning fields
// untouched.
func (req *UserRequest) Apply(user *domain.User) {
	dob, _ := req.ParsedDateOfBirth()
	user.Forename = req.Forename
	user.Surname = req.Surname
	user.DateOfBirth = dob
	user.Email = req.Email
	user.IsActive = req.IsActive
}
