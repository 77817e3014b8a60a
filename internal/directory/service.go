// Package directory manages the user lifecycle: create with provisioning,
// update, delete, and active-state filtering. Pairing mutations with audit
// writes is the caller's duty; this service only persists.
package directory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"userdir/internal/directory/metrics"
	"userdir/internal/domain"
	"userdir/internal/store"
)

// defaultPassword is the provisioning placeholder credential. Real
// credential issuance belongs to the out-of-scope auth layer; the directory
// only stores a derived hash so the column is never empty.
const defaultPassword = "Password_123"

// Service orchestrates user entity operations against the store.
type Service struct {
	users      store.Store[*domain.User]
	hasher     PasswordHasher
	normalizer Normalizer
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New constructs the directory service. Metrics may be nil in tests.
func New(users store.Store[*domain.User], hasher PasswordHasher, normalizer Normalizer, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:      users,
		hasher:     hasher,
		normalizer: normalizer,
		logger:     logger,
		metrics:    m,
	}
}

// GetAll returns every user.
func (s *Service) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.users.GetAll(ctx)
}

// FilterByActive returns users whose active flag matches isActive.
func (s *Service) FilterByActive(ctx context.Context, isActive bool) ([]*domain.User, error) {
	all, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]*domain.User, 0)
	for _, user := range all {
		if user.IsActive == isActive {
			filtered = append(filtered, user)
		}
	}
	return filtered, nil
}

// GetUserByID returns one user with its audit entries eagerly loaded, or
// sentinel.ErrNotFound.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetWithRelations(ctx, id)
}

// Add provisions the identity-adjacent fields and persists the user. The
// store assigns the ID; callers read it back from the passed user.
func (s *Service) Add(ctx context.Context, user *domain.User) error {
	user.SecurityStamp = uuid.NewString()
	user.ConcurrencyStamp = uuid.NewString()

	hash, err := s.hasher.Hash(defaultPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.EmailConfirmed = true
	user.Username = user.Email
	user.NormalizedEmail = s.normalizer.NormalizeEmail(user.Email)
	user.NormalizedUsername = s.normalizer.NormalizeName(user.Email)

	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID, "email", user.Email)
	return nil
}

// Update delegates to the store. Diffing and audit logging happen in the
// caller with a pre-mutation snapshot.
func (s *Service) Update(ctx context.Context, user *domain.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementUpdated()
	}
	s.logger.InfoContext(ctx, "user updated", "user_id", user.ID)
	return nil
}

// Delete delegates to the store. Audit entries referencing the user are kept.
func (s *Service) Delete(ctx context.Context, user *domain.User) error {
	if err := s.users.Delete(ctx, user); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	s.logger.InfoContext(ctx, "user deleted", "user_id", user.ID)
	return nil
}
