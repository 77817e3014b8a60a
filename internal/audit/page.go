package audit

import (
	"context"
	"sort"

	"userdir/internal/domain"
)

// PageSize is fixed by the admin UI contract.
const PageSize = 10

// Page is one page of the audit trail, newest first.
type Page struct {
	Items       []*domain.AuditEntry
	CurrentPage int
	TotalPages  int
}

// ListPage returns page `page` of the trail ordered by timestamp descending.
// Page numbers below 1 get page-1 semantics; pages past the end return an
// empty item list without error.
func (s *Service) ListPage(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	entries, err := s.entries.GetAll(ctx)
	if err != nil {
		return Page{}, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		// Newer entries win timestamp ties.
		return entries[i].ID > entries[j].ID
	})

	totalPages := (len(entries) + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > len(entries) {
		start = len(entries)
	}
	end := start + PageSize
	if end > len(entries) {
		end = len(entries)
	}

	return Page{
		Items:       entries[start:end],
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}
