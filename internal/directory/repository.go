package directory

import (
	"context"
	"strings"
)

// Repository defines the interface for therapist lookup
type Repository interface {
	List(ctx context.Context, search string) ([]*Therapist, error)
	GetByID(ctx context.Context, id string) (*Therapist, error)
}

// StaticRepository serves the fixed in-memory directory. The catalog is
// loaded once at startup and never mutated, so no locking is needed.
type StaticRepository struct {
	therapists []*Therapist
	byID       map[string]*Therapist
}

// NewStaticRepository creates a repository over the given catalog. A nil
// catalog falls back to the built-in one.
func NewStaticRepository(therapists []*Therapist) *StaticRepository {
	if therapists == nil {
		therapists = Catalog()
	}
	byID := make(map[string]*Therapist, len(therapists))
	for _, t := range therapists {
		byID[t.ID] = t
	}
	return &StaticRepository{
		therapists: therapists,
		byID:       byID,
	}
}

// List returns therapists whose name contains the search term,
// case-insensitively. An empty term returns the whole directory.
func (r *StaticRepository) List(ctx context.Context, search string) ([]*Therapist, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return r.therapists, nil
	}
	var out []*Therapist
	for _, t := range r.therapists {
		if strings.Contains(strings.ToLower(t.Name), search) {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetByID resolves a therapist by id
func (r *StaticRepository) GetByID(ctx context.Context, id string) (*Therapist, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, ErrTherapistNotFound
	}
	return t, nil
}
