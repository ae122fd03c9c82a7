package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRepository_List(t *testing.T) {
	repo := NewStaticRepository(nil)
	ctx := context.Background()

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	matched, err := repo.List(ctx, "  MEERA ")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Dr. Meera Krishnan", matched[0].Name)

	none, err := repo.List(ctx, "house")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStaticRepository_GetByID(t *testing.T) {
	repo := NewStaticRepository(nil)

	therapist, err := repo.GetByID(context.Background(), "t-103")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sneha Pillai", therapist.Name)
	assert.Equal(t, 900, therapist.Price)

	_, err = repo.GetByID(context.Background(), "t-999")
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestStaticRepository_CustomCatalog(t *testing.T) {
	repo := NewStaticRepository([]*Therapist{
		{ID: "x-1", Name: "Dr. Test"},
	})

	all, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetByID(context.Background(), "t-101")
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		progress string
		want     float64
	}{
		{"3/10", 30},
		{"7/8", 87.5},
		{" 2 / 4 ", 50},
		{"10", 0},
		{"a/b", 0},
		{"3/0", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressPercent(tt.progress), "progress %q", tt.progress)
	}
}
