package repository

import (
	"context"
	"testing"
	"time"

	"clubfloor/internal/database"
	"clubfloor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionDB(t *testing.T) (*SessionRepository, *domain.Session) {
	db, err := database.Connect("file::memory:?cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	for _, table := range []string{"orders", "session_guests", "sessions", "venues"} {
		db.Exec("DELETE FROM " + table)
	}

	repo := NewSessionRepository(db)
	sess := &domain.Session{
		VenueID:    1,
		StartTime:  time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
		GuestCount: 2,
		Status:     domain.SessionActive,
	}
	require.NoError(t, repo.Create(context.Background(), sess))
	return repo, sess
}

func TestComplete_FreezesComputedTotal(t *testing.T) {
	repo, sess := setupSessionDB(t)

	end := sess.StartTime.Add(2 * time.Hour)
	err := repo.Complete(context.Background(), sess.ID, end,
		func(ctx context.Context) (int64, error) { return 16456, nil })
	require.NoError(t, err)

	loaded, err := repo.GetByID(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, loaded.Status)
	require.NotNil(t, loaded.TotalAmount)
	assert.Equal(t, int64(16456), *loaded.TotalAmount)
	require.NotNil(t, loaded.EndTime)
}

func TestComplete_SecondCheckoutRejected(t *testing.T) {
	repo, sess := setupSessionDB(t)

	end := sess.StartTime.Add(2 * time.Hour)
	require.NoError(t, repo.Complete(context.Background(), sess.ID, end,
		func(ctx context.Context) (int64, error) { return 10000, nil }))

	err := repo.Complete(context.Background(), sess.ID, end.Add(time.Minute),
		func(ctx context.Context) (int64, error) { return 99999, nil })
	assert.ErrorIs(t, err, ErrSessionNotActive)

	loaded, err := repo.GetByID(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), *loaded.TotalAmount)
}
