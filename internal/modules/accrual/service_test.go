package accrual

import (
	"context"
	"testing"
	"time"

	"clubfloor/internal/database"
	"clubfloor/internal/domain"
	"clubfloor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) (*gorm.DB, *repository.SessionRepository, *Service) {
	db, err := database.Connect("file::memory:?cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// start from a clean slate; the shared-cache DB survives across tests
	for _, table := range []string{"orders", "session_guests", "sessions", "pricing_policies", "venues"} {
		db.Exec("DELETE FROM " + table)
	}

	sessions := repository.NewSessionRepository(db)
	return db, sessions, NewService(db, sessions, nil)
}

func seedSession(t *testing.T, db *gorm.DB, sessions *repository.SessionRepository, start time.Time) (*domain.Session, []domain.SessionGuest) {

	policy := domain.PricingPolicy{
		VenueID:           1,
		Name:              "standard",
		TableFee:          3000,
		TableSetMinutes:   60,
		ExtensionFee:      1000,
		ExtensionMinutes:  30,
		NominationFee:     5000,
		NominationMinutes: 60,
		IsDefault:         true,
	}
	require.NoError(t, db.Create(&policy).Error)

	sess := &domain.Session{
		VenueID:         1,
		PricingPolicyID: &policy.ID,
		StartTime:       start,
		GuestCount:      1,
		Status:          domain.SessionActive,
	}
	require.NoError(t, sessions.Create(context.Background(), sess))

	link := domain.SessionGuest{SessionID: sess.ID, GuestName: "Sato"}
	require.NoError(t, db.Create(&link).Error)

	return sess, []domain.SessionGuest{link}
}

func TestRunPass_InsertsAndIsIdempotent(t *testing.T) {
	db, sessions, svc := setupDB(t)

	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	sess, _ := seedSession(t, db, sessions, start)

	now := start.Add(95 * time.Minute)
	report, err := svc.RunPass(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Len(t, report.Results, 2) // 35 overtime minutes, 30-minute blocks

	// same clock again: the ledger already satisfies the due count
	report2, err := svc.RunPass(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, report2.Results)

	loaded, err := sessions.GetWithDetails(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Orders, 2)
	for _, o := range loaded.Orders {
		assert.Equal(t, domain.CategoryTableFee, o.Category)
		assert.Equal(t, int64(1000), o.Amount)
	}
}

func TestRunSession_SkipsSessionCompletedAfterSnapshot(t *testing.T) {
	db, sessions, svc := setupDB(t)

	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	sess, _ := seedSession(t, db, sessions, start)

	// working-set snapshot taken while the session is still active
	snapshot, err := sessions.GetWithDetails(context.Background(), sess.ID)
	require.NoError(t, err)

	// checkout wins the race before the pass reaches this session
	require.NoError(t, sessions.Complete(context.Background(), sess.ID, start.Add(90*time.Minute),
		func(ctx context.Context) (int64, error) { return 3000, nil }))

	planned, err := svc.runSession(context.Background(), snapshot, start.Add(95*time.Minute))
	assert.ErrorIs(t, err, errSessionCompleted)
	assert.Empty(t, planned)

	loaded, err := sessions.GetWithDetails(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Orders)
}

func TestRunPass_SkipsSessionWithoutPolicy(t *testing.T) {
	_, sessions, svc := setupDB(t)

	sess := &domain.Session{
		VenueID:    1,
		StartTime:  time.Now().Add(-3 * time.Hour),
		GuestCount: 2,
		Status:     domain.SessionActive,
	}
	require.NoError(t, sessions.Create(context.Background(), sess))

	report, err := svc.RunPass(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Results)
}
