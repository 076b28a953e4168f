package billing

import (
	"testing"
	"time"

	"clubfloor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billSettings() *domain.BillSettings {
	return &domain.BillSettings{
		VenueID:           1,
		ServiceChargeRate: 0.10,
		TaxRate:           0.10,
	}
}

func billPolicy() *domain.PricingPolicy {
	return &domain.PricingPolicy{
		VenueID:         1,
		TableFee:        3000,
		TableSetMinutes: 60,
	}
}

func castID(v int64) *int64 { return &v }

func TestCalculate_FullBreakdown(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	now := start.Add(90 * time.Minute)
	sess := &domain.Session{ID: 1, VenueID: 1, StartTime: start, GuestCount: 2, Status: domain.SessionActive}

	ledger := []domain.Order{
		{Category: domain.CategoryTableFee, Amount: 1000, Quantity: 1},
		{Category: domain.CategoryNomination, Amount: 5000, Quantity: 1, CastID: castID(9)},
		{Category: domain.CategoryItem, Amount: 800, Quantity: 2, ItemName: "Highball"},
	}

	got, err := Calculate(sess, ledger, billPolicy(), billSettings(), now)
	require.NoError(t, err)

	assert.Equal(t, 90, got.TimeCharge.DurationMinutes)
	assert.Equal(t, int64(6000), got.TimeCharge.BasePrice) // 3000 x 2 guests
	assert.Equal(t, 30, got.TimeCharge.ExtensionMinutes)
	assert.Equal(t, int64(1000), got.TimeCharge.ExtensionPrice)

	assert.Equal(t, 1, got.CastFees.ShimeiCount)
	assert.Equal(t, int64(5000), got.CastFees.Total)
	assert.Equal(t, int64(1600), got.Orders.Total)

	assert.Equal(t, int64(13600), got.Subtotal)
	assert.Equal(t, int64(1360), got.ServiceCharge)
	assert.Equal(t, int64(1496), got.Tax) // floor(14960 x 0.10)
	assert.Equal(t, int64(16456), got.Total)
}

func TestCalculate_Deterministic(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)
	sess := &domain.Session{ID: 1, VenueID: 1, StartTime: start, GuestCount: 1}
	ledger := []domain.Order{{Category: domain.CategoryItem, Amount: 500, Quantity: 3}}

	a, err := Calculate(sess, ledger, billPolicy(), billSettings(), now)
	require.NoError(t, err)
	b, err := Calculate(sess, ledger, billPolicy(), billSettings(), now)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCalculate_CompletedSessionUsesEndTime(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	sess := &domain.Session{ID: 1, VenueID: 1, StartTime: start, EndTime: &end, GuestCount: 1, Status: domain.SessionCompleted}

	// `now` well past the close must not change the duration
	got, err := Calculate(sess, nil, billPolicy(), billSettings(), end.Add(6*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 45, got.TimeCharge.DurationMinutes)
	assert.Equal(t, 0, got.TimeCharge.ExtensionMinutes)
}

func TestCalculate_CancelledRowsExcluded(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	sess := &domain.Session{ID: 1, VenueID: 1, StartTime: start, GuestCount: 1}

	ledger := []domain.Order{
		{Category: domain.CategoryItem, Amount: 800, Quantity: 1},
		{Category: domain.CategoryItem, Amount: 9999, Quantity: 1, Status: domain.OrderCancelled},
		{Category: domain.CategoryNomination, Amount: 5000, Quantity: 1, Status: domain.OrderCancelled, CastID: castID(9)},
	}

	got, err := Calculate(sess, ledger, billPolicy(), billSettings(), start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(800), got.Orders.Total)
	assert.Equal(t, int64(0), got.CastFees.Total)
}

func TestCalculate_MissingSettings(t *testing.T) {
	sess := &domain.Session{ID: 1, VenueID: 1, StartTime: time.Now(), GuestCount: 1}

	_, err := Calculate(sess, nil, billPolicy(), nil, time.Now())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCalculate_Rounding(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	sess := &domain.Session{ID: 1, VenueID: 1, StartTime: start, GuestCount: 1}
	ledger := []domain.Order{{Category: domain.CategoryItem, Amount: 1210, Quantity: 1}}

	settings := billSettings()
	settings.ServiceChargeRate = 0
	settings.TaxRate = 0
	settings.RoundingEnabled = true
	settings.RoundingUnit = 100

	policy := billPolicy()
	policy.TableFee = 0

	for _, tc := range []struct {
		mode domain.RoundingMode
		want int64
	}{
		{domain.RoundUp, 1300},
		{domain.RoundDown, 1200},
		{domain.RoundNearest, 1200},
	} {
		settings.RoundingMode = tc.mode
		got, err := Calculate(sess, ledger, policy, settings, start.Add(10*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.Total, "mode %s", tc.mode)
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, int64(16500), roundTo(16456, 100, domain.RoundUp))
	assert.Equal(t, int64(16400), roundTo(16456, 100, domain.RoundDown))
	assert.Equal(t, int64(16500), roundTo(16456, 100, domain.RoundNearest))
	assert.Equal(t, int64(16400), roundTo(16400, 100, domain.RoundUp))
}
