package calculation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/itrdesk/tax-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (r *recordingLogger) Warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	fixed := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	prevNow, prevID := nowFunc, idFunc
	SetNowFunc(func() time.Time { return fixed })
	SetIDFunc(func() string { return "report-1" })
	t.Cleanup(func() {
		SetNowFunc(prevNow)
		SetIDFunc(prevID)
	})
	return fixed
}

func TestEngineCompute(t *testing.T) {
	fixed := fixedClock(t)
	engine := NewEngine()

	profile := &domain.TaxpayerProfile{
		Name:           "Asha",
		AssessmentYear: "2025-26",
		Age:            30,
		Income:         salaryOnly(1200000),
		Deductions:     domain.DeductionData{Section80C: dec(150000)},
	}
	report, err := engine.Compute(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, "Asha", report.TaxpayerName)
	assert.Equal(t, 30, report.Age)
	assert.Equal(t, domain.RegimeOld, report.OldRegime.Regime)
	assert.Equal(t, domain.RegimeNew, report.NewRegime.Regime)
	assert.Equal(t, GetOptimalRegime(report.OldRegime, report.NewRegime), report.Comparison)
	assert.Equal(t, report.NewRegime, report.Result(domain.RegimeNew))
}

func TestEngineDerivesAgeFromBirthDate(t *testing.T) {
	fixedClock(t)
	profile := &domain.TaxpayerProfile{
		AssessmentYear: "2025-26",
		DateOfBirth:    domain.NewDate(time.Date(1945, 3, 31, 0, 0, 0, 0, time.UTC)),
		Income:         salaryOnly(900000),
	}
	report, err := NewEngine().Compute(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, 80, report.Age, "age at 31 March 2025")
}

func TestEngineNormalizesHoldingPeriod(t *testing.T) {
	fixedClock(t)
	purchase := domain.NewDate(time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC))
	sale := domain.NewDate(time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC))
	profile := &domain.TaxpayerProfile{
		Age: 40,
		Income: domain.IncomeData{CapitalGains: []domain.CapitalGain{
			{AssetType: "equity_shares", Amount: dec(150000), PurchaseDate: purchase, SaleDate: sale},
		}},
	}
	report, err := NewEngine().Compute(context.Background(), profile)
	require.NoError(t, err)
	assertDecimal(t, dec(5000), report.OldRegime.CapitalGainsTax, "treated as long term from its dates")
	assert.False(t, profile.Income.CapitalGains[0].IsLongTerm, "profile not modified")
}

func TestEngineLogsWarningsOnce(t *testing.T) {
	fixedClock(t)
	logger := &recordingLogger{}
	engine := NewEngine()
	engine.SetLogger(logger)

	profile := &domain.TaxpayerProfile{
		Name:           "Ravi",
		AssessmentYear: "2025-26",
		Age:            30,
		Income: domain.IncomeData{
			Salary:       dec(800000),
			CapitalGains: []domain.CapitalGain{gain("stamps", false, 1000)},
		},
	}
	_, err := engine.Compute(context.Background(), profile)
	require.NoError(t, err)
	require.Len(t, logger.warnings, 1, "both regimes raise the same warning")
	assert.Contains(t, logger.warnings[0], "Ravi")
	assert.Contains(t, logger.warnings[0], "stamps")
}

func TestEngineErrors(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Compute(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	_, err = engine.Compute(context.Background(), &domain.TaxpayerProfile{Age: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	dob := domain.NewDate(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err = engine.Compute(context.Background(), &domain.TaxpayerProfile{AssessmentYear: "2025", DateOfBirth: dob})
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compute(ctx, &domain.TaxpayerProfile{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineSetLoggerNil(t *testing.T) {
	engine := NewEngine()
	engine.SetLogger(nil)
	assert.Equal(t, NopLogger{}, engine.Logger)
}
