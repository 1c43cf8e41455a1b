package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/services"
	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencyCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base string, date time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, base, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RateIngestServiceTestSuite struct {
	suite.Suite
	mockProvider     *MockRateProvider
	mockCurrencyRepo *MockCurrencyRepository
	mockRateRepo     *MockExchangeRateRepository
	service          *services.RateIngestService
	date             time.Time
}

func (suite *RateIngestServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewRateIngestService(
		suite.mockProvider,
		suite.mockCurrencyRepo,
		suite.mockRateRepo,
		slog.Default(),
	)
	suite.date = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *RateIngestServiceTestSuite) TestIngestRates_StoresNormalizedGreaterPairsOnly() {
	ctx := context.Background()
	codes := []string{"EUR", "GBP", "USD"}

	suite.mockCurrencyRepo.On("ListCurrencyCodes", ctx).Return(codes, nil).Once()

	// Base EUR: GBP and USD both sort after EUR and are tracked; CHF is not tracked.
	suite.mockProvider.On("FetchRates", ctx, "EUR", suite.date).Return(map[string]decimal.Decimal{
		"GBP": decimal.RequireFromString("0.85"),
		"USD": decimal.RequireFromString("1.1"),
		"CHF": decimal.RequireFromString("0.93"),
	}, nil).Once()

	// Base GBP: EUR sorts before GBP, so only USD is stored from this table.
	suite.mockProvider.On("FetchRates", ctx, "GBP", suite.date).Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("1.17"),
		"USD": decimal.RequireFromString("1.29"),
	}, nil).Once()

	// Base USD: everything sorts before USD.
	suite.mockProvider.On("FetchRates", ctx, "USD", suite.date).Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.91"),
		"GBP": decimal.RequireFromString("0.78"),
	}, nil).Once()

	for _, pair := range [][2]string{{"EUR", "GBP"}, {"EUR", "USD"}, {"GBP", "USD"}} {
		left, right := pair[0], pair[1]
		suite.mockRateRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r models.ExchangeRate) bool {
			return r.LeftCurrencyCode == left && r.RightCurrencyCode == right && r.Date.Equal(suite.date)
		})).Return(nil).Once()
	}

	err := suite.service.IngestRates(ctx, suite.date)

	suite.Require().NoError(err)
	suite.mockProvider.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "UpsertRate", 3)
}

func (suite *RateIngestServiceTestSuite) TestIngestRates_PartialFailureTolerated() {
	ctx := context.Background()
	codes := []string{"EUR", "USD"}

	suite.mockCurrencyRepo.On("ListCurrencyCodes", ctx).Return(codes, nil).Once()

	suite.mockProvider.On("FetchRates", ctx, "EUR", suite.date).
		Return(nil, apperrors.ErrUpstream).Once()
	suite.mockProvider.On("FetchRates", ctx, "USD", suite.date).Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.91"),
	}, nil).Once()

	err := suite.service.IngestRates(ctx, suite.date)

	// One base failed but the run completes; nothing stored since USD's only
	// counter sorts before it.
	suite.Require().NoError(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertRate", mock.Anything, mock.Anything)
}

func (suite *RateIngestServiceTestSuite) TestIngestRates_AllBasesFailed() {
	ctx := context.Background()
	codes := []string{"EUR", "USD"}

	suite.mockCurrencyRepo.On("ListCurrencyCodes", ctx).Return(codes, nil).Once()
	suite.mockProvider.On("FetchRates", ctx, mock.Anything, suite.date).
		Return(nil, apperrors.ErrUpstream).Twice()

	err := suite.service.IngestRates(ctx, suite.date)

	suite.Require().ErrorIs(err, apperrors.ErrUpstream)
}

func (suite *RateIngestServiceTestSuite) TestIngestRates_UpsertFailureDoesNotAbortRun() {
	ctx := context.Background()
	codes := []string{"EUR", "GBP", "USD"}

	suite.mockCurrencyRepo.On("ListCurrencyCodes", ctx).Return(codes, nil).Once()

	suite.mockProvider.On("FetchRates", ctx, "EUR", suite.date).Return(map[string]decimal.Decimal{
		"GBP": decimal.RequireFromString("0.85"),
		"USD": decimal.RequireFromString("1.1"),
	}, nil).Once()
	suite.mockProvider.On("FetchRates", ctx, "GBP", suite.date).Return(map[string]decimal.Decimal{}, nil).Once()
	suite.mockProvider.On("FetchRates", ctx, "USD", suite.date).Return(map[string]decimal.Decimal{}, nil).Once()

	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("models.ExchangeRate")).
		Return(apperrors.ErrInvalidPair).Twice()

	err := suite.service.IngestRates(ctx, suite.date)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateIngestServiceTestSuite) TestIngestRates_NoCurrencies() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("ListCurrencyCodes", ctx).Return([]string{}, nil).Once()

	err := suite.service.IngestRates(ctx, suite.date)

	suite.Require().NoError(err)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateIngestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateIngestServiceTestSuite))
}
