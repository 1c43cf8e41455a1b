package services_test

import (
	"context"
	"testing"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/services"
	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.CurrencyService
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockCurrencyRepo)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode() {
	ctx := context.Background()
	expected := &models.Currency{Code: "EUR"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(expected, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "eur")

	suite.Require().NoError(err)
	suite.Equal(expected, currency)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "XXX")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(currency)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_InvalidLength() {
	ctx := context.Background()

	currency, err := suite.service.GetCurrencyByCode(ctx, "EURO")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(currency)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindCurrencyByCode", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencyCodes() {
	ctx := context.Background()
	expected := []string{"EUR", "GBP", "USD"}

	suite.mockCurrencyRepo.On("ListCurrencyCodes", ctx).Return(expected, nil).Once()

	codes, err := suite.service.ListCurrencyCodes(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, codes)
}

func (suite *CurrencyServiceTestSuite) TestListCurrencyCodes_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("ListCurrencyCodes", ctx).Return([]string(nil), nil).Once()

	codes, err := suite.service.ListCurrencyCodes(ctx)

	suite.Require().NoError(err)
	suite.NotNil(codes)
	suite.Empty(codes)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
