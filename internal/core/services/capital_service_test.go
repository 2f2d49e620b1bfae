package services_test

import (
	"context"
	"testing"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CapitalServiceTestSuite struct {
	suite.Suite

	mockCapitalRepo *MockCapitalRepository
	mockHistoryRepo *MockHistoryRepository

	service portssvc.CapitalSvcFacade
	adminID string
}

func (s *CapitalServiceTestSuite) SetupTest() {
	s.mockCapitalRepo = new(MockCapitalRepository)
	s.mockHistoryRepo = new(MockHistoryRepository)
	s.service = services.NewCapitalService(fakeTxManager{}, s.mockCapitalRepo, s.mockHistoryRepo)
	s.adminID = uuid.NewString()
}

func (s *CapitalServiceTestSuite) TestAdjustCapitalRecordsHistory() {
	delta := decimal.NewFromInt(500)
	capital := &domain.CapitalAccount{Capital: decimal.NewFromInt(1000)}

	s.mockCapitalRepo.On("GetCapitalForUpdate", mock.Anything, nil).Return(capital, nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, delta, s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(1500), nil).Once()
	s.mockHistoryRepo.On("AppendInTx", mock.Anything, nil, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Kind == domain.HistoryCapitalAdjustment && e.Amount.Equal(delta) && e.AccountID == nil
	})).Return(nil).Once()

	result, err := s.service.AdjustCapital(context.Background(), delta, "capital injection", s.adminID)

	s.Require().NoError(err)
	s.True(result.Capital.Equal(decimal.NewFromInt(1500)))
	s.mockHistoryRepo.AssertExpectations(s.T())
}

func (s *CapitalServiceTestSuite) TestAdjustCapitalRejectsZeroDelta() {
	_, err := s.service.AdjustCapital(context.Background(), decimal.Zero, "noop", s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrInvalidAmount)
	s.mockCapitalRepo.AssertNotCalled(s.T(), "AdjustCapitalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *CapitalServiceTestSuite) TestAdjustCapitalUnderflowAbortsHistory() {
	delta := decimal.NewFromInt(-2000)
	capital := &domain.CapitalAccount{Capital: decimal.NewFromInt(1000)}

	s.mockCapitalRepo.On("GetCapitalForUpdate", mock.Anything, nil).Return(capital, nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, delta, s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.Zero, apperrors.ErrCapitalUnderflow).Once()

	_, err := s.service.AdjustCapital(context.Background(), delta, "drawdown", s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrCapitalUnderflow)
	s.mockHistoryRepo.AssertNotCalled(s.T(), "AppendInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CapitalServiceTestSuite) TestGetCapitalHistory() {
	entries := []domain.HistoryEntry{{EntryID: uuid.NewString(), Kind: domain.HistoryDeposit, Amount: decimal.NewFromInt(100)}}
	s.mockHistoryRepo.On("ListRecent", mock.Anything, 30).Return(entries, nil).Once()

	got, err := s.service.GetCapitalHistory(context.Background(), 30)

	s.Require().NoError(err)
	s.Len(got, 1)
}

func TestCapitalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CapitalServiceTestSuite))
}
