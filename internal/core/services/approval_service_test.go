package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dannabank/dnb_backend/internal/apperrors"
	"github.com/dannabank/dnb_backend/internal/core/domain"
	portssvc "github.com/dannabank/dnb_backend/internal/core/ports/services"
	"github.com/dannabank/dnb_backend/internal/core/services"
	"github.com/dannabank/dnb_backend/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalServiceTestSuite struct {
	suite.Suite

	mockRequestRepo *MockRequestRepository
	mockAccountRepo *MockAccountRepository
	mockCapitalRepo *MockCapitalRepository
	mockCreditRepo  *MockCreditRepository
	mockHistoryRepo *MockHistoryRepository

	service   portssvc.ApprovalSvcFacade
	accountID string
	adminID   string
	account   *domain.Account
	capital   *domain.CapitalAccount
}

func (s *ApprovalServiceTestSuite) SetupTest() {
	s.mockRequestRepo = new(MockRequestRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCapitalRepo = new(MockCapitalRepository)
	s.mockCreditRepo = new(MockCreditRepository)
	s.mockHistoryRepo = new(MockHistoryRepository)

	cfg := &config.Config{
		CreditInterestRate: decimal.NewFromInt(10),
		CreditMaxAmount:    decimal.NewFromInt(50),
		CreditMaxTermDays:  30,
	}

	s.service = services.NewApprovalService(fakeTxManager{}, &services.ApprovalRepos{
		Request: s.mockRequestRepo,
		Account: s.mockAccountRepo,
		Capital: s.mockCapitalRepo,
		Credit:  s.mockCreditRepo,
		History: s.mockHistoryRepo,
	}, cfg)

	s.accountID = uuid.NewString()
	s.adminID = uuid.NewString()
	s.account = &domain.Account{
		AccountID: s.accountID,
		OwnerName: "Dana",
		Balance:   decimal.Zero,
		IsActive:  true,
	}
	s.capital = &domain.CapitalAccount{Capital: decimal.NewFromInt(1000)}
}

func (s *ApprovalServiceTestSuite) pendingRequest(kind domain.RequestKind, amount int64, termDays *int) *domain.Request {
	return &domain.Request{
		RequestID: uuid.NewString(),
		AccountID: s.accountID,
		Kind:      kind,
		Amount:    decimal.NewFromInt(amount),
		TermDays:  termDays,
		State:     domain.StatePending,
	}
}

func (s *ApprovalServiceTestSuite) expectLocks(activeCredit *domain.Credit) {
	s.mockAccountRepo.On("FindAccountByIDForUpdate", mock.Anything, nil, s.accountID).Return(s.account, nil).Once()
	s.mockCapitalRepo.On("GetCapitalForUpdate", mock.Anything, nil).Return(s.capital, nil).Once()
	s.mockCreditRepo.On("FindActiveCreditForUpdate", mock.Anything, nil, s.accountID).Return(activeCredit, nil).Once()
}

func (s *ApprovalServiceTestSuite) TestApproveDepositWithoutCredit() {
	ctx := context.Background()
	req := s.pendingRequest(domain.KindDeposit, 100, nil)
	amount := decimal.NewFromInt(100)

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.expectLocks(nil)
	s.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, nil, s.accountID, amount, s.adminID, mock.AnythingOfType("time.Time")).Return(amount, nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, amount, s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(1100), nil).Once()
	s.mockHistoryRepo.On("AppendInTx", mock.Anything, nil, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Kind == domain.HistoryDeposit && e.Amount.Equal(amount) && e.AccountID != nil && *e.AccountID == s.accountID
	})).Return(nil).Once()
	s.mockRequestRepo.On("MarkDecidedInTx", mock.Anything, nil, req.RequestID, domain.StateApproved, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().NoError(err)
	s.Equal(domain.StateApproved, decided.State)
	s.Equal(s.adminID, decided.DecidedBy)
	s.mockRequestRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
	s.mockCapitalRepo.AssertExpectations(s.T())
	s.mockHistoryRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApproveDepositPaysDownActiveCredit() {
	ctx := context.Background()
	req := s.pendingRequest(domain.KindDeposit, 44, nil)
	amount := decimal.NewFromInt(44)
	credit := &domain.Credit{
		CreditID:     uuid.NewString(),
		AccountID:    s.accountID,
		Principal:    decimal.NewFromInt(40),
		InterestRate: decimal.NewFromInt(10),
		TotalDue:     decimal.NewFromInt(44),
		Status:       domain.CreditActive,
	}

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.expectLocks(credit)
	s.mockCreditRepo.On("UpdateCreditInTx", mock.Anything, nil, mock.MatchedBy(func(c domain.Credit) bool {
		return c.CreditID == credit.CreditID && c.TotalDue.IsZero() && c.Status == domain.CreditClosed
	})).Return(nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, amount, s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(1044), nil).Once()
	s.mockHistoryRepo.On("AppendInTx", mock.Anything, nil, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Kind == domain.HistoryDeposit && e.Amount.Equal(amount)
	})).Return(nil).Once()
	s.mockRequestRepo.On("MarkDecidedInTx", mock.Anything, nil, req.RequestID, domain.StateApproved, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().NoError(err)
	s.Equal(domain.StateApproved, decided.State)
	// The deposit went to the debt, not the balance.
	s.mockAccountRepo.AssertNotCalled(s.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockCreditRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApproveDepositOverpaymentClampsToZero() {
	ctx := context.Background()
	req := s.pendingRequest(domain.KindDeposit, 60, nil)
	credit := &domain.Credit{
		CreditID:  uuid.NewString(),
		AccountID: s.accountID,
		TotalDue:  decimal.NewFromInt(44),
		Status:    domain.CreditActive,
	}

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.expectLocks(credit)
	s.mockCreditRepo.On("UpdateCreditInTx", mock.Anything, nil, mock.MatchedBy(func(c domain.Credit) bool {
		return c.TotalDue.IsZero() && c.Status == domain.CreditClosed
	})).Return(nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, decimal.NewFromInt(60), s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(1060), nil).Once()
	s.mockHistoryRepo.On("AppendInTx", mock.Anything, nil, mock.Anything).Return(nil).Once()
	s.mockRequestRepo.On("MarkDecidedInTx", mock.Anything, nil, req.RequestID, domain.StateApproved, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().NoError(err)
	// The 16 of excess is absorbed by the debt, never credited to the balance.
	s.mockAccountRepo.AssertNotCalled(s.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveWithdrawalInsufficientFundsLeavesPending() {
	ctx := context.Background()
	s.account.Balance = decimal.NewFromInt(100)
	req := s.pendingRequest(domain.KindWithdrawal, 150, nil)

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.expectLocks(nil)

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Nil(decided)
	s.mockAccountRepo.AssertNotCalled(s.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockRequestRepo.AssertNotCalled(s.T(), "MarkDecidedInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveWithdrawal() {
	ctx := context.Background()
	s.account.Balance = decimal.NewFromInt(200)
	req := s.pendingRequest(domain.KindWithdrawal, 150, nil)
	amount := decimal.NewFromInt(150)

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.expectLocks(nil)
	s.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, nil, s.accountID, amount.Neg(), s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(50), nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, amount, s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(1150), nil).Once()
	s.mockHistoryRepo.On("AppendInTx", mock.Anything, nil, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Kind == domain.HistoryWithdrawal && e.Amount.Equal(amount.Neg())
	})).Return(nil).Once()
	s.mockRequestRepo.On("MarkDecidedInTx", mock.Anything, nil, req.RequestID, domain.StateApproved, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().NoError(err)
	s.Equal(domain.StateApproved, decided.State)
	s.mockCapitalRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApproveCreditOpensCreditWithInterest() {
	ctx := context.Background()
	term := 20
	req := s.pendingRequest(domain.KindCredit, 40, &term)
	principal := decimal.NewFromInt(40)

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.expectLocks(nil)
	s.mockCreditRepo.On("OpenCreditInTx", mock.Anything, nil, mock.MatchedBy(func(c domain.Credit) bool {
		return c.AccountID == s.accountID &&
			c.Principal.Equal(principal) &&
			c.TotalDue.Equal(decimal.NewFromInt(44)) &&
			c.Status == domain.CreditActive
	})).Return(nil).Once()
	s.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, nil, s.accountID, principal, s.adminID, mock.AnythingOfType("time.Time")).Return(principal, nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, principal.Neg(), s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(960), nil).Once()
	s.mockHistoryRepo.On("AppendInTx", mock.Anything, nil, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Kind == domain.HistoryCreditIssued && e.Amount.Equal(principal.Neg())
	})).Return(nil).Once()
	s.mockRequestRepo.On("MarkDecidedInTx", mock.Anything, nil, req.RequestID, domain.StateApproved, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().NoError(err)
	s.Equal(domain.StateApproved, decided.State)
	s.mockCreditRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApproveCreditDuplicateActiveCredit() {
	ctx := context.Background()
	term := 20
	req := s.pendingRequest(domain.KindCredit, 40, &term)
	existing := &domain.Credit{CreditID: uuid.NewString(), AccountID: s.accountID, Status: domain.CreditActive}

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.expectLocks(existing)

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicateActiveCredit)
	s.Nil(decided)
	s.mockCreditRepo.AssertNotCalled(s.T(), "OpenCreditInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockRequestRepo.AssertNotCalled(s.T(), "MarkDecidedInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestConcurrentCreditApprovalsOnlyOneWins() {
	ctx := context.Background()
	term := 20
	first := s.pendingRequest(domain.KindCredit, 40, &term)
	second := s.pendingRequest(domain.KindCredit, 30, &term)
	principal := decimal.NewFromInt(40)
	opened := &domain.Credit{CreditID: uuid.NewString(), AccountID: s.accountID, Status: domain.CreditActive}

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, first.RequestID).Return(first, nil).Once()
	s.mockAccountRepo.On("FindAccountByIDForUpdate", mock.Anything, nil, s.accountID).Return(s.account, nil).Twice()
	s.mockCapitalRepo.On("GetCapitalForUpdate", mock.Anything, nil).Return(s.capital, nil).Twice()
	// The first decision sees an empty slot; the second sees the opened credit.
	s.mockCreditRepo.On("FindActiveCreditForUpdate", mock.Anything, nil, s.accountID).Return(nil, nil).Once()
	s.mockCreditRepo.On("FindActiveCreditForUpdate", mock.Anything, nil, s.accountID).Return(opened, nil).Once()
	s.mockCreditRepo.On("OpenCreditInTx", mock.Anything, nil, mock.AnythingOfType("domain.Credit")).Return(nil).Once()
	s.mockAccountRepo.On("AdjustBalanceInTx", mock.Anything, nil, s.accountID, principal, s.adminID, mock.AnythingOfType("time.Time")).Return(principal, nil).Once()
	s.mockCapitalRepo.On("AdjustCapitalInTx", mock.Anything, nil, principal.Neg(), s.adminID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(960), nil).Once()
	s.mockHistoryRepo.On("AppendInTx", mock.Anything, nil, mock.Anything).Return(nil).Once()
	s.mockRequestRepo.On("MarkDecidedInTx", mock.Anything, nil, first.RequestID, domain.StateApproved, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, second.RequestID).Return(second, nil).Once()

	_, err := s.service.Decide(ctx, first.RequestID, domain.OutcomeApprove, s.adminID)
	s.Require().NoError(err)

	_, err = s.service.Decide(ctx, second.RequestID, domain.OutcomeApprove, s.adminID)
	s.Require().ErrorIs(err, apperrors.ErrDuplicateActiveCredit)

	s.mockCreditRepo.AssertNumberOfCalls(s.T(), "OpenCreditInTx", 1)
}

func (s *ApprovalServiceTestSuite) TestDecideTwiceReturnsAlreadyDecided() {
	ctx := context.Background()
	req := s.pendingRequest(domain.KindDeposit, 100, nil)
	now := time.Now().UTC()
	req.State = domain.StateApproved
	req.DecidedAt = &now

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeApprove, s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrAlreadyDecided)
	s.Nil(decided)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestRejectTransitionsWithoutMutation() {
	ctx := context.Background()
	req := s.pendingRequest(domain.KindWithdrawal, 50, nil)

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, req.RequestID).Return(req, nil).Once()
	s.mockRequestRepo.On("MarkDecidedInTx", mock.Anything, nil, req.RequestID, domain.StateRejected, s.adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	decided, err := s.service.Decide(ctx, req.RequestID, domain.OutcomeReject, s.adminID)

	s.Require().NoError(err)
	s.Equal(domain.StateRejected, decided.State)
	s.mockAccountRepo.AssertNotCalled(s.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockCapitalRepo.AssertNotCalled(s.T(), "AdjustCapitalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockHistoryRepo.AssertNotCalled(s.T(), "AppendInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestNotFoundPropagates() {
	ctx := context.Background()
	requestID := uuid.NewString()

	s.mockRequestRepo.On("FindRequestByIDForUpdate", mock.Anything, nil, requestID).Return(nil, apperrors.ErrNotFound).Once()

	decided, err := s.service.Decide(ctx, requestID, domain.OutcomeApprove, s.adminID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(decided)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
