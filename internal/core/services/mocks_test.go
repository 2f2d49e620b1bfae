package services_test

import (
	"context"
	"time"

	"github.com/dannabank/dnb_backend/internal/core/domain"
	portsrepo "github.com/dannabank/dnb_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs the transactional closure inline with a nil tx. The
// repository mocks receive that nil tx and never touch a real database.
type fakeTxManager struct{}

var _ portsrepo.TransactionManager = (*fakeTxManager)(nil)

func (fakeTxManager) Begin(ctx context.Context) (pgx.Tx, error)          { return nil, nil }
func (fakeTxManager) Commit(ctx context.Context, tx pgx.Tx) error        { return nil }
func (fakeTxManager) Rollback(ctx context.Context, tx pgx.Tx) error      { return nil }
func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock CapitalRepository ---
type MockCapitalRepository struct {
	mock.Mock
}

var _ portsrepo.CapitalRepositoryFacade = (*MockCapitalRepository)(nil)

func (m *MockCapitalRepository) GetCapital(ctx context.Context) (*domain.CapitalAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapitalAccount), args.Error(1)
}

func (m *MockCapitalRepository) GetCapitalForUpdate(ctx context.Context, tx pgx.Tx) (*domain.CapitalAccount, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapitalAccount), args.Error(1)
}

func (m *MockCapitalRepository) AdjustCapitalInTx(ctx context.Context, tx pgx.Tx, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, delta, userID, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RequestRepository ---
type MockRequestRepository struct {
	mock.Mock
}

var _ portsrepo.RequestRepositoryFacade = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) ListPendingRequests(ctx context.Context, kind *domain.RequestKind) ([]domain.Request, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestRepository) SaveRequest(ctx context.Context, request domain.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Request, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) MarkDecidedInTx(ctx context.Context, tx pgx.Tx, requestID string, state domain.RequestState, decidedBy string, decidedAt time.Time) error {
	args := m.Called(ctx, tx, requestID, state, decidedBy, decidedAt)
	return args.Error(0)
}

// --- Mock CreditRepository ---
type MockCreditRepository struct {
	mock.Mock
}

var _ portsrepo.CreditRepositoryFacade = (*MockCreditRepository)(nil)

func (m *MockCreditRepository) FindActiveCreditByAccount(ctx context.Context, accountID string) (*domain.Credit, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ListCreditsByAccount(ctx context.Context, accountID string) ([]domain.Credit, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ListCreditsDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Credit, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) FindActiveCreditForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Credit, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) OpenCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error {
	args := m.Called(ctx, tx, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) UpdateCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error {
	args := m.Called(ctx, tx, credit)
	return args.Error(0)
}

// --- Mock HistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

var _ portsrepo.HistoryRepositoryFacade = (*MockHistoryRepository)(nil)

func (m *MockHistoryRepository) AppendInTx(ctx context.Context, tx pgx.Tx, entry domain.HistoryEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) ListRecentByAccount(ctx context.Context, accountID string, limit int) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}
