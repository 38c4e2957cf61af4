package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	portsrepo "github.com/obs-bank/ledger-core/internal/core/ports/repositories"
	portssvc "github.com/obs-bank/ledger-core/internal/core/ports/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) CompareAndSwapBalance(ctx context.Context, accountID string, expected, newBalance decimal.Decimal, updatedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, accountID, expected, newBalance, updatedBy, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) RefundBalance(ctx context.Context, accountID string, amount decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, amount, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, updatedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, status, updatedBy, now)
	return args.Error(0)
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByStatus(ctx context.Context, status domain.TransactionStatus) ([]domain.Transaction, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, from, to domain.TransactionStatus, updatedBy string, now time.Time) error {
	args := m.Called(ctx, transactionID, from, to, updatedBy, now)
	return args.Error(0)
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

// --- Mock BillPaymentRepository ---

type MockBillPaymentRepository struct {
	mock.Mock
}

func (m *MockBillPaymentRepository) SaveBillPayment(ctx context.Context, payment domain.BillPaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockBillPaymentRepository) ListBillPaymentsByUser(ctx context.Context, userID string) ([]domain.BillPaymentRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillPaymentRecord), args.Error(1)
}

var _ portsrepo.BillPaymentRepository = (*MockBillPaymentRepository)(nil)

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Debit(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error {
	args := m.Called(ctx, accountID, amount, actorUserID)
	return args.Error(0)
}

func (m *MockLedgerService) Credit(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error {
	args := m.Called(ctx, accountID, amount, actorUserID)
	return args.Error(0)
}

func (m *MockLedgerService) Refund(ctx context.Context, accountID string, amount decimal.Decimal, actorUserID string) error {
	args := m.Called(ctx, accountID, amount, actorUserID)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)
