package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obs-bank/ledger-core/internal/apperrors"
	"github.com/obs-bank/ledger-core/internal/core/domain"
	portssvc "github.com/obs-bank/ledger-core/internal/core/ports/services"
	"github.com/obs-bank/ledger-core/internal/core/services"
	"github.com/obs-bank/ledger-core/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccounts *MockAccountRepository
	mockTxns     *MockTransactionRepository
	mockUsers    *MockUserRepository
	mockLedger   *MockLedgerService
	service      portssvc.AccountSvcFacade

	customer domain.Caller
	banker   domain.Caller
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockTxns = new(MockTransactionRepository)
	suite.mockUsers = new(MockUserRepository)
	suite.mockLedger = new(MockLedgerService)
	suite.service = services.NewAccountService(suite.mockAccounts, suite.mockTxns, suite.mockUsers, suite.mockLedger)

	suite.customer = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleCustomer}
	suite.banker = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleBanker}
}

func (suite *AccountServiceTestSuite) TestOpenAccount_Success() {
	ctx := context.Background()
	req := dto.OpenAccountRequest{AccountType: domain.Savings}

	suite.mockAccounts.On("FindAccountByNumber", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.OpenAccount(ctx, suite.customer, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Len(account.AccountNumber, 16)
	suite.Equal("1000", account.AccountNumber[:4])
	suite.Equal(suite.customer.UserID, account.UserID)
	suite.Equal(domain.Savings, account.AccountType)
	suite.True(account.Balance.IsZero())
	suite.Equal(domain.AccountActive, account.Status)
	suite.Equal(suite.customer.UserID, account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestOpenAccount_RegeneratesOnCollision() {
	ctx := context.Background()
	req := dto.OpenAccountRequest{AccountType: domain.Checking}
	existing := &domain.Account{AccountID: uuid.NewString()}

	// First candidate collides, second is free.
	suite.mockAccounts.On("FindAccountByNumber", ctx, mock.AnythingOfType("string")).Return(existing, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.OpenAccount(ctx, suite.customer, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.mockAccounts.AssertExpectations(suite.T())
	suite.mockAccounts.AssertNumberOfCalls(suite.T(), "FindAccountByNumber", 2)
}

func (suite *AccountServiceTestSuite) TestListMyAccounts() {
	ctx := context.Background()
	owned := []domain.Account{{AccountID: uuid.NewString(), UserID: suite.customer.UserID}}

	suite.mockAccounts.On("ListAccountsByUser", ctx, suite.customer.UserID).Return(owned, nil).Once()

	accounts, err := suite.service.ListMyAccounts(ctx, suite.customer)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func (suite *AccountServiceTestSuite) TestSearchAccount_Banker() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1000333333333333",
		UserID:        ownerID,
	}
	owner := &domain.User{UserID: ownerID, Username: "jdoe", Email: "jdoe@example.com"}

	suite.mockAccounts.On("FindAccountByNumber", ctx, account.AccountNumber).Return(account, nil).Once()
	suite.mockUsers.On("FindUserByID", ctx, ownerID).Return(owner, nil).Once()

	foundAccount, foundOwner, err := suite.service.SearchAccount(ctx, suite.banker, account.AccountNumber)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, foundAccount.AccountID)
	suite.Equal("jdoe", foundOwner.Username)
}

func (suite *AccountServiceTestSuite) TestSearchAccount_CustomerForbidden() {
	ctx := context.Background()

	_, _, err := suite.service.SearchAccount(ctx, suite.customer, "1000333333333333")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccounts.AssertNotCalled(suite.T(), "FindAccountByNumber", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestToggleAccountActive_FreezesActive() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1000444444444444",
		Status:        domain.AccountActive,
	}

	suite.mockAccounts.On("FindAccountByNumber", ctx, account.AccountNumber).Return(account, nil).Once()
	suite.mockAccounts.On("SetAccountStatus", ctx, account.AccountID, domain.AccountFrozen, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	status, err := suite.service.ToggleAccountActive(ctx, suite.banker, account.AccountNumber)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountFrozen, status)
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestToggleAccountActive_UnfreezesFrozen() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1000555555555555",
		Status:        domain.AccountFrozen,
	}

	suite.mockAccounts.On("FindAccountByNumber", ctx, account.AccountNumber).Return(account, nil).Once()
	suite.mockAccounts.On("SetAccountStatus", ctx, account.AccountID, domain.AccountActive, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	status, err := suite.service.ToggleAccountActive(ctx, suite.banker, account.AccountNumber)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountActive, status)
}

func (suite *AccountServiceTestSuite) TestToggleAccountActive_CustomerForbidden() {
	ctx := context.Background()

	_, err := suite.service.ToggleAccountActive(ctx, suite.customer, "1000444444444444")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1000666666666666",
	}
	req := dto.DepositRequest{AccountNumber: account.AccountNumber, Amount: decimal.NewFromInt(250)}

	suite.mockAccounts.On("FindAccountByNumber", ctx, account.AccountNumber).Return(account, nil).Once()
	suite.mockLedger.On("Credit", ctx, account.AccountID, req.Amount, suite.banker.UserID).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
		txn := args.Get(1).(*domain.Transaction)
		suite.Equal(domain.Credit, txn.Type)
		suite.Equal(domain.StatusCompleted, txn.Status)
	}).Return(nil).Once()

	txn, err := suite.service.Deposit(ctx, suite.banker, req)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, txn.AccountID)
	suite.True(txn.Amount.Equal(req.Amount))
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeposit_CustomerForbidden() {
	ctx := context.Background()
	req := dto.DepositRequest{AccountNumber: "1000666666666666", Amount: decimal.NewFromInt(250)}

	txn, err := suite.service.Deposit(ctx, suite.customer, req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txn)
	suite.mockLedger.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.DepositRequest{AccountNumber: "1000666666666666", Amount: decimal.Zero}

	txn, err := suite.service.Deposit(ctx, suite.banker, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
