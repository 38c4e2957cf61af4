package services_test

import (
	"context"
	"errors"
	"testing"

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

type TransferServiceTestSuite struct {
	suite.Suite
	mockAccounts *MockAccountRepository
	mockTxns     *MockTransactionRepository
	mockLedger   *MockLedgerService
	service      portssvc.TransferSvcFacade

	source *domain.Account
	target *domain.Account
	owner  domain.Caller
	banker domain.Caller
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockTxns = new(MockTransactionRepository)
	suite.mockLedger = new(MockLedgerService)
	suite.service = services.NewTransferService(suite.mockAccounts, suite.mockTxns, suite.mockLedger, decimal.NewFromInt(1000))

	suite.source = &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1000111111111111",
		UserID:        uuid.NewString(),
		AccountType:   domain.Checking,
		Balance:       decimal.NewFromInt(5000),
		Status:        domain.AccountActive,
	}
	suite.target = &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "1000222222222222",
		UserID:        uuid.NewString(),
		AccountType:   domain.Savings,
		Balance:       decimal.NewFromInt(200),
		Status:        domain.AccountActive,
	}
	suite.owner = domain.Caller{UserID: suite.source.UserID, Role: domain.RoleCustomer}
	suite.banker = domain.Caller{UserID: uuid.NewString(), Role: domain.RoleBanker}
}

func (suite *TransferServiceTestSuite) transferReq(amount int64) dto.TransferRequest {
	return dto.TransferRequest{
		SourceAccountID:     suite.source.AccountID,
		TargetAccountNumber: suite.target.AccountNumber,
		Amount:              decimal.NewFromInt(amount),
		Description:         "rent",
	}
}

func (suite *TransferServiceTestSuite) TestTransfer_BelowThreshold_Completes() {
	ctx := context.Background()
	req := suite.transferReq(500)

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockLedger.On("Debit", ctx, suite.source.AccountID, req.Amount, suite.owner.UserID).Return(nil).Once()
	suite.mockLedger.On("Credit", ctx, suite.target.AccountID, req.Amount, suite.owner.UserID).Return(nil).Once()

	var saved []*domain.Transaction
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Run(func(args mock.Arguments) {
		saved = append(saved, args.Get(1).(*domain.Transaction))
	}).Return(nil).Twice()

	txn, err := suite.service.Transfer(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(domain.TransferOut, txn.Type)
	suite.Equal(suite.source.AccountID, txn.AccountID)
	suite.Equal(suite.target.AccountNumber, txn.TargetAccountNumber)

	suite.Require().Len(saved, 2)
	suite.Equal(domain.TransferOut, saved[0].Type)
	suite.Equal(domain.TransferIn, saved[1].Type)
	suite.Equal(suite.target.AccountID, saved[1].AccountID)
	suite.Equal(suite.source.AccountNumber, saved[1].TargetAccountNumber)
	suite.True(saved[1].Amount.Equal(req.Amount))

	suite.mockAccounts.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestTransfer_AtThreshold_StillImmediate() {
	ctx := context.Background()
	req := suite.transferReq(1000) // exactly at the threshold

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockLedger.On("Debit", ctx, suite.source.AccountID, req.Amount, suite.owner.UserID).Return(nil).Once()
	suite.mockLedger.On("Credit", ctx, suite.target.AccountID, req.Amount, suite.owner.UserID).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil).Twice()

	txn, err := suite.service.Transfer(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
}

func (suite *TransferServiceTestSuite) TestTransfer_AboveThreshold_Pending() {
	ctx := context.Background()
	req := suite.transferReq(1001)

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.Transfer(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Equal(domain.TransferOut, txn.Type)

	// No funds move until a banker approves.
	suite.mockLedger.AssertNotCalled(suite.T(), "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestTransfer_NotOwner_Forbidden() {
	ctx := context.Background()
	stranger := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleCustomer}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()

	txn, err := suite.service.Transfer(ctx, stranger, suite.transferReq(500))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txn)
}

func (suite *TransferServiceTestSuite) TestTransfer_BankerOnBehalf_Allowed() {
	ctx := context.Background()
	req := suite.transferReq(500)

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockLedger.On("Debit", ctx, suite.source.AccountID, req.Amount, suite.banker.UserID).Return(nil).Once()
	suite.mockLedger.On("Credit", ctx, suite.target.AccountID, req.Amount, suite.banker.UserID).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil).Twice()

	txn, err := suite.service.Transfer(ctx, suite.banker, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
}

func (suite *TransferServiceTestSuite) TestTransfer_SelfTransfer_Rejected() {
	ctx := context.Background()
	req := suite.transferReq(500)
	req.TargetAccountNumber = suite.source.AccountNumber

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.source.AccountNumber).Return(suite.source, nil).Once()

	txn, err := suite.service.Transfer(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
}

func (suite *TransferServiceTestSuite) TestTransfer_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []int64{0, -10} {
		req := suite.transferReq(amount)
		txn, err := suite.service.Transfer(ctx, suite.owner, req)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Nil(txn)
	}
	suite.mockAccounts.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_UnknownTarget() {
	ctx := context.Background()
	req := suite.transferReq(500)

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.Transfer(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

func (suite *TransferServiceTestSuite) TestTransfer_CreditLegFails_DebitReversed() {
	ctx := context.Background()
	req := suite.transferReq(500)
	creditErr := errors.New("target store unavailable")

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockLedger.On("Debit", ctx, suite.source.AccountID, req.Amount, suite.owner.UserID).Return(nil).Once()
	suite.mockLedger.On("Credit", ctx, suite.target.AccountID, req.Amount, suite.owner.UserID).Return(creditErr).Once()
	// Compensating refund restores the source balance.
	suite.mockLedger.On("Refund", ctx, suite.source.AccountID, req.Amount, suite.owner.UserID).Return(nil).Once()

	txn, err := suite.service.Transfer(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, creditErr)
	suite.Nil(txn)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockTxns.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_ReversalAlsoFails_Internal() {
	ctx := context.Background()
	req := suite.transferReq(500)

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockLedger.On("Debit", ctx, suite.source.AccountID, req.Amount, suite.owner.UserID).Return(nil).Once()
	suite.mockLedger.On("Credit", ctx, suite.target.AccountID, req.Amount, suite.owner.UserID).Return(errors.New("credit failed")).Once()
	suite.mockLedger.On("Refund", ctx, suite.source.AccountID, req.Amount, suite.owner.UserID).Return(errors.New("reversal failed")).Once()

	txn, err := suite.service.Transfer(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.Nil(txn)
}

func (suite *TransferServiceTestSuite) pendingTransfer(amount int64) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:       uuid.NewString(),
		AccountID:           suite.source.AccountID,
		Type:                domain.TransferOut,
		Amount:              decimal.NewFromInt(amount),
		TargetAccountNumber: suite.target.AccountNumber,
		Status:              domain.StatusPending,
	}
}

func (suite *TransferServiceTestSuite) TestApprove_Success() {
	ctx := context.Background()
	txn := suite.pendingTransfer(2000)

	suite.mockTxns.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxns.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.StatusPending, domain.StatusApproved, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockLedger.On("Debit", ctx, suite.source.AccountID, txn.Amount, suite.banker.UserID).Return(nil).Once()
	suite.mockLedger.On("Credit", ctx, suite.target.AccountID, txn.Amount, suite.banker.UserID).Return(nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
	suite.mockTxns.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.StatusApproved, domain.StatusCompleted, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.Approve(ctx, suite.banker, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, approved.Status)
	suite.mockTxns.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestApprove_InsufficientFunds_MarksFailed() {
	ctx := context.Background()
	txn := suite.pendingTransfer(2000)

	suite.mockTxns.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxns.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.StatusPending, domain.StatusApproved, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockAccounts.On("FindAccountByNumber", ctx, suite.target.AccountNumber).Return(suite.target, nil).Once()
	suite.mockLedger.On("Debit", ctx, suite.source.AccountID, txn.Amount, suite.banker.UserID).Return(apperrors.ErrInsufficientFunds).Once()
	suite.mockTxns.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.StatusApproved, domain.StatusFailed, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	failed, err := suite.service.Approve(ctx, suite.banker, txn.TransactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Require().NotNil(failed)
	suite.Equal(domain.StatusFailed, failed.Status)
	suite.mockLedger.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestApprove_AlreadyResolved() {
	ctx := context.Background()
	txn := suite.pendingTransfer(2000)
	txn.Status = domain.StatusRejected

	suite.mockTxns.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxns.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.StatusPending, domain.StatusApproved, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrInvalidState).Once()

	approved, err := suite.service.Approve(ctx, suite.banker, txn.TransactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.Nil(approved)
	suite.mockLedger.AssertNotCalled(suite.T(), "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestApprove_CustomerForbidden() {
	ctx := context.Background()

	approved, err := suite.service.Approve(ctx, suite.owner, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(approved)
	suite.mockTxns.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestReject_Success() {
	ctx := context.Background()
	txn := suite.pendingTransfer(5000)

	suite.mockTxns.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxns.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.StatusPending, domain.StatusRejected, suite.banker.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	rejected, err := suite.service.Reject(ctx, suite.banker, txn.TransactionID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.Status)
	suite.mockLedger.AssertNotCalled(suite.T(), "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedger.AssertNotCalled(suite.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestReject_CustomerForbidden() {
	ctx := context.Background()

	rejected, err := suite.service.Reject(ctx, suite.owner, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(rejected)
}

func (suite *TransferServiceTestSuite) TestListPending() {
	ctx := context.Background()
	pending := []domain.Transaction{*suite.pendingTransfer(2000), *suite.pendingTransfer(3000)}

	suite.mockTxns.On("ListTransactionsByStatus", ctx, domain.StatusPending).Return(pending, nil).Once()

	txns, err := suite.service.ListPending(ctx, suite.banker)

	suite.Require().NoError(err)
	suite.Len(txns, 2)
}

func (suite *TransferServiceTestSuite) TestListPending_CustomerForbidden() {
	ctx := context.Background()

	txns, err := suite.service.ListPending(ctx, suite.owner)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txns)
}

func (suite *TransferServiceTestSuite) TestHistory_Owner() {
	ctx := context.Background()
	history := []domain.Transaction{*suite.pendingTransfer(100)}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockTxns.On("ListTransactionsByAccount", ctx, suite.source.AccountID).Return(history, nil).Once()

	txns, err := suite.service.History(ctx, suite.owner, suite.source.AccountID)

	suite.Require().NoError(err)
	suite.Len(txns, 1)
}

func (suite *TransferServiceTestSuite) TestHistory_StrangerForbidden() {
	ctx := context.Background()
	stranger := domain.Caller{UserID: uuid.NewString(), Role: domain.RoleCustomer}

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()

	txns, err := suite.service.History(ctx, stranger, suite.source.AccountID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(txns)
}

func (suite *TransferServiceTestSuite) TestHistory_BankerAllowed() {
	ctx := context.Background()

	suite.mockAccounts.On("FindAccountByID", ctx, suite.source.AccountID).Return(suite.source, nil).Once()
	suite.mockTxns.On("ListTransactionsByAccount", ctx, suite.source.AccountID).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.History(ctx, suite.banker, suite.source.AccountID)

	suite.Require().NoError(err)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
