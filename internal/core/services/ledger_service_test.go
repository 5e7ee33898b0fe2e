package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockTransactionRepository
	service  portssvc.LedgerSvc
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockRepo)
}

func ledgerRows() []domain.Transaction {
	return []domain.Transaction{
		{
			ID: 2, TransactionType: domain.Sell, SellerName: "Mohan", ItemName: "Wheat",
			Quantity: decimal.NewFromInt(10), PricePerUnit: decimal.NewFromInt(1200), BaseAmount: decimal.NewFromInt(12000),
			CashDiscount: decimal.NewFromInt(480), LabourCharge: decimal.NewFromInt(600), TransportCharge: decimal.NewFromInt(2800),
			TotalAmount: decimal.NewFromInt(8120), AmountPaid: decimal.NewFromInt(8120), Status: domain.Completed,
		},
		{
			ID: 1, TransactionType: domain.Buy, BuyerName: "Ram", ItemName: "Wheat",
			Quantity: decimal.NewFromInt(10), PricePerUnit: decimal.NewFromInt(1000), BaseAmount: decimal.NewFromInt(10000),
			MandiCharge: decimal.NewFromInt(150), TractorRent: decimal.NewFromInt(150), Muddat: decimal.NewFromInt(150),
			TotalAmount: decimal.NewFromInt(10450), AmountPaid: decimal.NewFromInt(10000), Status: domain.Pending,
		},
	}
}

func (suite *LedgerServiceTestSuite) TestSummary() {
	suite.mockRepo.On("ListTransactions", mock.Anything, domain.TransactionFilter{}).Return(ledgerRows(), nil).Once()

	s, err := suite.service.Summary(suite.ctx)

	suite.Require().NoError(err)
	suite.True(s.TotalBuy.Equal(decimal.NewFromInt(10450)))
	suite.True(s.TotalSell.Equal(decimal.NewFromInt(8120)))
	suite.True(s.ProfitLoss.Equal(decimal.NewFromInt(-2330)))
	suite.Equal(1, s.PendingCount)
	suite.Equal(2, s.TotalCount)
}

func (suite *LedgerServiceTestSuite) TestPartyLedger() {
	suite.mockRepo.On("ListTransactions", mock.Anything, domain.TransactionFilter{}).Return(ledgerRows(), nil).Once()

	rows, err := suite.service.PartyLedger(suite.ctx, domain.RoleBuyer)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("Ram", rows[0].Name)
	suite.True(rows[0].Balance.IsZero())
	suite.True(rows[0].Cleared)
}

func (suite *LedgerServiceTestSuite) TestPartyLedger_UnknownRole() {
	_, err := suite.service.PartyLedger(suite.ctx, domain.PartyRole("broker"))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDashboard() {
	rows := ledgerRows()
	suite.mockRepo.On("ListTransactions", mock.Anything, domain.TransactionFilter{}).Return(rows, nil).Once()
	suite.mockRepo.On("ListPendingTransactions", mock.Anything).Return(rows[1:], nil).Once()

	dash, err := suite.service.Dashboard(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(2, dash.Summary.TotalCount)
	suite.Equal(1, dash.Pending.Count)
	suite.True(dash.Pending.TotalInvested.Equal(decimal.NewFromInt(10450)))
	suite.True(dash.Expenses.TotalExpenses.Equal(decimal.NewFromInt(4330)))
	suite.Len(dash.Buyers, 1)
	suite.Len(dash.Sellers, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDashboard_StorageFailure() {
	unavailable := apperrors.NewStorageUnavailableError("query timed out", errors.New("deadline"))
	suite.mockRepo.On("ListTransactions", mock.Anything, domain.TransactionFilter{}).Return(nil, unavailable).Once()
	suite.mockRepo.On("ListPendingTransactions", mock.Anything).Return([]domain.Transaction{}, nil).Maybe()

	_, err := suite.service.Dashboard(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrStorageUnavailable)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
