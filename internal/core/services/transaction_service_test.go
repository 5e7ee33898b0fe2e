package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/core/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/pagination"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	mockRepo  *MockTransactionRepository
	mockParty *MockPartyRepository
	service   portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockParty = new(MockPartyRepository)
	suite.service = services.NewTransactionService(
		suite.mockRepo,
		validation.NewValidator(validation.DefaultLimits()),
		accounting.NewCalculator(accounting.DefaultRates(), nil),
		services.WithPartyDirectory(suite.mockParty),
		services.WithClock(func() time.Time { return fixedNow }),
	)
}

func wheatPurchase() dto.RecordPurchaseRequest {
	return dto.RecordPurchaseRequest{
		BuyerName:    "  Ram   Lal ",
		ItemName:     "Wheat",
		Quantity:     dec("10"),
		PricePerUnit: dec("1000"),
		AmountPaid:   dec("5000"),
	}
}

func wheatSale() dto.RecordSaleRequest {
	return dto.RecordSaleRequest{
		SellerName:   "Mohan Traders",
		ItemName:     "Wheat",
		Quantity:     dec("10"),
		PricePerUnit: dec("1200"),
	}
}

func (suite *TransactionServiceTestSuite) TestRecordPurchase_Wheat() {
	var saved domain.Transaction
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(int64(1), nil).Once()

	id, err := suite.service.RecordPurchase(suite.ctx, wheatPurchase())

	suite.Require().NoError(err)
	suite.Equal(int64(1), id)
	suite.Equal(domain.Buy, saved.TransactionType)
	suite.Equal(domain.Pending, saved.Status)
	suite.Equal("Ram Lal", saved.BuyerName)
	suite.Empty(saved.SellerName)
	suite.True(saved.BaseAmount.Equal(decimal.NewFromInt(10000)))
	suite.True(saved.MandiCharge.Equal(decimal.NewFromInt(150)))
	suite.True(saved.TractorRent.Equal(decimal.NewFromInt(150)))
	suite.True(saved.Muddat.Equal(decimal.NewFromInt(150)))
	suite.True(saved.TotalAmount.Equal(decimal.NewFromInt(10450)), "total %s", saved.TotalAmount)
	suite.True(saved.AmountPaid.Equal(decimal.NewFromInt(5000)))
	suite.Equal(fixedNow, saved.TransactionDate)
	suite.Nil(saved.LinkedPurchaseID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRecordPurchase_DefaultsAmountPaidToZero() {
	req := wheatPurchase()
	req.AmountPaid = nil
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.AmountPaid.IsZero()
	})).Return(int64(2), nil).Once()

	id, err := suite.service.RecordPurchase(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(2), id)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRecordPurchase_QuantityBoundaries() {
	for _, qty := range []string{"0.01", "10000"} {
		suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(int64(1), nil).Once()
		req := wheatPurchase()
		req.Quantity = dec(qty)
		req.AmountPaid = nil
		_, err := suite.service.RecordPurchase(suite.ctx, req)
		suite.NoError(err, "quantity %s", qty)
	}

	for _, qty := range []string{"0.009", "10000.01", "0", "-1"} {
		req := wheatPurchase()
		req.Quantity = dec(qty)
		_, err := suite.service.RecordPurchase(suite.ctx, req)
		suite.ErrorIs(err, apperrors.ErrValidation, "quantity %s", qty)
	}
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveTransaction", 2)
}

func (suite *TransactionServiceTestSuite) TestRecordPurchase_ValidationMessages() {
	cases := []struct {
		name   string
		mutate func(*dto.RecordPurchaseRequest)
		msg    string
	}{
		{"empty buyer", func(r *dto.RecordPurchaseRequest) { r.BuyerName = "   " }, "Buyer Name cannot be empty"},
		{"missing quantity", func(r *dto.RecordPurchaseRequest) { r.Quantity = nil }, "Quantity cannot be empty"},
		{"price too high", func(r *dto.RecordPurchaseRequest) { r.PricePerUnit = dec("1000000.01") }, "Price per Unit cannot exceed 1000000"},
		{"negative paid", func(r *dto.RecordPurchaseRequest) { r.AmountPaid = dec("-1") }, "Amount Paid must be at least 0"},
		{"markup in item", func(r *dto.RecordPurchaseRequest) { r.ItemName = "<b>Wheat</b>" }, "Item Name contains invalid characters"},
	}
	for _, tc := range cases {
		req := wheatPurchase()
		tc.mutate(&req)
		_, err := suite.service.RecordPurchase(suite.ctx, req)
		suite.Require().Error(err, tc.name)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
		suite.Equal(tc.msg, err.Error(), tc.name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordPurchase_PaidAtTotalAccepted_AboveRejected() {
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(int64(3), nil).Once()

	req := wheatPurchase()
	req.AmountPaid = dec("10450")
	_, err := suite.service.RecordPurchase(suite.ctx, req)
	suite.Require().NoError(err)

	req.AmountPaid = dec("10450.01")
	_, err = suite.service.RecordPurchase(suite.ctx, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Amount Paid cannot exceed total amount", err.Error())
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveTransaction", 1)
}

func (suite *TransactionServiceTestSuite) TestRecordPurchase_PartyDirectory() {
	seller := &domain.Party{ID: 7, Name: "Mohan", PartyType: domain.PartySeller}
	suite.mockParty.On("FindPartyByID", suite.ctx, int64(7)).Return(seller, nil).Once()
	suite.mockParty.On("FindPartyByID", suite.ctx, int64(8)).Return(nil, apperrors.NewNotFoundError("Party not found")).Once()

	req := wheatPurchase()
	req.PartyID = ptr(int64(7))
	_, err := suite.service.RecordPurchase(suite.ctx, req)
	suite.ErrorIs(err, apperrors.ErrValidation)

	req.PartyID = ptr(int64(8))
	_, err = suite.service.RecordPurchase(suite.ctx, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Selected party does not exist", err.Error())

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockParty.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRecordPurchase_StorageFailureIsWrapped() {
	storageErr := apperrors.NewStorageError("insert failed", errors.New("disk full"))
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(int64(0), storageErr).Once()

	_, err := suite.service.RecordPurchase(suite.ctx, wheatPurchase())

	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.NotErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestRecordSale_Wheat() {
	var saved domain.Transaction
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(int64(4), nil).Once()

	id, err := suite.service.RecordSale(suite.ctx, wheatSale())

	suite.Require().NoError(err)
	suite.Equal(int64(4), id)
	suite.Equal(domain.Sell, saved.TransactionType)
	suite.Equal(domain.Completed, saved.Status)
	suite.Equal("Mohan Traders", saved.SellerName)
	suite.Empty(saved.BuyerName)
	suite.True(saved.CashDiscount.Equal(decimal.NewFromInt(480)))
	suite.True(saved.LabourCharge.Equal(decimal.NewFromInt(600)))
	suite.True(saved.TransportCharge.Equal(decimal.NewFromInt(2800)))
	suite.True(saved.TotalAmount.Equal(decimal.NewFromInt(8120)), "total %s", saved.TotalAmount)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSaleWithLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordSale_OverpaidNeverWritten() {
	req := wheatSale()
	req.AmountPaid = dec("8120.01")

	_, err := suite.service.RecordSale(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSaleWithLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordSale_LinkQuantityExceedsPurchase() {
	purchase := &domain.Transaction{ID: 9, TransactionType: domain.Buy, Status: domain.Pending, Quantity: decimal.NewFromInt(50)}
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(9)).Return(purchase, nil).Once()

	req := wheatSale()
	req.Quantity = dec("60")
	req.LinkedPurchaseID = ptr(int64(9))
	_, err := suite.service.RecordSale(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrLinkage)
	suite.Equal("Selling quantity cannot exceed linked purchase quantity", err.Error())
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSaleWithLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordSale_LinkWholeLot() {
	purchase := &domain.Transaction{ID: 9, TransactionType: domain.Buy, Status: domain.Pending, Quantity: decimal.NewFromInt(50)}
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(9)).Return(purchase, nil).Once()
	suite.mockRepo.On("SaveSaleWithLink", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionType == domain.Sell && t.Quantity.Equal(decimal.NewFromInt(50))
	}), int64(9)).Return(int64(10), nil).Once()

	req := wheatSale()
	req.Quantity = dec("50")
	req.LinkedPurchaseID = ptr(int64(9))
	id, err := suite.service.RecordSale(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(10), id)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRecordSale_LinkRejections() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(1)).Return(nil, apperrors.NewNotFoundError("Transaction not found")).Once()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(2)).
		Return(&domain.Transaction{ID: 2, TransactionType: domain.Buy, Status: domain.Sold, Quantity: decimal.NewFromInt(50)}, nil).Once()
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(3)).
		Return(&domain.Transaction{ID: 3, TransactionType: domain.Sell, Status: domain.Completed, Quantity: decimal.NewFromInt(50)}, nil).Once()

	expected := map[int64]string{
		1: "Linked purchase not found",
		2: "Linked purchase must be a pending BUY transaction",
		3: "Linked purchase must be a pending BUY transaction",
	}
	for id, msg := range expected {
		req := wheatSale()
		req.LinkedPurchaseID = ptr(id)
		_, err := suite.service.RecordSale(suite.ctx, req)
		suite.ErrorIs(err, apperrors.ErrLinkage, "purchase %d", id)
		suite.Equal(msg, err.Error())
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSaleWithLink", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRecordSale_LinkGuardLostRace() {
	purchase := &domain.Transaction{ID: 9, TransactionType: domain.Buy, Status: domain.Pending, Quantity: decimal.NewFromInt(50)}
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(9)).Return(purchase, nil).Once()
	suite.mockRepo.On("SaveSaleWithLink", suite.ctx, mock.AnythingOfType("domain.Transaction"), int64(9)).
		Return(int64(0), apperrors.NewLinkageError("Linked purchase must be a pending BUY transaction")).Once()

	req := wheatSale()
	req.LinkedPurchaseID = ptr(int64(9))
	_, err := suite.service.RecordSale(suite.ctx, req)

	suite.ErrorIs(err, apperrors.ErrLinkage)
	suite.Equal("Linked purchase must be a pending BUY transaction", err.Error())
}

func (suite *TransactionServiceTestSuite) TestUpdatePayment_CapIsBaseAmount() {
	txn := &domain.Transaction{
		ID: 5, TransactionType: domain.Buy, Status: domain.Pending,
		Quantity: decimal.NewFromInt(10), PricePerUnit: decimal.NewFromInt(1000),
		BaseAmount: decimal.NewFromInt(10000), TotalAmount: decimal.NewFromInt(10450),
	}
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(5)).Return(txn, nil).Twice()
	suite.mockRepo.On("UpdatePayment", suite.ctx, int64(5), mock.MatchedBy(func(v decimal.Decimal) bool {
		return v.Equal(decimal.NewFromInt(10000))
	})).Return(nil).Once()

	suite.Require().NoError(suite.service.UpdatePayment(suite.ctx, 5, dec("10000")))

	err := suite.service.UpdatePayment(suite.ctx, 5, dec("10000.01"))
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Amount Paid cannot exceed base amount of 10000.00", err.Error())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdatePayment_InvalidAmount() {
	err := suite.service.UpdatePayment(suite.ctx, 5, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)

	err = suite.service.UpdatePayment(suite.ctx, 5, dec("-0.01"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdatePayment_NotFound() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, int64(404)).Return(nil, apperrors.NewNotFoundError("Transaction not found")).Once()

	err := suite.service.UpdatePayment(suite.ctx, 404, dec("1"))

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction() {
	suite.mockRepo.On("DeleteTransaction", suite.ctx, int64(1)).Return(nil).Once()
	suite.mockRepo.On("DeleteTransaction", suite.ctx, int64(999)).Return(apperrors.NewNotFoundError("Transaction not found")).Once()

	suite.NoError(suite.service.DeleteTransaction(suite.ctx, 1))

	err := suite.service.DeleteTransaction(suite.ctx, 999)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_Paginates() {
	rows := []domain.Transaction{{ID: 30}, {ID: 29}, {ID: 28}}
	buy := domain.Buy
	suite.mockRepo.On("ListTransactions", suite.ctx, domain.TransactionFilter{Type: &buy, ItemSearch: "whe", Limit: 3, BeforeID: 31}).
		Return(rows, nil).Once()

	resp, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{
		Type:      "BUY",
		Item:      " whe ",
		Limit:     2,
		NextToken: pagination.EncodeIDToken(31),
	})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	next, err := pagination.DecodeIDToken(*resp.NextToken)
	suite.Require().NoError(err)
	suite.Equal(int64(29), next)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_BadToken() {
	_, err := suite.service.ListTransactions(suite.ctx, dto.ListTransactionsParams{NextToken: "!!"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
