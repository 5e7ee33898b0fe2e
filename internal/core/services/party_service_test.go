package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/core/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/validation"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PartyServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockPartyRepository
	service  portssvc.PartySvcFacade
}

func (suite *PartyServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockPartyRepository)
	suite.service = services.NewPartyService(suite.mockRepo, validation.NewValidator(validation.DefaultLimits()), nil)
}

func (suite *PartyServiceTestSuite) TestCreateParty_Success() {
	suite.mockRepo.On("SaveParty", suite.ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.Name == "Shyam & Sons" && p.PartyType == domain.PartyBoth && p.Address == "Main Road"
	})).Return(int64(3), nil).Once()

	party, err := suite.service.CreateParty(suite.ctx, dto.CreatePartyRequest{
		Name:      " Shyam  & Sons ",
		Address:   "<Main Road>",
		PartyType: domain.PartyBoth,
	})

	suite.Require().NoError(err)
	suite.Equal(int64(3), party.ID)
	suite.False(party.CreatedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PartyServiceTestSuite) TestCreateParty_Invalid() {
	_, err := suite.service.CreateParty(suite.ctx, dto.CreatePartyRequest{Name: "", PartyType: domain.PartyBuyer})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Party Name cannot be empty", err.Error())

	_, err = suite.service.CreateParty(suite.ctx, dto.CreatePartyRequest{Name: "Ram", PartyType: "BROKER"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveParty", mock.Anything, mock.Anything)
}

func (suite *PartyServiceTestSuite) TestDeleteParty_StillReferenced() {
	suite.mockRepo.On("DeleteParty", suite.ctx, int64(3)).
		Return(apperrors.NewConflictError("Party is referenced by transactions")).Once()

	err := suite.service.DeleteParty(suite.ctx, 3)

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestPartyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PartyServiceTestSuite))
}
