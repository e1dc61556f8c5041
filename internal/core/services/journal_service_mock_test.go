package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// JournalServiceMockTestSuite covers how store failures surface through the journal service.
type JournalServiceMockTestSuite struct {
	suite.Suite
	mockTx          *MockTxManager
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	accounts        map[string]domain.Account
}

func (suite *JournalServiceMockTestSuite) SetupTest() {
	suite.mockTx = new(MockTxManager)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)

	clock := services.WithClock(func() time.Time { return fixedNow })
	registry := services.NewAccountRegistry(suite.mockAccountRepo, clock)
	suite.service = services.NewJournalService(suite.mockTx, suite.mockJournalRepo, suite.mockAccountRepo, registry, clock)

	suite.accounts = map[string]domain.Account{
		codeCash:    {Code: codeCash, WorkplaceID: testWorkplace, AccountType: domain.Asset, IsActive: true},
		codeRevenue: {Code: codeRevenue, WorkplaceID: testWorkplace, AccountType: domain.Revenue, IsActive: true},
	}
	suite.mockTx.On("WithinTransaction", mock.Anything).Return()
}

func (suite *JournalServiceMockTestSuite) draft() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:         "entry-1",
		WorkplaceID:     testWorkplace,
		EntryNumber:     7,
		EntryDate:       date(time.March, 1),
		TransactionType: domain.TxnAdjustment,
		Description:     "Sale",
		Version:         3,
		Lines: []domain.LineItem{
			domain.DebitLine(codeCash, decimal.NewFromInt(100), ""),
			domain.CreditLine(codeRevenue, decimal.NewFromInt(100), ""),
		},
	}
}

func (suite *JournalServiceMockTestSuite) TestCreateEntry_SaveError() {
	ctx := context.Background()
	repoErr := errors.New("connection reset")

	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, testWorkplace, []string{codeCash, codeRevenue}).Return(suite.accounts, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil, repoErr).Once()

	_, err := suite.service.CreateEntry(ctx, testWorkplace, dto.CreateEntryRequest{
		EntryDate:       date(time.March, 1),
		TransactionType: domain.TxnAdjustment,
		Description:     "Sale",
		Lines:           []dto.LineRequest{debit(codeCash, "100"), credit(codeRevenue, "100")},
	}, testUser)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
	suite.False(apperrors.IsValidation(err))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceMockTestSuite) TestPostEntry_AppliesSignedBalances() {
	ctx := context.Background()
	entry := suite.draft()

	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, testWorkplace, entry.EntryID).Return(entry, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, testWorkplace, []string{codeCash, codeRevenue}).Return(suite.accounts, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, testWorkplace,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 2 &&
				changes[codeCash].Equal(decimal.NewFromInt(100)) &&
				changes[codeRevenue].Equal(decimal.NewFromInt(100))
		}), testUser, fixedNow).Return(nil).Once()
	suite.mockJournalRepo.On("MarkPosted", mock.Anything, testWorkplace, entry.EntryID, 3, testUser, fixedNow).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, testWorkplace, entry.EntryID, testUser)

	suite.Require().NoError(err)
	suite.True(posted.IsPosted)
	suite.Equal(4, posted.Version)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceMockTestSuite) TestPostEntry_VersionConflict() {
	ctx := context.Background()
	entry := suite.draft()

	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, testWorkplace, entry.EntryID).Return(entry, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, testWorkplace, mock.Anything).Return(suite.accounts, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalancesInTx", mock.Anything, testWorkplace, mock.Anything, testUser, fixedNow).Return(nil).Once()
	suite.mockJournalRepo.On("MarkPosted", mock.Anything, testWorkplace, entry.EntryID, 3, testUser, fixedNow).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.PostEntry(ctx, testWorkplace, entry.EntryID, testUser)

	suite.Require().Error(err)
	suite.True(apperrors.IsConflict(err))
	suite.Equal(apperrors.KindConflict, apperrors.Kind(err))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceMockTestSuite) TestGetEntry_StoreErrorIsNotNotFound() {
	ctx := context.Background()
	repoErr := errors.New("timeout")
	suite.mockJournalRepo.On("FindEntryByID", ctx, testWorkplace, "entry-1").Return(nil, repoErr).Once()

	_, err := suite.service.GetEntry(ctx, testWorkplace, "entry-1")

	suite.ErrorIs(err, repoErr)
	suite.False(apperrors.IsNotFound(err))
	suite.Equal(apperrors.KindInternal, apperrors.Kind(err))
}

func (suite *JournalServiceMockTestSuite) TestReverseEntry_LookupFailure() {
	ctx := context.Background()
	entry := suite.draft()
	entry.IsPosted = true
	repoErr := errors.New("deadlock detected")

	suite.mockJournalRepo.On("FindEntryByIDForUpdate", mock.Anything, testWorkplace, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindReversalOf", mock.Anything, testWorkplace, entry.EntryID).Return(nil, repoErr).Once()

	_, err := suite.service.ReverseEntry(ctx, testWorkplace, entry.EntryID, dto.ReverseEntryRequest{}, testUser)

	suite.ErrorIs(err, repoErr)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func TestJournalServiceMocks(t *testing.T) {
	suite.Run(t, new(JournalServiceMockTestSuite))
}
