package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/apperrors"
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/core/services"
	"github.com/hostfolio/property_mgmt_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	bankAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.bankAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1102",
		Name:        "Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4101",
		Name:        "Nightly Rate Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Test entry",
		Lines: []dto.CreateLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: amount},
			{AccountID: suite.revenueAccount.AccountID, Credit: amount},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID:    suite.bankAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.bankAccount.AccountID, suite.revenueAccount.AccountID}).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.SourceManual, entry.Source)
	suite.False(entry.IsPosted)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.Len(entry.Lines, 2)
	suite.Equal(0, entry.Lines[0].LineOrder)
	suite.Equal(1, entry.Lines[1].LineOrder)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_PostImmediately() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(50))
	req.PostImmediately = true

	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID:    suite.bankAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req)

	suite.Require().NoError(err)
	suite.True(entry.IsPosted)
	suite.Require().NotNil(entry.PostedAt)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	ctx := context.Background()
	// A line carrying both a debit and a credit is accepted as long as the
	// entry-level totals agree.
	req := dto.CreateEntryRequest{
		EntryDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Mixed-side line",
		Lines: []dto.CreateLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(30)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(70)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID:    suite.bankAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req)

	suite.Require().NoError(err)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LessThanTwoLines() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "One sided",
		Lines: []dto.CreateLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "Unbalanced",
		Lines: []dto.CreateLineRequest{
			{AccountID: suite.bankAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(90)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	// Only one of the two accounts resolves.
	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID: suite.bankAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownAccount)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RepoError() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))

	accountsMap := map[string]domain.Account{
		suite.bankAccount.AccountID:    suite.bankAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("CreateEntry", ctx, mock.Anything).Return(assert.AnError).Once()

	_, err := suite.service.CreateEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-2025-00007",
		IsPosted:    false,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("MarkPosted", ctx, entryID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.True(posted.IsPosted)
	suite.Require().NotNil(posted.PostedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, IsPosted: true}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_Locked() {
	ctx := context.Background()
	entryID := uuid.NewString()
	locked := &domain.JournalEntry{EntryID: entryID, IsLocked: true}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(locked, nil).Once()

	_, err := suite.service.PostEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryLocked)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	amount := decimal.NewFromInt(250)
	original := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-2025-00012",
		IsPosted:    true,
		TotalDebit:  amount,
		TotalCredit: amount,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.bankAccount.AccountID, Debit: amount, Credit: decimal.Zero, LineOrder: 0},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, Debit: decimal.Zero, Credit: amount, LineOrder: 1},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, original, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, entryID, "undo booking")

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.SourceAdjustment, reversal.Source)
	suite.Require().NotNil(reversal.SourceID)
	suite.Equal(entryID, *reversal.SourceID)
	suite.Equal("Reversal of JE-2025-00012", reversal.Description)
	suite.Equal("undo booking", reversal.Memo)
	suite.True(reversal.IsPosted)

	// The reversal is dated at today's UTC midnight.
	now := time.Now().UTC()
	suite.Equal(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), reversal.EntryDate)

	// Debits and credits swap line by line.
	suite.Require().Len(reversal.Lines, 2)
	suite.True(reversal.Lines[0].Credit.Equal(amount))
	suite.True(reversal.Lines[0].Debit.IsZero())
	suite.True(reversal.Lines[1].Debit.Equal(amount))
	suite.True(reversal.Lines[1].Credit.IsZero())

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, IsPosted: false}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversed := &domain.JournalEntry{EntryID: entryID, IsPosted: true, IsReversed: true}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(reversed, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Draft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, EntryNumber: "JE-2025-00003"}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Posted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, IsPosted: true}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryPosted)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListEntries_PassesFilterAndToken() {
	ctx := context.Background()
	source := domain.SourceBooking
	params := dto.ListEntriesParams{
		Source: &source,
		Limit:  10,
	}
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), EntryNumber: "JE-2025-00002"},
		{EntryID: uuid.NewString(), EntryNumber: "JE-2025-00001"},
	}

	suite.mockJournalRepo.On("ListEntries", ctx, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.Source != nil && *f.Source == domain.SourceBooking
	}), 10, (*string)(nil)).Return(entries, "token123", nil).Once()

	resp, err := suite.service.ListEntries(ctx, params)

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token123", *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
