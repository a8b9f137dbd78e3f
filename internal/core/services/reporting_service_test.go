package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
}

func activityRow(code, name string, accountType domain.AccountType, debit, credit int64) domain.AccountBalance {
	return domain.AccountBalance{
		AccountID:   uuid.NewString(),
		AccountCode: code,
		AccountName: name,
		AccountType: accountType,
		DebitTotal:  decimal.NewFromInt(debit),
		CreditTotal: decimal.NewFromInt(credit),
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := []domain.AccountBalance{
		activityRow("1102", "Bank", domain.Asset, 1000, 0),
		activityRow("4101", "Nightly Rate Revenue", domain.Revenue, 0, 900),
		activityRow("2302", "Tenant Security Deposits", domain.Liability, 0, 100),
	}

	suite.mockReportingRepo.On("AccountActivity", ctx, asOf, (*string)(nil)).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Equal(asOf, report.AsOfDate)
	suite.True(report.TotalDebits.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalCredits.Equal(decimal.NewFromInt(1000)))
	suite.True(report.IsBalanced)

	// Signed balances follow each type's normal side.
	suite.Require().Len(report.Accounts, 3)
	suite.True(report.Accounts[0].Balance.Equal(decimal.NewFromInt(1000)), "asset balance should be debit-normal")
	suite.True(report.Accounts[1].Balance.Equal(decimal.NewFromInt(900)), "revenue balance should be credit-normal")
	suite.True(report.Accounts[2].Balance.Equal(decimal.NewFromInt(100)), "liability balance should be credit-normal")
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_PropertyScoped() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	propertyID := uuid.NewString()
	rows := []domain.AccountBalance{
		activityRow("1201", "OTA Receivables", domain.Asset, 850, 0),
		activityRow("5101", "Platform Commission", domain.Expense, 150, 0),
		activityRow("4101", "Nightly Rate Revenue", domain.Revenue, 0, 900),
		activityRow("4102", "Cleaning Fee Revenue", domain.Revenue, 0, 100),
	}

	suite.mockReportingRepo.On("AccountActivity", ctx, asOf, &propertyID).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf, &propertyID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report.PropertyID)
	suite.Equal(propertyID, *report.PropertyID)
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ImbalanceStillReported() {
	ctx := context.Background()
	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := []domain.AccountBalance{
		activityRow("1102", "Bank", domain.Asset, 1000, 0),
		activityRow("4101", "Nightly Rate Revenue", domain.Revenue, 0, 700),
	}

	suite.mockReportingRepo.On("AccountActivity", ctx, asOf, (*string)(nil)).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf, nil)

	// An out-of-balance ledger is surfaced in the report, not as an error.
	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
	suite.True(report.TotalDebits.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalCredits.Equal(decimal.NewFromInt(700)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyLedger() {
	ctx := context.Background()
	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("AccountActivity", ctx, asOf, (*string)(nil)).Return([]domain.AccountBalance{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, asOf, nil)

	suite.Require().NoError(err)
	suite.Empty(report.Accounts)
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepoError() {
	ctx := context.Background()
	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("AccountActivity", ctx, asOf, (*string)(nil)).Return(nil, assert.AnError).Once()

	_, err := suite.service.TrialBalance(ctx, asOf, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
