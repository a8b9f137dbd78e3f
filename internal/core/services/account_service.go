package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hostfolio/property_mgmt_app/internal/apperrors"
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/hostfolio/property_mgmt_app/internal/core/ports/services"
	"github.com/hostfolio/property_mgmt_app/internal/dto"
	"github.com/hostfolio/property_mgmt_app/internal/middleware"
)

var (
	ErrDuplicateCode    = errors.New("account code already exists")
	ErrProtectedAccount = errors.New("system accounts cannot be deleted")
	ErrAccountInUse     = errors.New("account has journal activity and cannot be deleted")
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after checking code uniqueness.
// Implements portssvc.AccountSvcFacade
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	allowManual := true
	if req.AllowManualEntries != nil {
		allowManual = *req.AllowManualEntries
	}

	account := domain.Account{
		AccountID:           uuid.NewString(),
		Code:                req.Code,
		Name:                req.Name,
		AccountType:         req.AccountType,
		ParentCode:          req.ParentCode,
		IsSystem:            req.IsSystem,
		IsActive:            true,
		AllowManualEntries:  allowManual,
		DefaultVATTreatment: req.DefaultVATTreatment,
		DisplayOrder:        req.DisplayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific account by its ID.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its chart-of-accounts code.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts matching the listing parameters, ordered by
// display order then code.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := domain.AccountFilter{
		AccountType: params.AccountType,
		ActiveOnly:  params.ActiveOnly,
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	logger.Debug("Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

// UpdateAccount applies a partial update to an account. Code and account type
// are immutable and not part of the patch.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	patch := req.ToPatch()
	if patch.IsEmpty() {
		logger.Debug("No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.ParentCode != nil {
		account.ParentCode = *patch.ParentCode
	}
	if patch.IsActive != nil {
		account.IsActive = *patch.IsActive
	}
	if patch.AllowManualEntries != nil {
		account.AllowManualEntries = *patch.AllowManualEntries
	}
	if patch.DefaultVATTreatment != nil {
		account.DefaultVATTreatment = *patch.DefaultVATTreatment
	}
	if patch.DisplayOrder != nil {
		account.DisplayOrder = *patch.DisplayOrder
	}
	account.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to save account update", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save account update: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive without removing it.
// Implements portssvc.AccountSvcFacade
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return account, nil
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID), slog.String("code", account.Code))
	return account, nil
}

// DeleteAccount removes an account that is not a system account and carries
// no journal activity.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsSystem {
		return fmt.Errorf("%w: %s", ErrProtectedAccount, account.Code)
	}

	inUse, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		logger.Error("Failed to check account usage", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: %s", ErrAccountInUse, account.Code)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("code", account.Code))
	return nil
}
