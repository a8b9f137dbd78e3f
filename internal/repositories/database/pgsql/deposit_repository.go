package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hostfolio/property_mgmt_app/internal/apperrors"
	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	"github.com/hostfolio/property_mgmt_app/internal/models"
	"github.com/hostfolio/property_mgmt_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDepositRepository struct {
	BaseRepository
}

// newPgxDepositRepository creates a new repository for tenancy deposit data.
func newPgxDepositRepository(pool *pgxpool.Pool) portsrepo.DepositRepositoryFacade {
	return &PgxDepositRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDepositRepository implements portsrepo.DepositRepositoryFacade
var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

const tenancyColumns = `tenancy_id, property_id, tenant_name, security_deposit, deposit_status, created_at, last_updated_at`

func scanTenancy(row pgx.Row) (*domain.Tenancy, error) {
	var m models.Tenancy
	err := row.Scan(
		&m.TenancyID,
		&m.PropertyID,
		&m.TenantName,
		&m.SecurityDeposit,
		&m.DepositStatus,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t := mapping.ToDomainTenancy(m)
	return &t, nil
}

// FindTenancyByID retrieves a tenancy record.
func (r *PgxDepositRepository) FindTenancyByID(ctx context.Context, tenancyID string) (*domain.Tenancy, error) {
	query := `SELECT ` + tenancyColumns + ` FROM tenancies WHERE tenancy_id = $1;`

	tenancy, err := scanTenancy(r.Pool.QueryRow(ctx, query, tenancyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenancy by ID %s: %w", tenancyID, err)
	}
	return tenancy, nil
}

// SaveDepositTransaction persists a deposit movement.
func (r *PgxDepositRepository) SaveDepositTransaction(ctx context.Context, txn domain.DepositTransaction) error {
	m := mapping.ToModelDepositTransaction(txn)

	query := `
		INSERT INTO deposit_transactions (transaction_id, tenancy_id, property_id, transaction_type, amount, transaction_date, description, deduction_reason, journal_entry_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.TenancyID,
		m.PropertyID,
		m.TransactionType,
		m.Amount,
		m.TransactionDate,
		m.Description,
		m.DeductionReason,
		m.JournalEntryID,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save deposit transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListDepositTransactions retrieves a tenancy's deposit history in
// chronological order.
func (r *PgxDepositRepository) ListDepositTransactions(ctx context.Context, tenancyID string) ([]domain.DepositTransaction, error) {
	query := `
		SELECT transaction_id, tenancy_id, property_id, transaction_type, amount, transaction_date, description, deduction_reason, journal_entry_id, created_at
		FROM deposit_transactions
		WHERE tenancy_id = $1
		ORDER BY transaction_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenancyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposit transactions for tenancy %s: %w", tenancyID, err)
	}
	defer rows.Close()

	txns := []models.DepositTransaction{}
	for rows.Next() {
		var m models.DepositTransaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.TenancyID,
			&m.PropertyID,
			&m.TransactionType,
			&m.Amount,
			&m.TransactionDate,
			&m.Description,
			&m.DeductionReason,
			&m.JournalEntryID,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deposit transaction row for tenancy %s: %w", tenancyID, err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposit transaction rows for tenancy %s: %w", tenancyID, err)
	}
	return mapping.ToDomainDepositTransactionSlice(txns), nil
}

// UpdateTenancyDepositStatus stores the derived deposit status.
func (r *PgxDepositRepository) UpdateTenancyDepositStatus(ctx context.Context, tenancyID string, status domain.DepositStatus) error {
	query := `
		UPDATE tenancies
		SET deposit_status = $2, last_updated_at = NOW()
		WHERE tenancy_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenancyID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update deposit status for tenancy %s: %w", tenancyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListTenanciesWithDeposit retrieves tenancies holding a security deposit,
// optionally filtered by derived deposit status.
func (r *PgxDepositRepository) ListTenanciesWithDeposit(ctx context.Context, status *domain.DepositStatus) ([]domain.Tenancy, error) {
	query := `SELECT ` + tenancyColumns + ` FROM tenancies WHERE security_deposit > 0`
	args := []interface{}{}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND deposit_status = $1`
	}
	query += ` ORDER BY tenant_name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenancies with deposits: %w", err)
	}
	defer rows.Close()

	tenancies := []domain.Tenancy{}
	for rows.Next() {
		tenancy, err := scanTenancy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenancy row: %w", err)
		}
		tenancies = append(tenancies, *tenancy)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenancy rows: %w", err)
	}
	return tenancies, nil
}
