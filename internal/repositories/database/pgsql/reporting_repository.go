package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/hostfolio/property_mgmt_app/internal/core/domain"
	portsrepo "github.com/hostfolio/property_mgmt_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// AccountActivity sums debit and credit totals per active account over
// posted entries dated on or before asOf. Accounts with no activity are
// filtered out; ordering follows the chart of accounts.
func (r *reportingRepository) AccountActivity(ctx context.Context, asOf time.Time, propertyID *string) ([]domain.AccountBalance, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE a.is_active = TRUE
			AND e.is_posted = TRUE
			AND e.entry_date <= $1
	`
	args := []interface{}{asOf}
	if propertyID != nil {
		args = append(args, *propertyID)
		query += ` AND l.property_id = $2`
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.display_order
		HAVING SUM(l.debit) > 0 OR SUM(l.credit) > 0
		ORDER BY a.display_order, a.code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountBalance{}
	for rows.Next() {
		var row domain.AccountBalance
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.DebitTotal,
			&row.CreditTotal,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}
