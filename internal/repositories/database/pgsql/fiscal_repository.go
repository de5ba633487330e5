package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agribooks/ledger-core/internal/apperrors"
	"github.com/agribooks/ledger-core/internal/core/domain"
	portsrepo "github.com/agribooks/ledger-core/internal/core/ports/repositories"
	"github.com/agribooks/ledger-core/internal/models"
	"github.com/agribooks/ledger-core/internal/utils/mapping"
)

const periodColumns = `period_id, name, fiscal_year, period_number, start_date, end_date, is_closed, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

type PgxFiscalRepository struct {
	BaseRepository
}

// newPgxFiscalRepository creates a new repository for fiscal period data.
func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalPeriodRepository {
	return &PgxFiscalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxFiscalRepository implements portsrepo.FiscalPeriodRepository
var _ portsrepo.FiscalPeriodRepository = (*PgxFiscalRepository)(nil)

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.FiscalYear,
		&m.PeriodNumber,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriods persists a year's periods in one transaction.
func (r *PgxFiscalRepository) SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error {
	if len(periods) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, period := range periods {
		m := mapping.ToModelFiscalPeriod(period)
		batch.Queue(query,
			m.PeriodID,
			m.Name,
			m.FiscalYear,
			m.PeriodNumber,
			m.StartDate,
			m.EndDate,
			m.IsClosed,
			m.ClosedAt,
			m.ClosedBy,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: fiscal year %d already has periods", apperrors.ErrDuplicate, periods[i].FiscalYear)
			}
			return fmt.Errorf("failed to save period %d of year %d: %w", periods[i].PeriodNumber, periods[i].FiscalYear, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close period insert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by ID %s: %w", periodID, err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// FindPeriodForDate retrieves the period whose range contains the date.
func (r *PgxFiscalRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE start_date <= $1 AND end_date >= $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period for date %s: %w", date.Format(time.DateOnly), err)
	}

	d := mapping.ToDomainFiscalPeriod(m)
	return &d, nil
}

// ListPeriodsByYear retrieves a year's periods ordered by period number.
func (r *PgxFiscalRepository) ListPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE fiscal_year = $1 ORDER BY period_number;`

	rows, err := r.Pool.Query(ctx, query, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for year %d: %w", fiscalYear, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row for year %d: %w", fiscalYear, err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows for year %d: %w", fiscalYear, err)
	}
	return periods, nil
}

// ClosePeriod flips a period to closed. Closing an already-closed period is
// a no-op so retries stay safe.
func (r *PgxFiscalRepository) ClosePeriod(ctx context.Context, periodID string, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET is_closed = TRUE, closed_at = $2, closed_by = $3, last_updated_at = $4, last_updated_by = $3
		WHERE period_id = $1 AND is_closed = FALSE;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, periodID, closedAt, closedBy, closedAt)
	if err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing period from one already closed.
		if _, findErr := r.FindPeriodByID(ctx, periodID); findErr != nil {
			return findErr
		}
	}
	return nil
}
