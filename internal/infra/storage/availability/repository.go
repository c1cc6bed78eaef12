package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const (
	table          = "availability"
	locationsTable = "locations"

	// insertChunkSize ограничивает число строк в одном INSERT (лимит параметров PostgreSQL - 65535)
	insertChunkSize = 500
)

var columns = []string{
	"a.id",
	"a.location_id",
	"a.start_time",
	"a.end_time",
	"a.service_name",
	"a.max_capacity",
	"a.is_booked",
	"a.created_at",
}

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет слоты пачками. Уже существующие слоты
// (location_id, start_time, end_time) пропускаются. Возвращает число созданных слотов.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Availability) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := 0
	for from := 0; from < len(slots); from += insertChunkSize {
		to := from + insertChunkSize
		if to > len(slots) {
			to = len(slots)
		}

		insertBuilder := psqlbuilder.Insert(table).
			Columns("location_id", "start_time", "end_time", "service_name", "max_capacity", "is_booked")
		for _, slot := range slots[from:to] {
			insertBuilder = insertBuilder.Values(
				slot.LocationID,
				slot.StartTime.UTC(),
				slot.EndTime.UTC(),
				slot.ServiceName,
				slot.MaxCapacity,
				false,
			)
		}

		query, args, err := insertBuilder.
			Suffix("ON CONFLICT (location_id, start_time, end_time) DO NOTHING").
			ToSql()
		if err != nil {
			return created, fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return created, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("%w: CreateBatch - get rows affected: %w", ErrExecQuery, err)
		}
		created += int(rowsAffected)
	}

	return created, nil
}

// List возвращает слоты с началом в [From, To] для неудалённых локаций
func (r *Repository) List(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().
		Where(squirrel.GtOrEq{"a.start_time": filter.From.UTC()}).
		Where(squirrel.LtOrEq{"a.start_time": filter.To.UTC()})

	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.location_id": *filter.LocationID})
	}
	if filter.OnlyOpen {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.is_booked": false})
	}

	query, args, err := selectBuilder.OrderBy("a.start_time ASC", "a.location_id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListWithin возвращает слоты локации, целиком лежащие внутри интервала [start, end),
// отсортированные по началу. Внутри транзакции строки блокируются (FOR UPDATE OF a),
// поэтому конкурирующие бронирования одних и тех же слотов выполняются последовательно.
func (r *Repository) ListWithin(ctx context.Context, locationID int64, start, end time.Time) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listWithinQuery(locationID, start, end, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithin - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithin - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// SetBooked обновляет флаг заполненности слота
func (r *Repository) SetBooked(ctx context.Context, id int64, booked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_booked", booked).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetBooked - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBooked - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetBooked - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func listWithinQuery(locationID int64, start, end time.Time, lock bool) squirrel.SelectBuilder {
	selectBuilder := baseSelect().
		Where(squirrel.Eq{"a.location_id": locationID}).
		Where(squirrel.GtOrEq{"a.start_time": start.UTC()}).
		Where(squirrel.LtOrEq{"a.end_time": end.UTC()}).
		OrderBy("a.start_time ASC")

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}
	return selectBuilder
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(table + " a").
		Join(locationsTable + " l ON l.id = a.location_id AND l.deleted_at IS NULL")
}

func scanSlots(rows *sql.Rows) ([]*domain.Availability, error) {
	slots := make([]*domain.Availability, 0)

	for rows.Next() {
		var slot domain.Availability
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.LocationID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.ServiceName,
			&slot.MaxCapacity,
			&slot.IsBooked,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}

		slot.StartTime = slot.StartTime.UTC()
		slot.EndTime = slot.EndTime.UTC()
		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
