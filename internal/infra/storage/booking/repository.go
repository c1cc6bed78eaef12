package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"location_id",
	"user_id",
	"coach_id",
	"start_time",
	"end_time",
	"service_name",
	"credit_cost",
	"academy_id",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается CapacityGate внутри сериализуемой транзакции (через context.Value),
// уникальный индекс (location_id, start_time, end_time, user_id) не даёт записаться дважды.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"location_id",
			"user_id",
			"coach_id",
			"start_time",
			"end_time",
			"service_name",
			"credit_cost",
			"academy_id",
		).
		Values(
			booking.LocationID,
			booking.UserID,
			booking.CoachID,
			booking.StartTime.UTC(),
			booking.EndTime.UTC(),
			booking.ServiceName,
			booking.CreditCost,
			booking.AcademyID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией, отсортированные по времени начала
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.CoachID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"coach_id": *filter.CoachID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": filter.From.UTC()})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": filter.To.UTC()})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "location_id ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountOverlapping считает бронирования локации, пересекающиеся с интервалом [start, end).
// Граничащие интервалы (конец одного = начало другого) пересечением не считаются.
func (r *Repository) CountOverlapping(ctx context.Context, locationID int64, start, end time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countOverlappingQuery(locationID, start, end).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountOverlapping - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateCoachForSession назначает тренера всем бронированиям сессии одним UPDATE.
// Конкурирующие назначения разрешаются по принципу "последняя запись побеждает".
func (r *Repository) UpdateCoachForSession(ctx context.Context, key domain.SessionKey, coachID *int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateCoachQuery(key, coachID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCoachForSession - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCoachForSession - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UpdateCoachForSession - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func countOverlappingQuery(locationID int64, start, end time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Lt{"start_time": end.UTC()}).
		Where(squirrel.Gt{"end_time": start.UTC()})
}

func updateCoachQuery(key domain.SessionKey, coachID *int64) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("coach_id", coachID).
		Where(squirrel.Eq{"location_id": key.LocationID}).
		Where(squirrel.Eq{"start_time": time.Unix(key.StartUnix, 0).UTC()}).
		Where(squirrel.Eq{"end_time": time.Unix(key.EndUnix, 0).UTC()})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.LocationID,
		&booking.UserID,
		&booking.CoachID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.ServiceName,
		&booking.CreditCost,
		&booking.AcademyID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.StartTime = booking.StartTime.UTC()
	booking.EndTime = booking.EndTime.UTC()
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
