package history

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const table = "cancellation_history"

// Repository журнал отменённых бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория истории отмен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет снимок отменённого бронирования
func (r *Repository) Create(ctx context.Context, record *domain.CancellationHistoryRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"booking_id",
			"request_id",
			"user_id",
			"coach_id",
			"location_id",
			"start_time",
			"end_time",
			"service_name",
			"credit_cost",
			"reason",
			"cancelled_by",
		).
		Values(
			record.BookingID,
			record.RequestID,
			record.UserID,
			record.CoachID,
			record.LocationID,
			record.StartTime.UTC(),
			record.EndTime.UTC(),
			record.ServiceName,
			record.CreditCost,
			record.Reason,
			record.CancelledBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
