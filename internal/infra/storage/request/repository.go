package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const table = "booking_requests"

var columns = []string{
	"id",
	"booking_id",
	"requester_id",
	"request_type",
	"reason",
	"status",
	"reviewer_id",
	"reviewed_at",
	"admin_notes",
	"created_at",
}

// Repository репозиторий заявок на отмену и перенос из-за погоды
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ожидающую заявку.
// Частичный уникальный индекс (booking_id, request_type) WHERE status = 'pending'
// не даёт создать вторую ожидающую заявку того же типа.
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("booking_id", "requester_id", "request_type", "reason", "status").
		Values(req.BookingID, req.RequesterID, string(req.Type), req.Reason, string(domain.RequestStatusPending)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicatePending
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.Status = domain.RequestStatusPending
	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
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

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// FindPending ищет ожидающую заявку указанного типа по бронированию
func (r *Repository) FindPending(ctx context.Context, bookingID int64, reqType domain.RequestType) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := findPendingQuery(bookingID, reqType).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindPending - build select query: %w", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindPending - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// List возвращает заявки с указанным статусом (все, если status == nil), новые первыми
func (r *Repository) List(ctx context.Context, status *domain.RequestStatus, limit uint64) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.BookingRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return requests, nil
}

// Resolve переводит ожидающую заявку в терминальный статус.
// Условие status = 'pending' делает переход однократным: из двух конкурирующих
// рассмотрений выигрывает только одно, второе получает ErrNotPending.
func (r *Repository) Resolve(ctx context.Context, review domain.Review) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := resolveQuery(review).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

func findPendingQuery(bookingID int64, reqType domain.RequestType) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"booking_id":   bookingID,
			"request_type": string(reqType),
			"status":       string(domain.RequestStatusPending),
		}).
		Limit(1)
}

func resolveQuery(review domain.Review) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("status", string(review.Status)).
		Set("reviewer_id", review.ReviewerID).
		Set("reviewed_at", review.ReviewedAt.UTC()).
		Set("admin_notes", review.Notes).
		Where(squirrel.Eq{"id": review.RequestID}).
		Where(squirrel.Eq{"status": string(domain.RequestStatusPending)})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	var reqType, status string

	err := row.Scan(
		&req.ID,
		&req.BookingID,
		&req.RequesterID,
		&reqType,
		&req.Reason,
		&status,
		&req.ReviewerID,
		&req.ReviewedAt,
		&req.AdminNotes,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Type = domain.RequestType(reqType)
	req.Status = domain.RequestStatus(status)
	return &req, nil
}
