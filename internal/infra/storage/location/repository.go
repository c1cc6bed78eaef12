package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/psqlbuilder"
)

const table = "locations"

// Repository репозиторий для чтения локаций (кортов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActive получает неудалённую локацию по ID
func (r *Repository) GetActive(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "deleted_at").
		From(table).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %w", ErrBuildQuery, err)
	}

	var location domain.Location
	err = executor.QueryRowContext(ctx, query, args...).Scan(&location.ID, &location.Name, &location.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan location: %w", ErrScanRow, err)
	}

	return &location, nil
}
