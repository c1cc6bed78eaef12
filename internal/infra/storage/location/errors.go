package location

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена или удалена
	ErrLocationNotFound = errors.New("location.repository: location not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("location.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("location.repository: failed to scan row")
)
