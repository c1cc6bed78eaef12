package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

const defaultStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, собирающая метрики запросов и пула соединений.
// metrics может быть nil - тогда обёртка просто проксирует вызовы.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула
// каждые 15 секунд до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectPoolStats(dbName, defaultStatsInterval, stopCh)
	}
	return wrapped
}

// ExecContext выполняет запрос без возврата строк
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	observe(d.metrics, query, start, err)
	return res, err
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	observe(d.metrics, query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий не более одной строки
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	observe(d.metrics, query, start, row.Err())
	return row
}

// BeginTx начинает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// PingContext проверяет соединение с БД
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает пул соединений
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) collectPoolStats(dbName string, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
			d.metrics.DBInUseConnections.WithLabelValues(dbName).Set(float64(stats.InUse))
			d.metrics.DBIdleConnections.WithLabelValues(dbName).Set(float64(stats.Idle))
			d.metrics.DBWaitCount.WithLabelValues(dbName).Set(float64(stats.WaitCount))
			d.metrics.DBWaitDurationTotal.WithLabelValues(dbName).Set(stats.WaitDuration.Seconds())
		}
	}
}

// Tx транзакция с метриками
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext выполняет запрос внутри транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	observe(t.metrics, query, start, err)
	return res, err
}

// QueryContext выполняет запрос внутри транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	observe(t.metrics, query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	observe(t.metrics, query, start, row.Err())
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func observe(m *metrics.Metrics, query string, start time.Time, err error) {
	if m == nil {
		return
	}
	op := operation(query)
	m.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(op).Inc()
	}
}

// operation возвращает тип запроса (select, insert, update, delete) для метки метрики
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	switch op := strings.ToLower(fields[0]); op {
	case "select", "insert", "update", "delete", "with":
		return op
	default:
		return "other"
	}
}
