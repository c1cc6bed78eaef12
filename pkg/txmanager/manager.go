package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBooking/pkg/dbmetrics"
)

const defaultSerializableRetries = 3

// Коды ошибок PostgreSQL, при которых транзакцию безопасно повторить
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// ErrTransaction возвращается при ошибках управления транзакцией
var ErrTransaction = errors.New("txmanager: transaction error")

// TxBeginner интерфейс для начала транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
type TransactionManager struct {
	db         TxBeginner
	maxRetries int
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, maxRetries: defaultSerializableRetries}
}

// WithMaxRetries задаёт число повторов сериализуемой транзакции при конфликте
func (m *TransactionManager) WithMaxRetries(n int) *TransactionManager {
	m.maxRetries = n
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При ошибке сериализации (40001) или дедлоке (40P01) транзакция повторяется целиком.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в read-only транзакции REPEATABLE READ
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w: rollback: %v (original error: %w)", ErrTransaction, rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}
	return nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
}
