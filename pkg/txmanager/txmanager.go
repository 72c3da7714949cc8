package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
)

const (
	defaultLockTimeout = 3 * time.Second
	defaultMaxRetries  = 3
	defaultRetryBase   = 20 * time.Millisecond
)

// Коды ошибок PostgreSQL, после которых транзакцию можно повторить
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

var (
	// ErrSerialization конфликт сериализации или дедлок
	ErrSerialization = errors.New("txmanager: serialization failure")

	// ErrLockTimeout не удалось дождаться блокировки за lock_timeout
	ErrLockTimeout = errors.New("txmanager: lock timeout")

	// ErrBeginTx ошибка открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit ошибка фиксации транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)

// Beginner источник транзакций (*dbmetrics.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithLockTimeout задает SET LOCAL lock_timeout для каждой транзакции (0 отключает)
func WithLockTimeout(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.lockTimeout = d
	}
}

// WithMaxRetries задает число повторов сериализуемой транзакции
func WithMaxRetries(n uint64) Option {
	return func(m *TransactionManager) {
		m.maxRetries = n
	}
}

// WithRetryBase задает начальную задержку экспоненциального backoff
func WithRetryBase(d time.Duration) Option {
	return func(m *TransactionManager) {
		m.retryBase = d
	}
}

// TransactionManager управляет транзакциями и кладет их в контекст
// Репозитории достают транзакцию через dbmetrics.GetExecutor
type TransactionManager struct {
	db          Beginner
	lockTimeout time.Duration
	maxRetries  uint64
	retryBase   time.Duration
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db Beginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:          db,
		lockTimeout: defaultLockTimeout,
		maxRetries:  defaultMaxRetries,
		retryBase:   defaultRetryBase,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}
	return m.runOnce(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}
	return m.runOnce(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации или таймауте блокировки транзакция повторяется целиком.
// После исчерпания попыток возвращается ошибка, для которой IsRetryable == true
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	backoff := retry.WithMaxRetries(m.maxRetries, retry.NewExponential(m.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := m.runOnce(ctx, opts, fn)
		if IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, classify(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if m.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return classify(err)
		}
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, classify(err))
	}
	return nil
}

// IsRetryable возвращает true для конфликтов сериализации и таймаутов блокировки
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSerialization) || errors.Is(err, ErrLockTimeout) {
		return true
	}
	return pqCode(err) != ""
}

// classify помечает ошибки PostgreSQL, после которых транзакцию можно повторить
func classify(err error) error {
	switch pqCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		if errors.Is(err, ErrSerialization) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	case codeLockNotAvailable:
		if errors.Is(err, ErrLockTimeout) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrLockTimeout, err)
	default:
		return err
	}
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ""
	}
	switch code := string(pqErr.Code); code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return code
	default:
		return ""
	}
}
