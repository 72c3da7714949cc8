// Package memstore хранилище в памяти: все репозитории и менеджер транзакций.
// Транзакции выполняются по одной, при ошибке восстанавливается копия данных на момент начала
package memstore

import (
	"context"
	"sync"
	"time"
)

type txKey struct{}

// Store хранилище в памяти
type Store struct {
	txMu sync.Mutex   // сериализует транзакции
	mu   sync.RWMutex // защищает data
	data *data
	now  func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{data: newData(), now: time.Now}
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции. Транзакции хранилища всегда выполняются по одной
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	backup := s.data.clone()
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(backup)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(backup)
		return err
	}
	return nil
}

func (s *Store) restore(backup *data) {
	s.mu.Lock()
	s.data = backup
	s.mu.Unlock()
}

// write выполняет изменение данных. Вне транзакции изменение оборачивается в отдельную транзакцию
func (s *Store) write(ctx context.Context, fn func(d *data) error) error {
	if !inTx(ctx) {
		return s.run(ctx, func(ctx context.Context) error {
			return s.write(ctx, fn)
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) read(fn func(d *data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}
