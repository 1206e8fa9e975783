package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QA-MatchingService/pkg/dbmetrics"
)

// stubScript общий сценарий для соединений заглушки: по одной ошибке
// фиксации на попытку (nil - фиксация проходит)
type stubScript struct {
	commitErrs []error
	begins     int
	rollbacks  int
}

func (s *stubScript) nextCommitErr() error {
	if s.begins > len(s.commitErrs) {
		return nil
	}
	return s.commitErrs[s.begins-1]
}

type stubConnector struct {
	script *stubScript
}

func (c *stubConnector) Connect(context.Context) (driver.Conn, error) {
	return &stubConn{script: c.script}, nil
}

func (c *stubConnector) Driver() driver.Driver { return nil }

type stubConn struct {
	script *stubScript
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("stubConn: prepare is not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("stubConn: use BeginTx")
}

// BeginTx нужен, потому что manager запрашивает уровень изоляции SERIALIZABLE,
// а database/sql требует поддержки driver.ConnBeginTx для нестандартной изоляции
func (c *stubConn) BeginTx(_ context.Context, _ driver.TxOptions) (driver.Tx, error) {
	c.script.begins++
	return &stubTx{script: c.script, commitErr: c.script.nextCommitErr()}, nil
}

type stubTx struct {
	script    *stubScript
	commitErr error
}

func (t *stubTx) Commit() error { return t.commitErr }

func (t *stubTx) Rollback() error {
	t.script.rollbacks++
	return nil
}

func newStubDB(t *testing.T, script *stubScript) *sql.DB {
	t.Helper()
	db := sql.OpenDB(&stubConnector{script: script})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func serializationFailure() *pq.Error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

func TestDoSerializable_Commits(t *testing.T) {
	script := &stubScript{commitErrs: []error{nil}}
	m := NewTransactionManager(newStubDB(t, script))

	called := false
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		called = true
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 1, script.begins)
}

func TestDoSerializable_RetriesOnSerializationConflictAtCommit(t *testing.T) {
	// Первые две фиксации падают с 40001, третья проходит
	script := &stubScript{commitErrs: []error{
		serializationFailure(),
		serializationFailure(),
		nil,
	}}
	m := NewTransactionManager(newStubDB(t, script))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, script.begins)
}

func TestDoSerializable_RetriesWhenConflictIsWrappedByRepository(t *testing.T) {
	// Конфликт сериализации приходит обернутым по цепочке репозиторий -> usecase
	script := &stubScript{commitErrs: []error{nil, nil}}
	m := NewTransactionManager(newStubDB(t, script))

	sentinel := errors.New("usecase: internal error")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			repoErr := fmt.Errorf("storage: failed to execute query: %w", serializationFailure())
			return fmt.Errorf("%w: failed to get request: %w", sentinel, repoErr)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_NonRetryableFnErrorReturnsImmediately(t *testing.T) {
	script := &stubScript{commitErrs: []error{nil, nil, nil}}
	m := NewTransactionManager(newStubDB(t, script))

	businessErr := errors.New("usecase: request already accepted")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return businessErr
	})

	assert.ErrorIs(t, err, businessErr)
	assert.Equal(t, 1, script.begins)
	assert.Equal(t, 1, script.rollbacks)
}

func TestDoSerializable_NonRetryableCommitErrorReturnsImmediately(t *testing.T) {
	script := &stubScript{commitErrs: []error{
		errors.New("driver: bad connection state"),
		nil,
	}}
	m := NewTransactionManager(newStubDB(t, script))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Equal(t, 1, script.begins)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	script := &stubScript{commitErrs: []error{
		serializationFailure(),
		serializationFailure(),
		serializationFailure(),
	}}
	m := NewTransactionManager(newStubDB(t, script))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Equal(t, maxAttempts, script.begins)

	// Исходная причина остается доступной в цепочке
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}
