package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QA-MatchingService/pkg/dbmetrics"
)

// fakeTx исполнитель транзакции с запрограммированной ошибкой фиксации
type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

// fakeBeginner выдает по одной транзакции на попытку и считает их
type fakeBeginner struct {
	txs    []*fakeTx
	begins int
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.begins >= len(b.txs) {
		return nil, errors.New("fakeBeginner: no transactions left")
	}
	tx := b.txs[b.begins]
	b.begins++
	return tx, nil
}

func serializationFailure() *pq.Error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

func TestDoSerializable_RetriesOnSerializationConflictAtCommit(t *testing.T) {
	// Первые две фиксации падают с 40001, третья проходит
	beginner := &fakeBeginner{txs: []*fakeTx{
		{commitErr: serializationFailure()},
		{commitErr: serializationFailure()},
		{},
	}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, beginner.begins)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.True(t, beginner.txs[1].rolledBack)
	assert.True(t, beginner.txs[2].committed)
}

func TestDoSerializable_RetriesWhenConflictIsWrappedByRepository(t *testing.T) {
	// Конфликт сериализации приходит не голым, а обернутым по цепочке
	// репозиторий -> usecase, как в реальном коде
	beginner := &fakeBeginner{txs: []*fakeTx{{}, {}}}
	m := NewTransactionManager(beginner)

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
	assert.True(t, beginner.txs[0].rolledBack)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_NonRetryableFnErrorReturnsImmediately(t *testing.T) {
	beginner := &fakeBeginner{txs: []*fakeTx{{}, {}, {}}}
	m := NewTransactionManager(beginner)

	businessErr := errors.New("usecase: request already accepted")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return businessErr
	})

	assert.ErrorIs(t, err, businessErr)
	assert.Equal(t, 1, beginner.begins)
	assert.True(t, beginner.txs[0].rolledBack)
}

func TestDoSerializable_NonRetryableCommitErrorReturnsImmediately(t *testing.T) {
	beginner := &fakeBeginner{txs: []*fakeTx{
		{commitErr: errors.New("driver: bad connection")},
		{},
	}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Equal(t, 1, beginner.begins)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	beginner := &fakeBeginner{txs: []*fakeTx{
		{commitErr: serializationFailure()},
		{commitErr: serializationFailure()},
		{commitErr: serializationFailure()},
	}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.Equal(t, maxAttempts, beginner.begins)

	// Исходная причина остается доступной в цепочке
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestDoSerializable_ExecutorIsPassedToFn(t *testing.T) {
	tx := &fakeTx{}
	beginner := &fakeBeginner{txs: []*fakeTx{tx}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		assert.Same(t, tx, dbmetrics.GetExecutor(ctx, nil))
		return nil
	})
	require.NoError(t, err)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"конфликт сериализации", serializationFailure(), true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"обернутый конфликт", fmt.Errorf("storage: query failed: %w", serializationFailure()), true},
		{"другой код pq", &pq.Error{Code: "23505"}, false},
		{"обычная ошибка", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}
