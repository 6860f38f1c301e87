package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := &DB{db: &sql.DB{}}

	t.Run("without transaction returns db", func(t *testing.T) {
		ctx := context.Background()
		assert.False(t, IsInTransaction(ctx))
		assert.Same(t, db, GetExecutor(ctx, db))
	})

	t.Run("with transaction returns tx", func(t *testing.T) {
		tx := &fakeTx{}
		ctx := WithTx(context.Background(), tx)
		assert.True(t, IsInTransaction(ctx))
		assert.Same(t, tx, GetExecutor(ctx, db))
	})
}

func TestOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM bookings":           "select",
		"  insert INTO bookings (id) VALUES": "insert",
		"UPDATE bookings SET status = $1":    "update",
		"DELETE FROM bookings":               "delete",
		"WITH x AS (SELECT 1) SELECT * FROM": "other",
		"":                                   "other",
	}

	for query, want := range tests {
		assert.Equal(t, want, operation(query), query)
	}
}
