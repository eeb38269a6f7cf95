package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager implements repositories.TxManager on a GORM database. The
// transaction handle travels in the context, so repository calls made inside
// the callback join the same database transaction.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx runs fn inside a single database transaction
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom resolves the database handle for the given context: the enclosing
// transaction when there is one, the plain connection otherwise
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
