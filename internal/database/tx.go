package database

import (
	"context"
	"fmt"
	"log"

	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
)

// Tx is an open unit of work. Every statement issued through it runs on the
// same connection and commits or rolls back together.
type Tx struct {
	db *gorm.DB
}

// NewTx wraps an already started gorm transaction.
func NewTx(db *gorm.DB) *Tx {
	return &Tx{db: db}
}

// Conn returns the transaction handle bound to ctx.
func (t *Tx) Conn(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

// Transactor runs fn inside a single transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *Tx) error) error
}

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

var _ Transactor = (*TxManager)(nil)

// WithinTransaction begins a transaction, runs fn and commits. If fn returns an
// error or panics the transaction is rolled back and the connection released
// before the error propagates.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(tx *Tx) error) (err error) {
	gtx := m.db.WithContext(ctx).Begin()
	if gtx.Error != nil {
		return fmt.Errorf("begin transaction: %w", gtx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := gtx.Rollback().Error; rbErr != nil {
				log.Printf("⚠️  rollback after panic failed: %v", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(NewTx(gtx)); err != nil {
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			log.Printf("⚠️  rollback failed: %v", rbErr)
			return multierror.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := gtx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
