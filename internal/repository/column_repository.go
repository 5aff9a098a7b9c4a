package repository

import (
	"context"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const columnFields = `id, board_id, name, position, created_at`

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	return findColumn(r.db.WithContext(ctx), id)
}

// GetByIDTx reads the column through tx so it sees the transaction's own writes.
func (r *ColumnRepository) GetByIDTx(ctx context.Context, tx *database.Tx, id uuid.UUID) (*model.Column, error) {
	return findColumn(tx.Conn(ctx), id)
}

func findColumn(db *gorm.DB, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	result := db.Raw(`SELECT `+columnFields+` FROM "columns" WHERE id = ?`, id).Scan(&column)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrColumnNotFound
	}
	return &column, nil
}

// Lock takes row locks on the given columns in id order and holds them until tx
// ends. Every card mutation locks the columns it touches first, so two
// transactions never shift the same column concurrently.
func (r *ColumnRepository) Lock(ctx context.Context, tx *database.Tx, ids ...uuid.UUID) ([]model.Column, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var locked []model.Column
	err := tx.Conn(ctx).
		Raw(`SELECT `+columnFields+` FROM "columns" WHERE id IN ? ORDER BY id FOR UPDATE`, ids).
		Scan(&locked).Error
	if err != nil {
		return nil, err
	}
	if len(locked) != len(uniqueIDs(ids)) {
		return nil, ErrColumnNotFound
	}
	return locked, nil
}

// NextPosition returns max(position)+1 over the board's columns, or 1.
func (r *ColumnRepository) NextPosition(ctx context.Context, tx *database.Tx, boardID uuid.UUID) (int, error) {
	var maxPosition int
	err := tx.Conn(ctx).
		Raw(`SELECT COALESCE(MAX(position), 0) FROM "columns" WHERE board_id = ?`, boardID).
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}
	return maxPosition + 1, nil
}

// ShiftDown opens a gap at fromPosition by moving every column at or after it one slot down.
func (r *ColumnRepository) ShiftDown(ctx context.Context, tx *database.Tx, boardID uuid.UUID, fromPosition int) error {
	return tx.Conn(ctx).
		Exec(`UPDATE "columns" SET position = position + 1 WHERE board_id = ? AND position >= ?`, boardID, fromPosition).
		Error
}

func (r *ColumnRepository) Create(ctx context.Context, tx *database.Tx, column *model.Column) error {
	result := tx.Conn(ctx).Create(column)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// CreateBatch inserts all columns in one statement.
func (r *ColumnRepository) CreateBatch(ctx context.Context, tx *database.Tx, columns []model.Column) error {
	if len(columns) == 0 {
		return nil
	}
	result := tx.Conn(ctx).Create(&columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(columns)) {
		return ErrNoRowsAffected
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
