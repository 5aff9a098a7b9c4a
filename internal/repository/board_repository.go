package repository

import (
	"context"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, tx *database.Tx, board *model.Board) error {
	result := tx.Conn(ctx).Create(board)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// GetOwned lists the boards of an owner, newest first.
func (r *BoardRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	result := r.db.WithContext(ctx).
		Raw(`SELECT id, name, owner_user_id, created_at FROM boards WHERE id = ?`, id).
		Scan(&board)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBoardNotFound
	}
	return &board, nil
}

// LockByID loads the board and holds a row lock on it until tx ends.
// Column insertions take this lock so shifts on one board never interleave.
func (r *BoardRepository) LockByID(ctx context.Context, tx *database.Tx, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	result := tx.Conn(ctx).
		Raw(`SELECT id, name, owner_user_id, created_at FROM boards WHERE id = ? FOR UPDATE`, id).
		Scan(&board)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBoardNotFound
	}
	return &board, nil
}

// Delete removes the board if it belongs to ownerID. Columns and cards go with it
// through the foreign key cascade. It reports whether a row was deleted.
func (r *BoardRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM boards WHERE id = ? AND owner_user_id = ?`, id, ownerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type boardColumnRow struct {
	ColumnID        uuid.UUID
	ColumnName      string
	ColumnPosition  int
	ColumnCreatedAt time.Time
	CardID          uuid.NullUUID
	CardTitle       *string
	CardDescription *string
	CardPosition    *int
	CardCreatedAt   *time.Time
	CardUpdatedAt   *time.Time
}

// GetColumnsWithCards returns the columns of a board ordered by position, each
// carrying its cards ordered by position.
func (r *BoardRepository) GetColumnsWithCards(ctx context.Context, boardID uuid.UUID) ([]model.ColumnWithCards, error) {
	var rows []boardColumnRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS column_id,
			c.name AS column_name,
			c.position AS column_position,
			c.created_at AS column_created_at,
			ca.id AS card_id,
			ca.title AS card_title,
			ca.description AS card_description,
			ca.position AS card_position,
			ca.created_at AS card_created_at,
			ca.updated_at AS card_updated_at
		FROM "columns" c
		LEFT JOIN cards ca ON ca.column_id = c.id
		WHERE c.board_id = ?
		ORDER BY c.position ASC, ca.position ASC`, boardID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return groupBoardColumns(boardID, rows), nil
}

func groupBoardColumns(boardID uuid.UUID, rows []boardColumnRow) []model.ColumnWithCards {
	columns := make([]model.ColumnWithCards, 0)
	index := make(map[uuid.UUID]int)

	for _, row := range rows {
		i, ok := index[row.ColumnID]
		if !ok {
			i = len(columns)
			index[row.ColumnID] = i
			columns = append(columns, model.ColumnWithCards{
				Column: model.Column{
					ID:        row.ColumnID,
					BoardID:   boardID,
					Name:      row.ColumnName,
					Position:  row.ColumnPosition,
					CreatedAt: row.ColumnCreatedAt,
				},
				Cards: make([]model.Card, 0),
			})
		}

		if !row.CardID.Valid {
			continue
		}
		card := model.Card{
			ID:       row.CardID.UUID,
			ColumnID: row.ColumnID,
		}
		if row.CardTitle != nil {
			card.Title = *row.CardTitle
		}
		if row.CardDescription != nil {
			card.Description = *row.CardDescription
		}
		if row.CardPosition != nil {
			card.Position = *row.CardPosition
		}
		if row.CardCreatedAt != nil {
			card.CreatedAt = *row.CardCreatedAt
		}
		if row.CardUpdatedAt != nil {
			card.UpdatedAt = *row.CardUpdatedAt
		}
		columns[i].Cards = append(columns[i].Cards, card)
	}

	return columns
}
