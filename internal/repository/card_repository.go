package repository

import (
	"context"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const cardFields = `id, column_id, title, description, position, created_at, updated_at`

const cardWithBoardQuery = `
	SELECT
		ca.id,
		ca.column_id,
		ca.title,
		ca.description,
		ca.position,
		ca.created_at,
		ca.updated_at,
		co.board_id,
		b.owner_user_id
	FROM cards ca
	JOIN "columns" co ON ca.column_id = co.id
	JOIN boards b ON co.board_id = b.id
	WHERE ca.id = ?`

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	result := r.db.WithContext(ctx).Raw(`SELECT `+cardFields+` FROM cards WHERE id = ?`, id).Scan(&card)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return &card, nil
}

// GetWithBoard retrieves a card together with its board and the board's owner
func (r *CardRepository) GetWithBoard(ctx context.Context, id uuid.UUID) (*model.CardWithBoard, error) {
	return findCardWithBoard(r.db.WithContext(ctx), id)
}

// GetWithBoardTx is GetWithBoard read through tx
func (r *CardRepository) GetWithBoardTx(ctx context.Context, tx *database.Tx, id uuid.UUID) (*model.CardWithBoard, error) {
	return findCardWithBoard(tx.Conn(ctx), id)
}

func findCardWithBoard(db *gorm.DB, id uuid.UUID) (*model.CardWithBoard, error) {
	var card model.CardWithBoard
	result := db.Raw(cardWithBoardQuery, id).Scan(&card)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return &card, nil
}

// NextPosition returns max(position)+1 over the column's cards, or 1
func (r *CardRepository) NextPosition(ctx context.Context, tx *database.Tx, columnID uuid.UUID) (int, error) {
	var maxPosition int
	err := tx.Conn(ctx).
		Raw(`SELECT COALESCE(MAX(position), 0) FROM cards WHERE column_id = ?`, columnID).
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}
	return maxPosition + 1, nil
}

// CountByColumn counts the cards currently stored in a column
func (r *CardRepository) CountByColumn(ctx context.Context, tx *database.Tx, columnID uuid.UUID) (int, error) {
	var count int
	err := tx.Conn(ctx).
		Raw(`SELECT COUNT(*) FROM cards WHERE column_id = ?`, columnID).
		Scan(&count).Error
	return count, err
}

// Create adds a new card
func (r *CardRepository) Create(ctx context.Context, tx *database.Tx, card *model.Card) error {
	result := tx.Conn(ctx).Create(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// Update writes the non-nil fields of update. Position is never touched here.
func (r *CardRepository) Update(ctx context.Context, id uuid.UUID, update model.CardUpdate) error {
	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}

	result := r.db.WithContext(ctx).Model(&model.Card{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// Delete removes a card by its ID
func (r *CardRepository) Delete(ctx context.Context, tx *database.Tx, id uuid.UUID) error {
	result := tx.Conn(ctx).Exec(`DELETE FROM cards WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// ShiftPositionsDown opens a gap at fromPosition
func (r *CardRepository) ShiftPositionsDown(ctx context.Context, tx *database.Tx, columnID uuid.UUID, fromPosition int) error {
	return tx.Conn(ctx).
		Exec(`UPDATE cards SET position = position + 1 WHERE column_id = ? AND position >= ?`, columnID, fromPosition).
		Error
}

// ShiftPositionsUp closes the gap left at fromPosition
func (r *CardRepository) ShiftPositionsUp(ctx context.Context, tx *database.Tx, columnID uuid.UUID, fromPosition int) error {
	return tx.Conn(ctx).
		Exec(`UPDATE cards SET position = position - 1 WHERE column_id = ? AND position > ?`, columnID, fromPosition).
		Error
}

// UpdateColumnAndPosition places the card at position inside columnID
func (r *CardRepository) UpdateColumnAndPosition(ctx context.Context, tx *database.Tx, id, columnID uuid.UUID, position int) error {
	result := tx.Conn(ctx).Exec(
		`UPDATE cards SET column_id = ?, position = ?, updated_at = NOW() WHERE id = ?`,
		columnID, position, id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
