package service

import (
	"context"
	"errors"

	"taskboard/internal/apperror"
	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type CreateCardInput struct {
	Title       string
	Description string
}

// MoveCardInput targets a column and an optional 1-based slot inside it.
type MoveCardInput struct {
	NewColumnID uuid.UUID
	NewPosition *int
}

var errCardMovedConcurrently = apperror.Conflict("Card was moved concurrently, retry the request")

type CardService struct {
	tx      database.Transactor
	boards  BoardStore
	columns ColumnStore
	cards   CardStore
}

func NewCardService(tx database.Transactor, boards BoardStore, columns ColumnStore, cards CardStore) *CardService {
	return &CardService{tx: tx, boards: boards, columns: columns, cards: cards}
}

// CreateCard appends a card to the end of a column.
func (s *CardService) CreateCard(ctx context.Context, userID, columnID uuid.UUID, in CreateCardInput) (*model.Card, error) {
	column, err := s.columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, storeError(err, "Failed to load column")
	}

	board, err := s.boards.GetByID(ctx, column.BoardID)
	if err != nil {
		return nil, storeError(err, "Failed to load board")
	}

	if err := AssertOwnership(board.OwnerUserID.String(), userID.String()); err != nil {
		return nil, err
	}

	card := &model.Card{ColumnID: column.ID, Title: in.Title, Description: in.Description}

	err = s.tx.WithinTransaction(ctx, func(tx *database.Tx) error {
		if _, err := s.columns.Lock(ctx, tx, column.ID); err != nil {
			return err
		}

		position, err := s.cards.NextPosition(ctx, tx, column.ID)
		if err != nil {
			return err
		}
		card.Position = position

		return s.cards.Create(ctx, tx, card)
	})
	if err != nil {
		return nil, storeError(err, "Failed to create card")
	}
	return card, nil
}

// UpdateCard changes title and description only. With nothing to change it is a plain read.
func (s *CardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, update model.CardUpdate) (*model.Card, error) {
	card, err := s.cards.GetWithBoard(ctx, cardID)
	if err != nil {
		return nil, storeError(err, "Failed to load card")
	}

	if err := AssertOwnership(card.OwnerUserID.String(), userID.String()); err != nil {
		return nil, err
	}

	if !update.Empty() {
		if err := s.cards.Update(ctx, cardID, update); err != nil {
			return nil, storeError(err, "Failed to update card")
		}
	}

	updated, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, storeError(err, "Failed to load card")
	}
	return updated, nil
}

// DeleteCard removes a card and closes the gap it leaves in its column.
func (s *CardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	card, err := s.cards.GetWithBoard(ctx, cardID)
	if err != nil {
		return storeError(err, "Failed to load card")
	}

	if err := AssertOwnership(card.OwnerUserID.String(), userID.String()); err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(tx *database.Tx) error {
		current, err := s.lockCard(ctx, tx, cardID, card.ColumnID)
		if err != nil {
			return err
		}

		if err := s.cards.Delete(ctx, tx, current.ID); err != nil {
			return err
		}
		return s.cards.ShiftPositionsUp(ctx, tx, current.ColumnID, current.Position)
	})
	return storeError(err, "Failed to delete card")
}

// MoveCard places a card at a slot of a column on the same board, keeping both
// the source and the destination column densely numbered.
func (s *CardService) MoveCard(ctx context.Context, userID, cardID uuid.UUID, in MoveCardInput) (*model.Card, error) {
	var unchanged *model.Card

	err := s.tx.WithinTransaction(ctx, func(tx *database.Tx) error {
		card, err := s.cards.GetWithBoardTx(ctx, tx, cardID)
		if err != nil {
			return err
		}

		if err := AssertOwnership(card.OwnerUserID.String(), userID.String()); err != nil {
			return err
		}

		dest, err := s.columns.GetByIDTx(ctx, tx, in.NewColumnID)
		if errors.Is(err, repository.ErrColumnNotFound) {
			return apperror.NotFound("Destination column not found")
		}
		if err != nil {
			return err
		}

		if dest.BoardID != card.BoardID {
			return apperror.Validation(apperror.FieldError{
				Message: "Card and column must belong to the same board",
				Path:    "newColumnId",
				Type:    "column.board",
			})
		}

		card, err = s.lockCard(ctx, tx, cardID, card.ColumnID, dest.ID)
		if err != nil {
			return err
		}

		destCount, err := s.cards.CountByColumn(ctx, tx, dest.ID)
		if err != nil {
			return err
		}
		target := ClampPosition(in.NewPosition, destCount+1)

		if card.ColumnID != dest.ID {
			if err := s.cards.ShiftPositionsUp(ctx, tx, card.ColumnID, card.Position); err != nil {
				return err
			}
			if err := s.cards.ShiftPositionsDown(ctx, tx, dest.ID, target); err != nil {
				return err
			}
			return s.cards.UpdateColumnAndPosition(ctx, tx, card.ID, dest.ID, target)
		}

		if target == card.Position {
			unchanged = &card.Card
			return nil
		}

		if err := s.cards.ShiftPositionsUp(ctx, tx, card.ColumnID, card.Position); err != nil {
			return err
		}

		// The card still occupies a row in the column, so the slots left for it
		// once it is taken out of the ordering are 1..count.
		count, err := s.cards.CountByColumn(ctx, tx, dest.ID)
		if err != nil {
			return err
		}
		target = ClampPosition(&target, count)

		if err := s.cards.ShiftPositionsDown(ctx, tx, dest.ID, target); err != nil {
			return err
		}
		return s.cards.UpdateColumnAndPosition(ctx, tx, card.ID, dest.ID, target)
	})
	if err != nil {
		return nil, storeError(err, "Failed to move card")
	}

	if unchanged != nil {
		return unchanged, nil
	}

	moved, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, storeError(err, "Failed to load card")
	}
	return moved, nil
}

// lockCard locks the given columns and re-reads the card under those locks.
// The card must still sit in expectedColumn, otherwise another transaction
// moved it in between and the caller has to retry.
func (s *CardService) lockCard(ctx context.Context, tx *database.Tx, cardID, expectedColumn uuid.UUID, others ...uuid.UUID) (*model.CardWithBoard, error) {
	if _, err := s.columns.Lock(ctx, tx, append([]uuid.UUID{expectedColumn}, others...)...); err != nil {
		return nil, err
	}

	card, err := s.cards.GetWithBoardTx(ctx, tx, cardID)
	if err != nil {
		return nil, err
	}
	if card.ColumnID != expectedColumn {
		return nil, errCardMovedConcurrently
	}
	return card, nil
}
