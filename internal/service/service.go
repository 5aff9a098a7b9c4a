// Package service holds the business rules of the task board: ownership checks
// and the transactional protocols that keep column and card positions dense.
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

type BoardStore interface {
	Create(ctx context.Context, tx *database.Tx, board *model.Board) error
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	LockByID(ctx context.Context, tx *database.Tx, id uuid.UUID) (*model.Board, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	GetColumnsWithCards(ctx context.Context, boardID uuid.UUID) ([]model.ColumnWithCards, error)
}

type ColumnStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Column, error)
	GetByIDTx(ctx context.Context, tx *database.Tx, id uuid.UUID) (*model.Column, error)
	Lock(ctx context.Context, tx *database.Tx, ids ...uuid.UUID) ([]model.Column, error)
	NextPosition(ctx context.Context, tx *database.Tx, boardID uuid.UUID) (int, error)
	ShiftDown(ctx context.Context, tx *database.Tx, boardID uuid.UUID, fromPosition int) error
	Create(ctx context.Context, tx *database.Tx, column *model.Column) error
	CreateBatch(ctx context.Context, tx *database.Tx, columns []model.Column) error
}

type CardStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error)
	GetWithBoard(ctx context.Context, id uuid.UUID) (*model.CardWithBoard, error)
	GetWithBoardTx(ctx context.Context, tx *database.Tx, id uuid.UUID) (*model.CardWithBoard, error)
	NextPosition(ctx context.Context, tx *database.Tx, columnID uuid.UUID) (int, error)
	CountByColumn(ctx context.Context, tx *database.Tx, columnID uuid.UUID) (int, error)
	Create(ctx context.Context, tx *database.Tx, card *model.Card) error
	Update(ctx context.Context, id uuid.UUID, update model.CardUpdate) error
	Delete(ctx context.Context, tx *database.Tx, id uuid.UUID) error
	ShiftPositionsDown(ctx context.Context, tx *database.Tx, columnID uuid.UUID, fromPosition int) error
	ShiftPositionsUp(ctx context.Context, tx *database.Tx, columnID uuid.UUID, fromPosition int) error
	UpdateColumnAndPosition(ctx context.Context, tx *database.Tx, id, columnID uuid.UUID, position int) error
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

var (
	_ BoardStore  = (*repository.BoardRepository)(nil)
	_ ColumnStore = (*repository.ColumnRepository)(nil)
	_ CardStore   = (*repository.CardRepository)(nil)
	_ UserStore   = (*repository.UserRepository)(nil)
)

// storeError converts a repository failure into an application error.
// Errors that already are application errors pass through unchanged.
func storeError(err error, action string) error {
	var appErr *apperror.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repository.ErrBoardNotFound):
		return apperror.NotFound("Board not found")
	case errors.Is(err, repository.ErrColumnNotFound):
		return apperror.NotFound("Column not found")
	case errors.Is(err, repository.ErrCardNotFound):
		return apperror.NotFound("Card not found")
	case database.IsUniqueViolation(err):
		return apperror.Conflict("Positions changed concurrently, retry the request")
	default:
		return apperror.Internal(action, err)
	}
}
