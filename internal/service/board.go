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

// DefaultColumns are seeded, in this order, into every new board.
var DefaultColumns = []string{"Backlog", "To Do", "In Progress", "Done", "Extra"}

type CreateColumnInput struct {
	Name     string
	Position *int
}

type BoardService struct {
	tx      database.Transactor
	boards  BoardStore
	columns ColumnStore
}

func NewBoardService(tx database.Transactor, boards BoardStore, columns ColumnStore) *BoardService {
	return &BoardService{tx: tx, boards: boards, columns: columns}
}

// CreateBoard inserts the board and its default columns in one transaction.
func (s *BoardService) CreateBoard(ctx context.Context, ownerID uuid.UUID, name string) (*model.Board, error) {
	board := &model.Board{Name: name, OwnerUserID: ownerID}

	err := s.tx.WithinTransaction(ctx, func(tx *database.Tx) error {
		if err := s.boards.Create(ctx, tx, board); err != nil {
			return storeError(err, "Failed to create board")
		}

		columns := make([]model.Column, len(DefaultColumns))
		for i, columnName := range DefaultColumns {
			columns[i] = model.Column{BoardID: board.ID, Name: columnName, Position: i + 1}
		}
		if err := s.columns.CreateBatch(ctx, tx, columns); err != nil {
			return storeError(err, "Failed to create default columns")
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "Failed to create board")
	}
	return board, nil
}

// CreateColumn inserts a column at the requested slot, shifting the columns at
// and after it one slot down. Without a usable request it appends.
func (s *BoardService) CreateColumn(ctx context.Context, ownerID, boardID uuid.UUID, in CreateColumnInput) (*model.Column, error) {
	board, err := s.ownedBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}

	column := &model.Column{BoardID: board.ID, Name: in.Name}

	err = s.tx.WithinTransaction(ctx, func(tx *database.Tx) error {
		if _, err := s.boards.LockByID(ctx, tx, board.ID); err != nil {
			return storeError(err, "Failed to lock board")
		}

		next, err := s.columns.NextPosition(ctx, tx, board.ID)
		if err != nil {
			return storeError(err, "Failed to determine column position")
		}
		column.Position = resolveColumnPosition(in.Position, next)

		if err := s.columns.ShiftDown(ctx, tx, board.ID, column.Position); err != nil {
			return storeError(err, "Failed to shift columns")
		}
		if err := s.columns.Create(ctx, tx, column); err != nil {
			return storeError(err, "Failed to create column")
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "Failed to create column")
	}
	return column, nil
}

func (s *BoardService) ListBoards(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	boards, err := s.boards.GetOwned(ctx, ownerID)
	if err != nil {
		return nil, storeError(err, "Failed to list boards")
	}
	return boards, nil
}

// GetBoard returns the board with its columns and cards in position order.
func (s *BoardService) GetBoard(ctx context.Context, ownerID, boardID uuid.UUID) (*model.BoardDetails, error) {
	board, err := s.ownedBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}

	columns, err := s.boards.GetColumnsWithCards(ctx, board.ID)
	if err != nil {
		return nil, storeError(err, "Failed to load board columns")
	}
	return &model.BoardDetails{Board: *board, Columns: columns}, nil
}

func (s *BoardService) DeleteBoard(ctx context.Context, ownerID, boardID uuid.UUID) error {
	board, err := s.ownedBoard(ctx, ownerID, boardID)
	if err != nil {
		return err
	}

	deleted, err := s.boards.Delete(ctx, board.ID, ownerID)
	if err != nil {
		return storeError(err, "Failed to delete board")
	}
	if !deleted {
		return apperror.Internal("Failed to delete board", repository.ErrNoRowsAffected)
	}
	return nil
}

func (s *BoardService) ownedBoard(ctx context.Context, ownerID, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if errors.Is(err, repository.ErrBoardNotFound) {
		return nil, apperror.NotFound("Board not found")
	}
	if err != nil {
		return nil, storeError(err, "Failed to load board")
	}
	if err := AssertOwnership(board.OwnerUserID.String(), ownerID.String()); err != nil {
		return nil, err
	}
	return board, nil
}
