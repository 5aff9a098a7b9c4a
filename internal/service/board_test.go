package service_test

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/apperror"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoardService(store *memStore) *service.BoardService {
	return service.NewBoardService(store, fakeBoards{store}, fakeColumns{store})
}

func TestBoardService_CreateBoard_SeedsDefaultColumns(t *testing.T) {
	store := newMemStore()
	svc := newBoardService(store)
	owner := uuid.New()

	board, err := svc.CreateBoard(context.Background(), owner, "Roadmap")

	require.NoError(t, err)
	assert.Equal(t, owner, board.OwnerUserID)
	assert.Equal(t, map[string]int{
		"Backlog":     1,
		"To Do":       2,
		"In Progress": 3,
		"Done":        4,
		"Extra":       5,
	}, store.columnPositions(board.ID))
}

func TestBoardService_CreateBoard_RollsBackOnColumnFailure(t *testing.T) {
	store := newMemStore()
	store.failOn["columns.CreateBatch"] = errors.New("insert failed")
	svc := newBoardService(store)

	_, err := svc.CreateBoard(context.Background(), uuid.New(), "Roadmap")

	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Empty(t, store.boards)
	assert.Empty(t, store.columns)
	assert.Equal(t, 1, store.rollbacks)
}

func TestBoardService_CreateColumn(t *testing.T) {
	tests := []struct {
		name     string
		position *int
		want     map[string]int
	}{
		{"omitted appends", nil, map[string]int{"A": 1, "B": 2, "C": 3, "New": 4}},
		{"inserts and shifts", intPtr(2), map[string]int{"A": 1, "New": 2, "B": 3, "C": 4}},
		{"first slot", intPtr(1), map[string]int{"New": 1, "A": 2, "B": 3, "C": 4}},
		{"past the end is clamped", intPtr(40), map[string]int{"A": 1, "B": 2, "C": 3, "New": 4}},
		{"zero appends", intPtr(0), map[string]int{"A": 1, "B": 2, "C": 3, "New": 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			owner := uuid.New()
			board, _ := store.seedBoard(owner, "A", "B", "C")
			svc := newBoardService(store)

			column, err := svc.CreateColumn(context.Background(), owner, board.ID, service.CreateColumnInput{
				Name:     "New",
				Position: tt.position,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want["New"], column.Position)
			assert.Equal(t, tt.want, store.columnPositions(board.ID))
		})
	}
}

func TestBoardService_CreateColumn_Errors(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	board, _ := store.seedBoard(owner, "A")
	svc := newBoardService(store)

	_, err := svc.CreateColumn(context.Background(), owner, uuid.New(), service.CreateColumnInput{Name: "New"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.CreateColumn(context.Background(), uuid.New(), board.ID, service.CreateColumnInput{Name: "New"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	store.failOn["columns.Create"] = errors.New("insert failed")
	_, err = svc.CreateColumn(context.Background(), owner, board.ID, service.CreateColumnInput{Name: "New", Position: intPtr(1)})
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Equal(t, map[string]int{"A": 1}, store.columnPositions(board.ID))
}

func TestBoardService_GetBoard(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	board, cols := store.seedBoard(owner, "Todo", "Done")
	store.seedCards(cols[1].ID, "X", "Y")
	svc := newBoardService(store)

	details, err := svc.GetBoard(context.Background(), owner, board.ID)

	require.NoError(t, err)
	require.Len(t, details.Columns, 2)
	assert.Equal(t, "Todo", details.Columns[0].Name)
	assert.Empty(t, details.Columns[0].Cards)
	require.Len(t, details.Columns[1].Cards, 2)
	assert.Equal(t, "X", details.Columns[1].Cards[0].Title)

	_, err = svc.GetBoard(context.Background(), uuid.New(), board.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestBoardService_DeleteBoard(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	board, cols := store.seedBoard(owner, "Todo")
	store.seedCards(cols[0].ID, "A")
	svc := newBoardService(store)

	err := svc.DeleteBoard(context.Background(), uuid.New(), board.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	err = svc.DeleteBoard(context.Background(), owner, board.ID)
	require.NoError(t, err)
	assert.Empty(t, store.boards)
	assert.Empty(t, store.columns)
	assert.Empty(t, store.cards)

	err = svc.DeleteBoard(context.Background(), owner, board.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestBoardService_ListBoards(t *testing.T) {
	store := newMemStore()
	owner := uuid.New()
	store.seedBoard(owner)
	store.seedBoard(uuid.New())
	svc := newBoardService(store)

	boards, err := svc.ListBoards(context.Background(), owner)

	require.NoError(t, err)
	assert.Len(t, boards, 1)
}
