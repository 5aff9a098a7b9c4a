package service_test

import (
	"context"
	"sort"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the postgres repositories. Its
// transactor snapshots every table on begin and restores it on rollback.
type memStore struct {
	boards  map[uuid.UUID]model.Board
	columns map[uuid.UUID]model.Column
	cards   map[uuid.UUID]model.Card

	// failOn makes the named operation return the error.
	failOn    map[string]error
	mutations int
	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{
		boards:  map[uuid.UUID]model.Board{},
		columns: map[uuid.UUID]model.Column{},
		cards:   map[uuid.UUID]model.Card{},
		failOn:  map[string]error{},
	}
}

func (m *memStore) fail(op string) error {
	return m.failOn[op]
}

func (m *memStore) WithinTransaction(ctx context.Context, fn func(tx *database.Tx) error) error {
	boards := cloneMap(m.boards)
	columns := cloneMap(m.columns)
	cards := cloneMap(m.cards)

	if err := fn(database.NewTx(nil)); err != nil {
		m.boards, m.columns, m.cards = boards, columns, cards
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// seedBoard creates a board owned by owner with one column per name.
func (m *memStore) seedBoard(owner uuid.UUID, columnNames ...string) (model.Board, []model.Column) {
	board := model.Board{ID: uuid.New(), Name: "Board", OwnerUserID: owner, CreatedAt: time.Now()}
	m.boards[board.ID] = board

	columns := make([]model.Column, len(columnNames))
	for i, name := range columnNames {
		columns[i] = model.Column{ID: uuid.New(), BoardID: board.ID, Name: name, Position: i + 1}
		m.columns[columns[i].ID] = columns[i]
	}
	return board, columns
}

func (m *memStore) seedCards(columnID uuid.UUID, titles ...string) []model.Card {
	cards := make([]model.Card, len(titles))
	for i, title := range titles {
		cards[i] = model.Card{ID: uuid.New(), ColumnID: columnID, Title: title, Position: i + 1}
		m.cards[cards[i].ID] = cards[i]
	}
	return cards
}

// titles lists the card titles of a column in position order.
func (m *memStore) titles(columnID uuid.UUID) []string {
	cards := m.cardsIn(columnID)
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func (m *memStore) positions(columnID uuid.UUID) []int {
	cards := m.cardsIn(columnID)
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Position
	}
	return out
}

func (m *memStore) columnPositions(boardID uuid.UUID) map[string]int {
	out := map[string]int{}
	for _, c := range m.columns {
		if c.BoardID == boardID {
			out[c.Name] = c.Position
		}
	}
	return out
}

func (m *memStore) cardsIn(columnID uuid.UUID) []model.Card {
	var out []model.Card
	for _, c := range m.cards {
		if c.ColumnID == columnID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

type fakeBoards struct{ *memStore }

func (f fakeBoards) Create(_ context.Context, _ *database.Tx, board *model.Board) error {
	if err := f.fail("boards.Create"); err != nil {
		return err
	}
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}
	board.CreatedAt = time.Now()
	f.boards[board.ID] = *board
	f.mutations++
	return nil
}

func (f fakeBoards) GetOwned(_ context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	var out []model.Board
	for _, b := range f.boards {
		if b.OwnerUserID == ownerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f fakeBoards) GetByID(_ context.Context, id uuid.UUID) (*model.Board, error) {
	b, ok := f.boards[id]
	if !ok {
		return nil, repository.ErrBoardNotFound
	}
	return &b, nil
}

func (f fakeBoards) LockByID(ctx context.Context, _ *database.Tx, id uuid.UUID) (*model.Board, error) {
	return f.GetByID(ctx, id)
}

func (f fakeBoards) Delete(_ context.Context, id, ownerID uuid.UUID) (bool, error) {
	b, ok := f.boards[id]
	if !ok || b.OwnerUserID != ownerID {
		return false, nil
	}
	delete(f.boards, id)
	for colID, col := range f.columns {
		if col.BoardID != id {
			continue
		}
		for cardID, card := range f.cards {
			if card.ColumnID == colID {
				delete(f.cards, cardID)
			}
		}
		delete(f.columns, colID)
	}
	f.mutations++
	return true, nil
}

func (f fakeBoards) GetColumnsWithCards(_ context.Context, boardID uuid.UUID) ([]model.ColumnWithCards, error) {
	var out []model.ColumnWithCards
	for _, col := range f.columns {
		if col.BoardID == boardID {
			out = append(out, model.ColumnWithCards{Column: col, Cards: f.cardsIn(col.ID)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type fakeColumns struct{ *memStore }

func (f fakeColumns) GetByID(_ context.Context, id uuid.UUID) (*model.Column, error) {
	c, ok := f.columns[id]
	if !ok {
		return nil, repository.ErrColumnNotFound
	}
	return &c, nil
}

func (f fakeColumns) GetByIDTx(ctx context.Context, _ *database.Tx, id uuid.UUID) (*model.Column, error) {
	return f.GetByID(ctx, id)
}

func (f fakeColumns) Lock(ctx context.Context, _ *database.Tx, ids ...uuid.UUID) ([]model.Column, error) {
	if err := f.fail("columns.Lock"); err != nil {
		return nil, err
	}
	var out []model.Column
	for _, id := range ids {
		c, err := f.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f fakeColumns) NextPosition(_ context.Context, _ *database.Tx, boardID uuid.UUID) (int, error) {
	highest := 0
	for _, c := range f.columns {
		if c.BoardID == boardID && c.Position > highest {
			highest = c.Position
		}
	}
	return highest + 1, nil
}

func (f fakeColumns) ShiftDown(_ context.Context, _ *database.Tx, boardID uuid.UUID, from int) error {
	for id, c := range f.columns {
		if c.BoardID == boardID && c.Position >= from {
			c.Position++
			f.columns[id] = c
		}
	}
	f.mutations++
	return nil
}

func (f fakeColumns) Create(_ context.Context, _ *database.Tx, column *model.Column) error {
	if err := f.fail("columns.Create"); err != nil {
		return err
	}
	if column.ID == uuid.Nil {
		column.ID = uuid.New()
	}
	f.columns[column.ID] = *column
	f.mutations++
	return nil
}

func (f fakeColumns) CreateBatch(ctx context.Context, tx *database.Tx, columns []model.Column) error {
	if err := f.fail("columns.CreateBatch"); err != nil {
		return err
	}
	for i := range columns {
		if err := f.Create(ctx, tx, &columns[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeCards struct{ *memStore }

func (f fakeCards) GetByID(_ context.Context, id uuid.UUID) (*model.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	return &c, nil
}

func (f fakeCards) GetWithBoard(_ context.Context, id uuid.UUID) (*model.CardWithBoard, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	col := f.columns[c.ColumnID]
	board := f.boards[col.BoardID]
	return &model.CardWithBoard{Card: c, BoardID: board.ID, OwnerUserID: board.OwnerUserID}, nil
}

func (f fakeCards) GetWithBoardTx(ctx context.Context, _ *database.Tx, id uuid.UUID) (*model.CardWithBoard, error) {
	return f.GetWithBoard(ctx, id)
}

func (f fakeCards) NextPosition(ctx context.Context, tx *database.Tx, columnID uuid.UUID) (int, error) {
	n, err := f.CountByColumn(ctx, tx, columnID)
	return n + 1, err
}

func (f fakeCards) CountByColumn(_ context.Context, _ *database.Tx, columnID uuid.UUID) (int, error) {
	return len(f.cardsIn(columnID)), nil
}

func (f fakeCards) Create(_ context.Context, _ *database.Tx, card *model.Card) error {
	if err := f.fail("cards.Create"); err != nil {
		return err
	}
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	f.cards[card.ID] = *card
	f.mutations++
	return nil
}

func (f fakeCards) Update(_ context.Context, id uuid.UUID, update model.CardUpdate) error {
	c, ok := f.cards[id]
	if !ok {
		return repository.ErrCardNotFound
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	f.cards[id] = c
	f.mutations++
	return nil
}

func (f fakeCards) Delete(_ context.Context, _ *database.Tx, id uuid.UUID) error {
	if _, ok := f.cards[id]; !ok {
		return repository.ErrCardNotFound
	}
	delete(f.cards, id)
	f.mutations++
	return nil
}

func (f fakeCards) ShiftPositionsDown(_ context.Context, _ *database.Tx, columnID uuid.UUID, from int) error {
	if err := f.fail("cards.ShiftPositionsDown"); err != nil {
		return err
	}
	for id, c := range f.cards {
		if c.ColumnID == columnID && c.Position >= from {
			c.Position++
			f.cards[id] = c
		}
	}
	f.mutations++
	return nil
}

func (f fakeCards) ShiftPositionsUp(_ context.Context, _ *database.Tx, columnID uuid.UUID, from int) error {
	for id, c := range f.cards {
		if c.ColumnID == columnID && c.Position > from {
			c.Position--
			f.cards[id] = c
		}
	}
	f.mutations++
	return nil
}

func (f fakeCards) UpdateColumnAndPosition(_ context.Context, _ *database.Tx, id, columnID uuid.UUID, position int) error {
	if err := f.fail("cards.UpdateColumnAndPosition"); err != nil {
		return err
	}
	c, ok := f.cards[id]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	c.ColumnID = columnID
	c.Position = position
	f.cards[id] = c
	f.mutations++
	return nil
}
