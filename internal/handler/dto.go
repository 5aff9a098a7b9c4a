package handler

import (
	"time"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type BoardResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID string    `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ColumnResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

type CardResponse struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"columnId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ColumnWithCardsResponse struct {
	ColumnResponse
	Cards []CardResponse `json:"cards"`
}

type BoardDetailsResponse struct {
	BoardResponse
	Columns []ColumnWithCardsResponse `json:"columns"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

func newAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:        result.User.ID.String(),
			Name:      result.User.Name,
			Email:     result.User.Email,
			CreatedAt: result.User.CreatedAt,
		},
		AccessToken: result.AccessToken,
	}
}

func newBoardResponse(b model.Board) BoardResponse {
	return BoardResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		OwnerUserID: b.OwnerUserID.String(),
		CreatedAt:   b.CreatedAt,
	}
}

func newColumnResponse(c model.Column) ColumnResponse {
	return ColumnResponse{
		ID:        c.ID.String(),
		BoardID:   c.BoardID.String(),
		Name:      c.Name,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
	}
}

func newCardResponse(c model.Card) CardResponse {
	return CardResponse{
		ID:          c.ID.String(),
		ColumnID:    c.ColumnID.String(),
		Title:       c.Title,
		Description: c.Description,
		Position:    c.Position,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func newBoardDetailsResponse(d *model.BoardDetails) BoardDetailsResponse {
	columns := make([]ColumnWithCardsResponse, len(d.Columns))
	for i, col := range d.Columns {
		cards := make([]CardResponse, len(col.Cards))
		for j, card := range col.Cards {
			cards[j] = newCardResponse(card)
		}
		columns[i] = ColumnWithCardsResponse{ColumnResponse: newColumnResponse(col.Column), Cards: cards}
	}
	return BoardDetailsResponse{BoardResponse: newBoardResponse(d.Board), Columns: columns}
}
