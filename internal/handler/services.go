package handler

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

type BoardService interface {
	CreateBoard(ctx context.Context, ownerID uuid.UUID, name string) (*model.Board, error)
	CreateColumn(ctx context.Context, ownerID, boardID uuid.UUID, in service.CreateColumnInput) (*model.Column, error)
	ListBoards(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error)
	GetBoard(ctx context.Context, ownerID, boardID uuid.UUID) (*model.BoardDetails, error)
	DeleteBoard(ctx context.Context, ownerID, boardID uuid.UUID) error
}

type CardService interface {
	CreateCard(ctx context.Context, userID, columnID uuid.UUID, in service.CreateCardInput) (*model.Card, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, update model.CardUpdate) (*model.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
	MoveCard(ctx context.Context, userID, cardID uuid.UUID, in service.MoveCardInput) (*model.Card, error)
}

var (
	_ AuthService  = (*service.AuthService)(nil)
	_ BoardService = (*service.BoardService)(nil)
	_ CardService  = (*service.CardService)(nil)
)
