package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*service.AuthResult)
	return result, args.Error(1)
}

type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) CreateBoard(ctx context.Context, ownerID uuid.UUID, name string) (*model.Board, error) {
	args := m.Called(ctx, ownerID, name)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *MockBoardService) CreateColumn(ctx context.Context, ownerID, boardID uuid.UUID, in service.CreateColumnInput) (*model.Column, error) {
	args := m.Called(ctx, ownerID, boardID, in)
	column, _ := args.Get(0).(*model.Column)
	return column, args.Error(1)
}

func (m *MockBoardService) ListBoards(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, ownerID)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *MockBoardService) GetBoard(ctx context.Context, ownerID, boardID uuid.UUID) (*model.BoardDetails, error) {
	args := m.Called(ctx, ownerID, boardID)
	details, _ := args.Get(0).(*model.BoardDetails)
	return details, args.Error(1)
}

func (m *MockBoardService) DeleteBoard(ctx context.Context, ownerID, boardID uuid.UUID) error {
	args := m.Called(ctx, ownerID, boardID)
	return args.Error(0)
}

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) CreateCard(ctx context.Context, userID, columnID uuid.UUID, in service.CreateCardInput) (*model.Card, error) {
	args := m.Called(ctx, userID, columnID, in)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *MockCardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, update model.CardUpdate) (*model.Card, error) {
	args := m.Called(ctx, userID, cardID, update)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

func (m *MockCardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	args := m.Called(ctx, userID, cardID)
	return args.Error(0)
}

func (m *MockCardService) MoveCard(ctx context.Context, userID, cardID uuid.UUID, in service.MoveCardInput) (*model.Card, error) {
	args := m.Called(ctx, userID, cardID, in)
	card, _ := args.Get(0).(*model.Card)
	return card, args.Error(1)
}

// newRouter returns a test engine whose requests are authenticated as userID.
func newRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidation()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	r.NoRoute(handler.NotFound)
	return r
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Details []struct {
			Message string `json:"message"`
			Path    string `json:"path"`
			Type    string `json:"type"`
		} `json:"details"`
	} `json:"error"`
}

func decode(resp *httptest.ResponseRecorder) envelope {
	var env envelope
	_ = json.Unmarshal(resp.Body.Bytes(), &env)
	return env
}
