package handler

import (
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards BoardService
}

func NewBoardHandler(boards BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type CreateColumnRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Position *int   `json:"position" binding:"omitempty,gt=0"`
}

// Create creates a board with the default columns for the authenticated user
// @Summary      Create a board
// @Tags         Boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBoardRequest  true  "Board"
// @Success      201   {object}  Envelope{data=BoardResponse}
// @Failure      422   {object}  Envelope
// @Router       /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	ownerID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CreateBoardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	board, err := h.boards.CreateBoard(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, newBoardResponse(*board))
}

// GetAll godoc
// @Summary      List the boards of the authenticated user, newest first
// @Tags         Boards
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Envelope{data=[]BoardResponse}
// @Router       /boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	ownerID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	boards, err := h.boards.ListBoards(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i, board := range boards {
		response[i] = newBoardResponse(board)
	}

	respond(c, http.StatusOK, response)
}

// GetByID godoc
// @Summary      Get a board with its columns and cards
// @Tags         Boards
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Board ID"
// @Success      200  {object}  Envelope{data=BoardDetailsResponse}
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	ownerID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	boardID, err := uuidParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	details, err := h.boards.GetBoard(c.Request.Context(), ownerID, boardID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, newBoardDetailsResponse(details))
}

// Delete godoc
// @Summary      Delete a board with its columns and cards
// @Tags         Boards
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Board ID"
// @Success      200  {object}  Envelope{data=DeletedResponse}
// @Router       /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	ownerID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	boardID, err := uuidParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.boards.DeleteBoard(c.Request.Context(), ownerID, boardID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, DeletedResponse{Deleted: true})
}

// CreateColumn inserts a column into a board. Without a position it is appended.
// @Summary      Add a column to a board
// @Tags         Columns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Board ID"
// @Param        body  body      CreateColumnRequest  true  "Column"
// @Success      201   {object}  Envelope{data=ColumnResponse}
// @Router       /boards/{id}/columns [post]
func (h *BoardHandler) CreateColumn(c *gin.Context) {
	ownerID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	boardID, err := uuidParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req CreateColumnRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	column, err := h.boards.CreateColumn(c.Request.Context(), ownerID, boardID, service.CreateColumnInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, newColumnResponse(*column))
}
