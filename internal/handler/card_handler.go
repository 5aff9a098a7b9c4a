package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cards CardService
}

func NewCardHandler(cards CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type CreateCardRequest struct {
	Title       string  `json:"title" binding:"required,min=1"`
	Description *string `json:"description"`
}

type UpdateCardRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// MoveCardRequest keeps newPosition raw: any value is accepted and clamped
// into the destination column.
type MoveCardRequest struct {
	NewColumnID string          `json:"newColumnId" binding:"required,uuid"`
	NewPosition json.RawMessage `json:"newPosition" swaggertype:"integer"`
}

// Create godoc
// @Summary      Append a card to a column
// @Tags         Cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        columnId  path      string             true  "Column ID"
// @Param        body      body      CreateCardRequest  true  "Card"
// @Success      201       {object}  Envelope{data=CardResponse}
// @Router       /columns/{columnId}/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	columnID, err := uuidParam(c, "columnId")
	if err != nil {
		respondError(c, err)
		return
	}

	var req CreateCardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	in := service.CreateCardInput{Title: req.Title}
	if req.Description != nil {
		in.Description = *req.Description
	}

	card, err := h.cards.CreateCard(c.Request.Context(), userID, columnID, in)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, newCardResponse(*card))
}

// Update godoc
// @Summary      Edit the title or description of a card
// @Tags         Cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Card ID"
// @Param        body  body      UpdateCardRequest  true  "Fields to change"
// @Success      200   {object}  Envelope{data=CardResponse}
// @Router       /cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	cardID, err := uuidParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateCardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	card, err := h.cards.UpdateCard(c.Request.Context(), userID, cardID, model.CardUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, newCardResponse(*card))
}

// Delete godoc
// @Summary      Delete a card
// @Tags         Cards
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Card ID"
// @Success      200  {object}  Envelope{data=DeletedResponse}
// @Router       /cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	cardID, err := uuidParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.cards.DeleteCard(c.Request.Context(), userID, cardID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, DeletedResponse{Deleted: true})
}

// Move godoc
// @Summary      Move a card within its column or to another column of the same board
// @Tags         Cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Card ID"
// @Param        body  body      MoveCardRequest  true  "Destination"
// @Success      200   {object}  Envelope{data=CardResponse}
// @Failure      404   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Failure      422   {object}  Envelope
// @Router       /cards/{id}/move [patch]
func (h *CardHandler) Move(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	cardID, err := uuidParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req MoveCardRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	card, err := h.cards.MoveCard(c.Request.Context(), userID, cardID, service.MoveCardInput{
		NewColumnID: uuid.MustParse(req.NewColumnID),
		NewPosition: parsePosition(req.NewPosition),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, newCardResponse(*card))
}

// parsePosition reads a requested slot. Missing or null means no request.
// Numbers and numeric strings are truncated to integers and anything else
// becomes 0, which the move clamps to the first slot.
func parsePosition(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return boundedInt(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) {
			return boundedInt(f)
		}
	}

	zero := 0
	return &zero
}

func boundedInt(f float64) *int {
	var v int
	switch {
	case f < 1:
		v = 0
	case f > math.MaxInt32:
		v = math.MaxInt32
	default:
		v = int(f)
	}
	return &v
}
