package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func registerPartyRoutes(rg *gin.RouterGroup, ps portssvc.PartySvcFacade) {
	h := &partyHandler{partyService: ps}

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:id", h.getParty)
		parties.DELETE("/:id", h.deleteParty)
	}
}

// createParty godoc
// @Summary Add a party to the directory
// @Tags parties
// @Accept json
// @Produce json
// @Param party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Party name already exists"
// @Security BearerAuth
// @Router /parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create party")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List the party directory
// @Tags parties
// @Produce json
// @Success 200 {array} dto.PartyResponse
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	parties, err := h.partyService.ListParties(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list parties")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPartyResponse(parties))
}

// getParty godoc
// @Summary Get a party
// @Tags parties
// @Produce json
// @Param id path int true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	party, err := h.partyService.GetParty(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// deleteParty godoc
// @Summary Remove a party
// @Tags parties
// @Param id path int true "Party ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 409 {object} map[string]string "Party still referenced by transactions"
// @Security BearerAuth
// @Router /parties/{id} [delete]
func (h *partyHandler) deleteParty(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.partyService.DeleteParty(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete party")
		return
	}
	c.Status(http.StatusNoContent)
}
