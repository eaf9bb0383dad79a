package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/dto"
	"github.com/vendmach/vending_machine_api/internal/middleware"
)

// depositHandler handles HTTP requests related to buyer deposits.
type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

func newDepositHandler(ds portssvc.DepositSvcFacade) *depositHandler {
	return &depositHandler{
		depositService: ds,
	}
}

// registerDepositRoutes registers all deposit-related routes.
func registerDepositRoutes(rg *gin.RouterGroup, depositService portssvc.DepositSvcFacade) {
	h := newDepositHandler(depositService)

	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.GET("", h.getCurrentDeposit)
		deposits.POST("/reset", h.resetDeposit)
	}
}

// createDeposit godoc
// @Summary Deposit coins
// @Description Creates a deposit from a stack of accepted coins. Requires the buyer role. A buyer holds at most one live deposit.
// @Tags deposits
// @Accept json
// @Produce json
// @Param deposit body dto.CreateDepositRequest true "Coins to deposit"
// @Success 201 {object} dto.DepositResponse
// @Failure 400 {object} ErrorResponse "Invalid denomination or empty stack"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not a buyer"
// @Failure 409 {object} ErrorResponse "Live deposit already exists"
// @Security BearerAuth
// @Router /deposits [post]
func (h *depositHandler) createDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	deposit, err := h.depositService.CreateDeposit(c.Request.Context(), req, userID)
	if err != nil {
		logger.Warn("Failed to create deposit", slog.String("user_id", userID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Deposit created",
		slog.String("deposit_id", deposit.DepositID),
		slog.String("amount", deposit.Amount.String()),
	)
	c.JSON(http.StatusCreated, dto.ToDepositResponse(deposit))
}

// getCurrentDeposit godoc
// @Summary Get current deposit
// @Description Retrieves the buyer's live (unutilized) deposit.
// @Tags deposits
// @Produce json
// @Success 200 {object} dto.DepositResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No live deposit"
// @Security BearerAuth
// @Router /deposits [get]
func (h *depositHandler) getCurrentDeposit(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	deposit, err := h.depositService.GetCurrentDeposit(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}

// resetDeposit godoc
// @Summary Reset deposit
// @Description Removes the buyer's live deposit, returning the coins that were held.
// @Tags deposits
// @Produce json
// @Success 200 {object} dto.DepositResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No live deposit"
// @Security BearerAuth
// @Router /deposits/reset [post]
func (h *depositHandler) resetDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	deposit, err := h.depositService.ResetDeposit(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Deposit reset", slog.String("deposit_id", deposit.DepositID))
	c.JSON(http.StatusOK, dto.ToDepositResponse(deposit))
}
