package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vendmach/vending_machine_api/internal/core/ports/services"
	"github.com/vendmach/vending_machine_api/internal/dto"
	"github.com/vendmach/vending_machine_api/internal/middleware"
)

// purchaseHandler handles HTTP requests related to purchase settlement.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: ps,
	}
}

// registerPurchaseRoutes registers the purchase settlement route.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	rg.POST("/buy", h.buy)
}

// buy godoc
// @Summary Buy products
// @Description Settles the requested product lines against the buyer's live deposit and returns the receipt with change in coins.
// @Tags purchases
// @Accept json
// @Produce json
// @Param purchase body dto.CreatePurchaseRequest true "Product lines to buy"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse "Invalid quantity, insufficient stock or funds"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown or inactive product, or no live deposit"
// @Failure 409 {object} ErrorResponse "Concurrent settlement conflict"
// @Security BearerAuth
// @Router /buy [post]
func (h *purchaseHandler) buy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.purchaseService.Buy(c.Request.Context(), userID, req.ToPurchaseRequest())
	if err != nil {
		logger.Warn("Purchase failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Purchase settled",
		slog.String("user_id", userID),
		slog.String("total_spent", receipt.TotalSpent.String()),
	)
	c.JSON(http.StatusOK, dto.ToPurchaseResponse(receipt))
}
