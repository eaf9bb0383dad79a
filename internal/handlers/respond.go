package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/vendmach/vending_machine_api/internal/apperrors"
	"github.com/vendmach/vending_machine_api/internal/middleware"
)

// respondError resolves the transport status from the fixed apperrors mapping
// table and writes the error body. Unclassified errors are logged and hidden
// behind a generic message.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status >= 500 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed",
			slog.Int("status", status), slog.String("error", err.Error()))
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}
