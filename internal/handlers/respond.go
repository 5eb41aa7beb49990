package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	dom "Reminder/internal/domain"
	"Reminder/internal/service"
)

// respondError maps service errors to status codes: validation failures to
// 400, missing references to 404, everything else to 500.
func respondError(c *gin.Context, err error) {
	var ve *dom.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, service.ErrTodoNotFound), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
