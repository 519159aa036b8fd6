package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparkd/inventory-manager/internal/models"
)

// Error reason phrases, matching the HTTP status they accompany.
const (
	reasonBadRequest = "Bad Request"
	reasonNotFound   = "Not Found"
	reasonConflict   = "Conflict"
	reasonInternal   = "Internal Server Error"
	reasonValidation = "Validation error"
)

// apiError writes the standard error body for a failing request.
func apiError(c *gin.Context, status int, reason, message string) {
	c.JSON(status, models.NewAPIError(status, reason, message, c.Request.URL.Path))
}

// internalError logs nothing itself; handlers log before calling when the
// cause is interesting. The body keeps a generic message.
func internalError(c *gin.Context) {
	apiError(c, http.StatusInternalServerError, reasonInternal, "unexpected server error")
}
