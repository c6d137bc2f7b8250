package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/services"
)

// errorCodes maps a business fault category to the string code used in
// the response envelope.
var errorCodes = map[services.Category]string{
	services.CategoryValidation:   "VALIDATION_ERROR",
	services.CategoryConflict:     "CONFLICT",
	services.CategoryForbidden:    "FORBIDDEN",
	services.CategoryNotFound:     "NOT_FOUND",
	services.CategoryUnauthorized: "UNAUTHORIZED",
}

// respondError writes a business fault with its own status code, or a
// generic 500 for infrastructure failures.
func respondError(c *gin.Context, err error) {
	if svcErr, ok := services.AsError(err); ok {
		c.JSON(svcErr.Code, gin.H{
			"success": false,
			"error": gin.H{
				"code":    errorCodes[svcErr.Category],
				"message": svcErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "An internal error occurred",
		},
	})
}

// respondValidationError writes a 400 for malformed request data.
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": details,
		},
	})
}

// respondData writes the success envelope.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respondValidationError(c, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}
