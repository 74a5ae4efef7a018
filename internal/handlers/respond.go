package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	"github.com/meypanhawath/corebank/internal/middleware"
)

func currency(s string) domain.Currency {
	return domain.Currency(s)
}

// respondError maps the error taxonomy onto HTTP statuses. The caller always
// receives a distinguishable kind and a human-readable message; internal
// failures are logged but not leaked.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"kind": "forbidden", "error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"kind": "duplicate", "error": err.Error()})
	case errors.Is(err, apperrors.ErrAccountState):
		c.JSON(http.StatusConflict, gin.H{"kind": "account_state", "error": err.Error()})
	case errors.Is(err, apperrors.ErrLimitExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": "limit_exceeded", "error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": "insufficient_balance", "error": err.Error()})
	default:
		logger.Error("request failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": "internal server error"})
	}
}

// bindError renders a request-binding failure.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": "invalid request format: " + err.Error()})
}

// customerFromContext extracts the authenticated customer id or aborts with 401.
func customerFromContext(c *gin.Context) (int64, bool) {
	customerID, ok := middleware.GetCustomerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "error": "unauthorized"})
		return 0, false
	}
	return customerID, true
}
