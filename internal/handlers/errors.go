package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obs-bank/ledger-core/internal/apperrors"
)

// respondError maps a service error to a stable HTTP status and a
// machine-readable kind, keeping the ledger's error taxonomy visible to
// API clients.
func respondError(c *gin.Context, err error) {
	type kindMapping struct {
		sentinel error
		status   int
		kind     string
	}

	mappings := []kindMapping{
		{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperrors.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{apperrors.ErrAccountFrozen, http.StatusConflict, "ACCOUNT_FROZEN"},
		{apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
		{apperrors.ErrContention, http.StatusConflict, "CONTENTION"},
		{apperrors.ErrInvalidState, http.StatusConflict, "INVALID_STATE"},
		{apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION"},
		{apperrors.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
	}

	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			c.JSON(m.status, gin.H{"kind": m.kind, "error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{"kind": "INTERNAL", "error": "internal error"})
}
