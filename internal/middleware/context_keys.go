package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/obs-bank/ledger-core/internal/core/domain"
)

// callerKey is the key used to store the authenticated caller in the
// request context.
const callerKey = contextKey("caller")

// GetCallerFromContext retrieves the authenticated caller (user ID + role)
// from the Gin request context. It returns the caller and a boolean
// indicating if it was found.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	callerVal := c.Request.Context().Value(callerKey)
	if callerVal == nil {
		return domain.Caller{}, false
	}

	caller, ok := callerVal.(domain.Caller)
	if !ok {
		// Should not happen if the auth middleware sets it correctly.
		return domain.Caller{}, false
	}

	return caller, true
}
