package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obs-bank/ledger-core/internal/core/domain"
	portssvc "github.com/obs-bank/ledger-core/internal/core/ports/services"
	"github.com/obs-bank/ledger-core/internal/dto"
	"github.com/obs-bank/ledger-core/internal/middleware"
)

// transactionHandler handles HTTP requests for transfers, transaction
// history and the approval workflow.
type transactionHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransactionHandler(ts portssvc.TransferSvcFacade) *transactionHandler {
	return &transactionHandler{transferService: ts}
}

// RegisterTransactionRoutes registers routes related to transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransactionHandler(transferService)

	txns := rg.Group("/transactions")
	{
		txns.POST("/transfer", h.transfer)
		txns.GET("/pending", h.listPending)
		txns.PUT("/:transactionID/approve", h.approve)
		txns.PUT("/:transactionID/reject", h.reject)
		txns.GET("/history/:accountID", h.history)
	}
}

func (h *transactionHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transferService.Transfer(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	// 202 signals the pending-approval path: the request was accepted but
	// no funds moved yet.
	status := http.StatusCreated
	if txn.Status == domain.StatusPending {
		status = http.StatusAccepted
	}
	c.JSON(status, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listPending(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.transferService.ListPending(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *transactionHandler) approve(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transferService.Approve(c.Request.Context(), caller, c.Param("transactionID"))
	if err != nil {
		// Approval may fail after the status moved to FAILED; the caller
		// still gets the transaction so it can show the outcome.
		if txn != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":       err.Error(),
				"transaction": dto.ToTransactionResponse(txn),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) reject(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transferService.Reject(c.Request.Context(), caller, c.Param("transactionID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) history(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.transferService.History(c.Request.Context(), caller, c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}
