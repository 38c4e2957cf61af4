package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obs-bank/ledger-core/internal/core/ports/services"
	"github.com/obs-bank/ledger-core/internal/dto"
	"github.com/obs-bank/ledger-core/internal/middleware"
)

// billHandler handles HTTP requests for bill payments.
type billHandler struct {
	billService portssvc.BillPaymentSvcFacade
}

func newBillHandler(bs portssvc.BillPaymentSvcFacade) *billHandler {
	return &billHandler{billService: bs}
}

// RegisterBillRoutes registers routes related to bill payments.
func RegisterBillRoutes(rg *gin.RouterGroup, billService portssvc.BillPaymentSvcFacade) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("/pay", h.payBill)
		bills.GET("", h.listMyBills)
	}
}

func (h *billHandler) payBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billService.PayBill(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBillPaymentResponse(bill))
}

func (h *billHandler) listMyBills(c *gin.Context) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bills, err := h.billService.ListMyBills(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBillPaymentResponses(bills))
}
