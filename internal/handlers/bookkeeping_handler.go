package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"photostudio-backend/internal/middleware"
	service "photostudio-backend/internal/services/bookkeeping"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookkeepingHandler struct {
	service *service.Service
}

func NewBookkeepingHandler(s *service.Service) *BookkeepingHandler {
	return &BookkeepingHandler{service: s}
}

// Dashboard returns the summary statistics for the admin landing page.
func (h *BookkeepingHandler) Dashboard(c *gin.Context) {
	summary, err := h.service.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *BookkeepingHandler) ListIncome(c *gin.Context) {
	records, total, err := h.service.ListIncome()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "total": total})
}

func (h *BookkeepingHandler) AddIncome(c *gin.Context) {
	var in service.EntryInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record, err := h.service.AddIncome(in, actor(c))
	if err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "income record added successfully", "record": record})
}

func (h *BookkeepingHandler) DeleteIncome(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteIncome(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "income record deleted"})
}

func (h *BookkeepingHandler) RestoreIncome(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.RestoreIncome(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "income record restored"})
}

func (h *BookkeepingHandler) ListExpenses(c *gin.Context) {
	records, total, err := h.service.ListExpenses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "total": total})
}

func (h *BookkeepingHandler) AddExpense(c *gin.Context) {
	var in service.EntryInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record, err := h.service.AddExpense(in, actor(c))
	if err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense record added successfully", "record": record})
}

func (h *BookkeepingHandler) DeleteExpense(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense record deleted"})
}

func (h *BookkeepingHandler) RestoreExpense(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.RestoreExpense(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense record restored"})
}

func (h *BookkeepingHandler) ListCustomers(c *gin.Context) {
	records, pending, err := h.service.ListCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "total_pending": pending})
}

func (h *BookkeepingHandler) AddCustomer(c *gin.Context) {
	var in service.CustomerInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record, err := h.service.AddCustomer(in, actor(c))
	if err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer added successfully", "record": record})
}

func (h *BookkeepingHandler) UpdateCustomerPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var form struct {
		AmountPaid float64 `form:"amount_paid"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.service.UpdateCustomerPayment(id, form.AmountPaid, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer payment updated"})
}

func (h *BookkeepingHandler) DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCustomer(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

func (h *BookkeepingHandler) RestoreCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.RestoreCustomer(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer restored"})
}

// ListInvoices also previews the next generated invoice number for the form.
func (h *BookkeepingHandler) ListInvoices(c *gin.Context) {
	records, err := h.service.ListInvoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	next, err := h.service.NextInvoiceNumber()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "next_invoice_number": next})
}

func (h *BookkeepingHandler) AddInvoice(c *gin.Context) {
	var in service.InvoiceInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record, err := h.service.AddInvoice(in, actor(c))
	if err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice created successfully", "record": record})
}

func (h *BookkeepingHandler) MarkInvoicePaid(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.MarkInvoicePaid(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice marked as paid"})
}

func (h *BookkeepingHandler) CancelInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.CancelInvoice(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice cancelled"})
}

func (h *BookkeepingHandler) DeleteInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteInvoice(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}

func (h *BookkeepingHandler) RestoreInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.RestoreInvoice(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice restored"})
}

func (h *BookkeepingHandler) ListAssets(c *gin.Context) {
	records, total, err := h.service.ListAssets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "total": total})
}

func (h *BookkeepingHandler) AddAsset(c *gin.Context) {
	var in service.AssetInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	record, err := h.service.AddAsset(in, actor(c))
	if err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "asset added successfully", "record": record})
}

func (h *BookkeepingHandler) DeleteAsset(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAsset(id, actor(c)); err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "asset deleted"})
}

// Report filters income and expenses by ?start_date=&end_date=.
func (h *BookkeepingHandler) Report(c *gin.Context) {
	report, err := h.service.Report(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondBookkeepingError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *BookkeepingHandler) AuditTrail(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := h.service.AuditTrail(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// actor returns the acting admin's email for the audit trail.
func actor(c *gin.Context) string {
	if claims := middleware.CurrentSession(c); claims != nil {
		return claims.Email
	}
	return ""
}

// idParam parses the :id route parameter, writing the 400 itself on failure.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func respondBookkeepingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateInvoiceNumber):
		c.JSON(http.StatusConflict, gin.H{"error": "invoice number already exists, use a different number"})
	case errors.Is(err, service.ErrNumberExhausted):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate a unique invoice number, please try again"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
