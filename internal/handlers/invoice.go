package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"gorm.io/gorm"
)

type InvoicesHandler struct {
	DB *gorm.DB
}

func NewInvoicesHandler(database *gorm.DB) *InvoicesHandler {
	return &InvoicesHandler{DB: database}
}

type CreateInvoiceRequest struct {
	Amount   float64    `json:"amount" binding:"required"`
	Currency string     `json:"currency"`
	DueDate  *time.Time `json:"due_date"`
}

type UpdateInvoiceRequest struct {
	Status   string     `json:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
	Amount   float64    `json:"amount"`
	Currency string     `json:"currency"`
	DueDate  *time.Time `json:"due_date"`
}

func (h *InvoicesHandler) CreateInvoice(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateInvoiceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	currency := body.Currency
	if currency == "" {
		currency = "USD"
	}

	invoice := models.Invoice{
		ProjectID:     project.ID,
		InvoiceNumber: nextInvoiceNumber(h.DB, project.ID),
		Status:        "draft",
		Amount:        body.Amount,
		Currency:      currency,
		DueDate:       body.DueDate,
	}

	if err := h.DB.Create(&invoice).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	ctx.JSON(http.StatusCreated, invoice)
}

func (h *InvoicesHandler) ListInvoices(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	q := h.DB.Where("project_id = ?", project.ID)

	if status := ctx.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []models.Invoice

	if err := q.Order("created_at DESC").Find(&invoices).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoices"})
		return
	}

	ctx.JSON(http.StatusOK, invoices)
}

func (h *InvoicesHandler) UpdateInvoice(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateInvoiceRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	invoice, ok := h.projectInvoice(ctx, project.ID)
	if !ok {
		return
	}

	if body.Amount != 0 {
		invoice.Amount = body.Amount
	}

	if body.Currency != "" {
		invoice.Currency = body.Currency
	}

	if body.DueDate != nil {
		invoice.DueDate = body.DueDate
	}

	if body.Status != "" {
		invoice.Status = body.Status

		if body.Status != "paid" {
			invoice.PaidAt = nil
		}
	}

	if err := h.DB.Save(&invoice).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	ctx.JSON(http.StatusOK, invoice)
}

func (h *InvoicesHandler) MarkInvoicePaid(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	invoice, ok := h.projectInvoice(ctx, project.ID)
	if !ok {
		return
	}

	now := time.Now().UTC()
	invoice.Status = "paid"
	invoice.PaidAt = &now

	if err := h.DB.Save(&invoice).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}

	ctx.JSON(http.StatusOK, invoice)
}

func (h *InvoicesHandler) DeleteInvoice(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	tx := h.DB.Where("project_id = ?", project.ID).Delete(&models.Invoice{}, "id = ?", ctx.Param("invoice_id"))

	if tx.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}

	if tx.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *InvoicesHandler) projectInvoice(ctx *gin.Context, projectID uint) (models.Invoice, bool) {
	var invoice models.Invoice

	if err := h.DB.Where("id = ? AND project_id = ?", ctx.Param("invoice_id"), projectID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return models.Invoice{}, false
	}

	return invoice, true
}


// nextInvoiceNumber derives a sequential number per project, e.g. "INV-3-0007".
func nextInvoiceNumber(database *gorm.DB, projectID uint) string {
	var count int64

	database.Model(&models.Invoice{}).Unscoped().Where("project_id = ?", projectID).Count(&count)

	return fmt.Sprintf("INV-%d-%04d", projectID, count+1)
}
