package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gastos/internal/aggregate"
	apperrors "gastos/internal/errors"
	"gastos/internal/export"
	"gastos/internal/models"
	"gastos/internal/money"
	"gastos/internal/pagination"
	"gastos/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating an
// expense. Field names match the web client.
type CreateExpenseRequest struct {
	Description string       `json:"descripcion" binding:"required,min=3,max=100"`
	Amount      money.Amount `json:"monto" binding:"gt=0,lte=99999900" swaggertype:"number" example:"12.50"`
	Category    string       `json:"categoria" binding:"required,expense_category" example:"Transport"`
	Date        string       `json:"fecha" binding:"required,iso_date" example:"2024-03-15"`
	UserID      string       `json:"userId"`
}

// DeleteExpenseRequest is the optional body of a delete request.
type DeleteExpenseRequest struct {
	UserID string `json:"userId"`
}

// ListExpensesQuery holds the list filters and optional paging.
type ListExpensesQuery struct {
	UserID string `form:"userId"`
	pagination.PageRequest
}

// DeleteExpenseResponse is the envelope returned by DeleteExpense.
type DeleteExpenseResponse struct {
	Success bool            `json:"success"`
	Result  *models.Expense `json:"result,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

// CategoryTotalsResponse holds the per-category sums.
type CategoryTotalsResponse struct {
	Totals map[models.Category]money.Amount `json:"totals"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record an expense for the session user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	if err := checkClaimedUser(req.UserID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	category, ok := models.ParseCategory(req.Category)
	if !ok {
		respondWithError(c, apperrors.ErrInvalidCategory)
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "fecha must be a YYYY-MM-DD date"))
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), userID, services.ExpenseDraft{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    category,
		Date:        date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionCreateExpense, "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": expense.Amount.String(), "category": expense.Category})

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses lists the session user's expenses
// @Summary     List expenses
// @Description List the session user's expenses, newest first. Without paging parameters the response is a plain array; with page or page_size it is a page envelope.
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       userId    query string false "Must match the session user when given"
// @Param       page      query int    false "Page number (1-based)"
// @Param       page_size query int    false "Items per page (max 100)"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListExpensesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if err := checkClaimedUser(q.UserID, userID); err != nil {
		respondWithError(c, err)
		return
	}

	if q.PageRequest.Requested() {
		page, err := h.expenseService.ListExpensesPage(c.Request.Context(), userID, q.PageRequest)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GetExpense returns one expense
// @Summary     Get an expense
// @Description Get one of the session user's expenses by id
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     400 {object} ErrorResponse "Invalid id"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found or not owned"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense deletes one expense
// @Summary     Delete an expense
// @Description Delete one of the session user's expenses. A missing expense and one owned by someone else get the same response.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true  "Expense ID"
// @Param       request body DeleteExpenseRequest false "Optional owner claim"
// @Success     200 {object} DeleteExpenseResponse "Deleted expense"
// @Failure     400 {object} DeleteExpenseResponse "Invalid id"
// @Failure     401 {object} DeleteExpenseResponse "Unauthorized"
// @Failure     404 {object} DeleteExpenseResponse "Not found or not owned"
// @Failure     500 {object} DeleteExpenseResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondDeleteError(c, err)
		return
	}

	id, err := parsePathID(c)
	if err != nil {
		respondDeleteError(c, err)
		return
	}

	var req DeleteExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondDeleteError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if err := checkClaimedUser(req.UserID, userID); err != nil {
		respondDeleteError(c, err)
		return
	}

	expense, err := h.expenseService.DeleteExpense(c.Request.Context(), id, userID)
	if err != nil {
		respondDeleteError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionDeleteExpense, "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": expense.Amount.String(), "category": expense.Category})

	c.JSON(http.StatusOK, DeleteExpenseResponse{Success: true, Result: expense})
}

// respondDeleteError renders a failure in the delete envelope.
func respondDeleteError(c *gin.Context, err error) {
	appErr := toAppError(c, err)
	c.JSON(appErr.StatusCode, DeleteExpenseResponse{
		Success: false,
		Error:   &ErrorDetail{Code: appErr.Code, Message: appErr.Message},
	})
}

// GetCategoryTotals returns per-category sums
// @Summary     Totals by category
// @Description Sum the session user's expenses per category. Categories without expenses are omitted.
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CategoryTotalsResponse "Totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/totals/category [get]
func (h *ExpenseHandler) GetCategoryTotals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.expenseService.SumByCategory(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CategoryTotalsResponse{Totals: totals})
}

// GetSummary returns the dashboard views
// @Summary     Expense summary
// @Description Totals by category and by month of year, the twelve-month series and the grand total
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} aggregate.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.expenseService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportExpenses downloads the expenses as a spreadsheet
// @Summary     Export expenses
// @Description Download the session user's expenses and category totals as an XLSX workbook
// @Tags        expenses
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file}   file "Workbook"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/export [get]
func (h *ExpenseHandler) ExportExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, expenses, aggregate.TotalsByCategory(expenses)); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	fileName := export.FileName(time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
