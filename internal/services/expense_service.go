package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"gastos/internal/aggregate"
	apperrors "gastos/internal/errors"
	"gastos/internal/events"
	"gastos/internal/logger"
	"gastos/internal/models"
	"gastos/internal/money"
	"gastos/internal/pagination"
)

// Description length bounds, in characters.
const (
	MinDescriptionLen = 3
	MaxDescriptionLen = 100
)

// ExpenseDraft is a validated-shape expense as submitted by a client,
// before an owner is attached.
type ExpenseDraft struct {
	Description string
	Amount      money.Amount
	Category    models.Category
	Date        time.Time
}

// Validate checks the draft against the expense invariants.
func (d ExpenseDraft) Validate() error {
	if !d.Amount.Positive() {
		return apperrors.ErrInvalidAmount
	}
	if d.Amount > money.MaxAmount {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount,
			fmt.Sprintf("amount must not exceed %s", money.MaxAmount))
	}
	if !d.Category.Valid() {
		return apperrors.ErrInvalidCategory
	}
	n := utf8.RuneCountInString(strings.TrimSpace(d.Description))
	if n < MinDescriptionLen || n > MaxDescriptionLen {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("description must be between %d and %d characters", MinDescriptionLen, MaxDescriptionLen))
	}
	if d.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	return nil
}

// expenseService handles expense-related business logic.
type expenseService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewExpenseService creates a new ExpenseServicer. A nil publisher
// disables event fan-out.
func NewExpenseService(db *gorm.DB, publisher events.Publisher) ExpenseServicer {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &expenseService{db: db, publisher: publisher}
}

// owned scopes a query to the expenses of ownerID.
func (s *expenseService) owned(ctx context.Context, ownerID string) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", ownerID)
}

// CreateExpense validates the draft and stores it with ownerID attached.
func (s *expenseService) CreateExpense(ctx context.Context, ownerID string, draft ExpenseDraft) (*models.Expense, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      ownerID,
		Description: strings.TrimSpace(draft.Description),
		Amount:      draft.Amount,
		Category:    draft.Category,
		Date:        models.CalendarDate(draft.Date),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(expense).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(ctx, events.ExpenseCreated, expense)
	return expense, nil
}

// ListExpenses returns every expense of ownerID, newest date first.
func (s *expenseService) ListExpenses(ctx context.Context, ownerID string) ([]models.Expense, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	expenses := []models.Expense{}
	if err := s.owned(ctx, ownerID).
		Order("date DESC").Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// ListExpensesPage returns one page of ownerID's expenses, in the same
// order as ListExpenses.
func (s *expenseService) ListExpensesPage(ctx context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	page = page.Normalize()

	var totalItems int64
	if err := s.owned(ctx, ownerID).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.owned(ctx, ownerID).
		Scopes(pagination.Paginate(page)).
		Order("date DESC").Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page, totalItems)
	return &result, nil
}

// GetExpense retrieves one expense. A missing expense and one owned by
// someone else both yield ErrExpenseNotFound.
func (s *expenseService) GetExpense(ctx context.Context, id, ownerID string) (*models.Expense, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var expense models.Expense
	if err := s.owned(ctx, ownerID).Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// DeleteExpense removes an expense owned by ownerID and returns it. The
// lookup and the delete run in one transaction and both filter on the
// owner, so a foreign id is never touched.
func (s *expenseService) DeleteExpense(ctx context.Context, id, ownerID string) (*models.Expense, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var expense models.Expense
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Expense{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrExpenseNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ExpenseDeleted, &expense)
	return &expense, nil
}

// categoryTotal is one row of the grouped category sum.
type categoryTotal struct {
	Category models.Category
	Total    money.Amount
}

// SumByCategory totals ownerID's expenses per category in the store.
// Categories with no expenses are absent.
func (s *expenseService) SumByCategory(ctx context.Context, ownerID string) (map[models.Category]money.Amount, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var rows []categoryTotal
	if err := s.owned(ctx, ownerID).
		Select("category, CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[models.Category]money.Amount, len(rows))
	for _, r := range rows {
		totals[r.Category] = r.Total
	}
	return totals, nil
}

// Summary computes both grouped views for ownerID. The category sum and
// the list for the month view are fetched concurrently.
func (s *expenseService) Summary(ctx context.Context, ownerID string) (*aggregate.Summary, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var (
		byCategory map[models.Category]money.Amount
		expenses   []models.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byCategory, err = s.SumByCategory(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.ListExpenses(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := aggregate.Summarize(expenses)
	summary.ByCategory = byCategory
	return &summary, nil
}

// publish sends a lifecycle event. Failures are logged and never reach
// the caller; the expense is already committed.
func (s *expenseService) publish(ctx context.Context, t events.Type, e *models.Expense) {
	msg := events.NewMessage(t, e.ID, e.UserID)
	if err := s.publisher.Publish(context.WithoutCancel(ctx), msg); err != nil {
		logger.Get().Warnw("failed to publish expense event",
			"error", err,
			"type", t,
			"expense_id", e.ID,
		)
	}
}
