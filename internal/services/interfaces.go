package services

import (
	"context"

	"gastos/internal/aggregate"
	"gastos/internal/models"
	"gastos/internal/money"
	"gastos/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, name, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// ExpenseServicer is the only way to read or write expenses. Every method
// is scoped to ownerID, which must come from a verified session.
type ExpenseServicer interface {
	CreateExpense(ctx context.Context, ownerID string, draft ExpenseDraft) (*models.Expense, error)
	ListExpenses(ctx context.Context, ownerID string) ([]models.Expense, error)
	ListExpensesPage(ctx context.Context, ownerID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpense(ctx context.Context, id, ownerID string) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id, ownerID string) (*models.Expense, error)
	SumByCategory(ctx context.Context, ownerID string) (map[models.Category]money.Amount, error)
	Summary(ctx context.Context, ownerID string) (*aggregate.Summary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
