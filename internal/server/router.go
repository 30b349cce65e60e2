// Package server assembles the HTTP router from services and middleware.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gastos/internal/handlers"
	"gastos/internal/middleware"
	"gastos/internal/services"
	"gastos/internal/session"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users        services.UserServicer
	Expenses     services.ExpenseServicer
	Audit        services.AuditServicer
	Sessions     session.Store
	CORSOrigin   string
	SecureCookie bool
}

// NewRouter builds the gin engine with every API route mounted.
func NewRouter(deps Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Audit, deps.Sessions, deps.SecureCookie)
	expenseHandler := handlers.NewExpenseHandler(deps.Expenses, deps.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(deps.CORSOrigin))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.Sessions))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/session", authHandler.Session)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/totals/category", expenseHandler.GetCategoryTotals)
	expenses.GET("/summary", expenseHandler.GetSummary)
	expenses.GET("/export", expenseHandler.ExportExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	return router
}
