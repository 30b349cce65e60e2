package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "gastos/internal/errors"
	"gastos/internal/logger"
	"gastos/internal/middleware"
	"gastos/internal/money"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// checkClaimedUser rejects a client-supplied user id that differs from
// the session user. An empty claim is accepted.
func checkClaimedUser(claimed, sessionUserID string) error {
	if claimed != "" && claimed != sessionUserID {
		return apperrors.WithMessage(apperrors.ErrUnauthorized, "userId does not match the session")
	}
	return nil
}

// pathID carries a record id taken from the URL.
type pathID struct {
	ID string `uri:"id" binding:"required,record_id"`
}

// parsePathID binds and validates the :id path parameter.
func parsePathID(c *gin.Context) (string, error) {
	var p pathID
	if err := c.ShouldBindUri(&p); err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid id")
	}
	return p.ID, nil
}

// bindingError maps a request binding failure to the most specific
// AppError: amount and category problems get their own codes, anything
// else is INVALID_INPUT.
func bindingError(err error) *apperrors.AppError {
	if errors.Is(err, money.ErrInvalidAmount) || errors.Is(err, money.ErrOutOfRange) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, err.Error())
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch {
			case fe.Tag() == "expense_category":
				return apperrors.ErrInvalidCategory
			case fe.Field() == "Amount":
				return apperrors.WithMessage(apperrors.ErrInvalidAmount, "Amount must be greater than 0 and at most 999999.00")
			}
		}
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	appErr := toAppError(c, err)
	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// toAppError logs err as needed and returns the AppError to render.
func toAppError(c *gin.Context, err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		return appErr
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	return apperrors.ErrInternalServer
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
