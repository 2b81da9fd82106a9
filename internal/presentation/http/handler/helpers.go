package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/application/service"
	"github.com/yatrasutra/invoice-backend/internal/presentation/http/dto/response"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// parsePositiveInt parses a decimal string that must be >= 1
func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("value must be positive: %d", n)
	}
	return n, nil
}

// bindJSON binds the request body and answers failures in place. Binding
// rule violations come back as a 422 with one entry per failed field,
// anything else as a plain 400. Returns false when the request was
// already answered.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]apperror.FieldError, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields = append(fields, apperror.FieldError{
				Field:   strings.ToLower(fieldErr.Field()),
				Message: fmt.Sprintf("Failed on the '%s' rule", fieldErr.Tag()),
			})
		}
		response.Error(c, apperror.NewValidationError(fields))
		return false
	}

	response.BadRequest(c, "Invalid request body")
	return false
}

// GetRequester builds the requester identity used by the service layer
// for access checks. Returns nil when the request is unauthenticated.
func GetRequester(c *gin.Context) *service.RequesterInfo {
	userID := GetUserID(c)
	if userID == nil {
		return nil
	}
	return &service.RequesterInfo{
		UserID: *userID,
		Role:   GetUserRole(c),
	}
}
