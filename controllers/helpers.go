package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"allure-backend/services"
	"allure-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/romana/rlog"
)

// currentUserID reads the user set by utils.AuthMiddleware. It responds 401
// itself when the id is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	s, _ := raw.(string)
	id, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+what+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// respondServiceError maps service errors onto HTTP statuses. resource names
// the thing a plain ErrNotFound refers to.
func respondServiceError(c *gin.Context, err error, resource string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, resource+" not found")
	case errors.Is(err, services.ErrNoSubscriptions):
		utils.RespondWithError(c, http.StatusNotFound, "No subscriptions found")
	case errors.Is(err, services.ErrDuplicate):
		utils.RespondWithError(c, http.StatusConflict, resource+" already exists")
	case errors.Is(err, services.ErrOverpayment):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Payment exceeds the outstanding balance")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrRegistrationClosed):
		utils.RespondWithError(c, http.StatusForbidden, "Registration is closed")
	case errors.Is(err, services.ErrNotConfigured):
		utils.RespondWithError(c, http.StatusServiceUnavailable, "This feature is not configured on the server")
	default:
		rlog.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
