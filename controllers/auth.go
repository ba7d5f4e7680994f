package controllers

import (
	"net/http"

	"allure-backend/services"
	"allure-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ac *AuthController) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie("token", token, int(ac.auth.TokenTTL().Seconds()), "/", "", true, true)
}

func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := ac.auth.Register(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Email")
		return
	}
	ac.setTokenCookie(c, result.Token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}
	ac.setTokenCookie(c, result.Token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := ac.auth.Me(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, user)
}
