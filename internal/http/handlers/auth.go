package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/http/response"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/services"
)

type AuthHandler struct {
	log      *logger.Logger
	accounts services.AccountService
}

func NewAuthHandler(log *logger.Logger, accounts services.AccountService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), accounts: accounts}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	acct, err := h.accounts.Signup(c.Request.Context(), services.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.RespondServiceError(c, h.log, "signup_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message": "User created successfully",
		"user":    acct,
	})
}

// POST /signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	res, err := h.accounts.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondServiceError(c, h.log, "signin_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":     "Login successful",
		"role":        res.Account.Role,
		"email":       res.Account.Email,
		"accessToken": res.AccessToken,
		"expiresIn":   int64(res.ExpiresIn.Seconds()),
	})
}
