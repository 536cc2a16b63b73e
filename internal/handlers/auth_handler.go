package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"veriauth/internal/models"
	"veriauth/internal/services"
)

type AuthHandler struct {
	accounts services.AccountService
}

func NewAuthHandler(accounts services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// @Summary      Register a new account
// @Description  Creates an unverified account and emails a verification link
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      200       {object}  map[string]string
// @Failure      400       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	err := h.accounts.Register(req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"msg": "Registration successful! Check your email for verification link.",
		})
	case errors.Is(err, services.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Email already exists"})
	default:
		log.Printf("[auth][register] failed for %q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Registration failed"})
	}
}

// @Summary      Verify an email address
// @Description  Consumes the signed token from the verification link
// @Tags         Auth
// @Produce      json
// @Param        token  path      string  true  "Verification token"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /auth/verify/{token} [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Param("token")

	err := h.accounts.Verify(token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"msg": "Email verified successfully!"})
	case errors.Is(err, services.ErrUnknownToken):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid token"})
	case errors.Is(err, services.ErrTokenExpired), errors.Is(err, services.ErrTokenInvalid):
		// no distinction surfaced between bad signature and expiry
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Expired or invalid token"})
	default:
		log.Printf("[auth][verify] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Verification failed"})
	}
}

// @Summary      Log in
// @Description  Password login, gated on a verified email address
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Login data"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	err := h.accounts.Login(req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"msg": "Login successful"})
	case errors.Is(err, services.ErrNotVerified):
		c.JSON(http.StatusForbidden, gin.H{"msg": "Please verify your email first"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid credentials"})
	default:
		log.Printf("[auth][login] failed for %q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Login failed"})
	}
}
