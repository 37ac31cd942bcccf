package controllers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/reaktor-issues/backend/internal/logger"
	"github.com/reaktor-issues/backend/internal/models"
	"github.com/reaktor-issues/backend/internal/repository"
)

type AuthController struct {
	users *repository.UserRepository
}

func NewAuthController(users *repository.UserRepository) *AuthController {
	return &AuthController{users: users}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"nombre" binding:"required"`
	Surname  string `json:"apellidos" binding:"required"`
	Role     string `json:"rol"`
}

// Login verifies credentials and issues a 24h token carrying the identity
// claims the incident handlers read back from the request context.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := ac.users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logger.WithUser(user.Email).Warn("Failed login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":     user.Email,
		"nombre":    user.Name,
		"apellidos": user.Surname,
		"rol":       string(user.Role),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		logger.WithError(err, "auth_controller").Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.WithUser(user.Email).Info("User logged in")
	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  user,
	})
}

// Register creates an account. The route is admin-gated; the role defaults
// to PROFESOR when the request omits it.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	email := strings.ToLower(req.Email)
	existing, err := ac.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	role := models.RoleTeacher
	if req.Role == string(models.RoleAdmin) {
		role = models.RoleAdmin
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err, "auth_controller").Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     req.Name,
		Surname:  req.Surname,
		Role:     role,
	}
	if err := ac.users.Create(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}

	logger.WithUser(user.Email).Info("User registered")
	c.JSON(http.StatusCreated, user)
}
