package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/reaktor-issues/backend/internal/models"
)

// AuthMiddleware validates the bearer token and copies the identity claims
// into the request context. Domain handlers trust these claims; they never
// re-authenticate.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header required",
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if email, exists := claims["email"]; exists {
				c.Set("user_email", email.(string))
			}
			if name, exists := claims["nombre"]; exists {
				c.Set("user_name", name.(string))
			}
			if surname, exists := claims["apellidos"]; exists {
				c.Set("user_surname", surname.(string))
			}
			if role, exists := claims["rol"]; exists {
				c.Set("user_role", role.(string))
			}
		}

		c.Next()
	}
}

// RequireRole gates a route on the role claim. ADMINISTRADOR implies
// PROFESOR; requiring ADMINISTRADOR admits only administrators.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Role claim required",
			})
			c.Abort()
			return
		}

		actual := models.UserRole(userRole.(string))
		allowed := actual == role || (role == models.RoleTeacher && actual == models.RoleAdmin)
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Insufficient role",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
