package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/reaktor-issues/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withRole simulates the auth middleware having parsed a token with the
// given role claim.
func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set("user_role", role)
		}
		c.Next()
	}
}

func serve(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		claim    string
		required models.UserRole
		status   int
	}{
		{"missing claim", "", models.RoleTeacher, http.StatusForbidden},
		{"teacher on teacher route", "PROFESOR", models.RoleTeacher, http.StatusOK},
		{"admin on teacher route", "ADMINISTRADOR", models.RoleTeacher, http.StatusOK},
		{"teacher on admin route", "PROFESOR", models.RoleAdmin, http.StatusForbidden},
		{"admin on admin route", "ADMINISTRADOR", models.RoleAdmin, http.StatusOK},
		{"unknown role", "CONSERJE", models.RoleTeacher, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/guarded", withRole(tt.claim), RequireRole(tt.required), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := serve(router, "")
			if w.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	router := gin.New()
	router.GET("/guarded", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.header)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "profesor@iesjandula.es",
		"rol":   "PROFESOR",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	router := gin.New()
	router.GET("/guarded", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := serve(router, "Bearer "+signed)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong secret, got %d", w.Code)
	}
}

func TestAuthMiddlewareSetsClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":     "profesor@iesjandula.es",
		"nombre":    "Lorena",
		"apellidos": "Garcia Soto",
		"rol":       "PROFESOR",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	var got map[string]string
	router := gin.New()
	router.GET("/guarded", AuthMiddleware(), func(c *gin.Context) {
		got = map[string]string{
			"email":   c.GetString("user_email"),
			"name":    c.GetString("user_name"),
			"surname": c.GetString("user_surname"),
			"role":    c.GetString("user_role"),
		}
		c.Status(http.StatusOK)
	})

	w := serve(router, "Bearer "+signed)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	expected := map[string]string{
		"email":   "profesor@iesjandula.es",
		"name":    "Lorena",
		"surname": "Garcia Soto",
		"role":    "PROFESOR",
	}
	for key, want := range expected {
		if got[key] != want {
			t.Errorf("Claim %s = %q, want %q", key, got[key], want)
		}
	}
}

func TestAuthMiddlewareThenRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "profesor@iesjandula.es",
		"rol":   "PROFESOR",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	router := gin.New()
	router.GET("/guarded", AuthMiddleware(), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// A real teacher token must not pass an admin-only route
	w := serve(router, "Bearer "+signed)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for teacher on admin route, got %d", w.Code)
	}
}
