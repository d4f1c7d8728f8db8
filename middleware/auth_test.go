package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"store-service/models"
	"store-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newProtectedRouter(tokens *services.TokenService) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokens), func(c *gin.Context) {
		id, _ := UserID(c)
		seen = id
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenService("middleware-test-secret", 15)
	user := &models.User{ID: uuid.New(), Email: "test@example.com"}

	t.Run("Valid Token Passes And Sets User ID", func(t *testing.T) {
		router, seen := newProtectedRouter(tokens)
		envelope, err := tokens.GenerateAuthTokens(user)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+envelope.Access.Token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, user.ID, *seen)
	})

	t.Run("Missing Header - 401", func(t *testing.T) {
		router, _ := newProtectedRouter(tokens)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong Kind - 401", func(t *testing.T) {
		router, _ := newProtectedRouter(tokens)
		refresh, err := tokens.Issue(user.ID.String(), services.RelativeMinutes(60), services.TokenKindRefresh)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage Token - 401", func(t *testing.T) {
		router, _ := newProtectedRouter(tokens)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
