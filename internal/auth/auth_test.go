package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartq/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager("access", "refresh", time.Minute, time.Hour)
	user := models.User{Role: models.RoleAdmin}
	user.ID = 7

	access, refresh, err := m.GeneratePair(user)
	require.NoError(t, err)

	claims, err := m.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.TokenID)

	// refresh подписан другим секретом
	_, err = m.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	rc, err := m.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), m.RemainingTTL(rc).Seconds(), 5)
}

func TestManagerRejectsExpired(t *testing.T) {
	m := NewManager("access", "refresh", time.Minute, time.Hour)
	now := time.Now()
	m.now = func() time.Time { return now }

	user := models.User{}
	user.ID = 1
	access, _, err := m.GeneratePair(user)
	require.NoError(t, err)

	m.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = m.ParseAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager("access", "refresh", time.Minute, time.Hour)

	r := gin.New()
	r.GET("/me", AuthMiddleware(m), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(ContextUserID), "role": c.GetString(ContextRole)})
	})
	r.GET("/admin", AuthMiddleware(m), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	customer := models.User{Role: models.RoleCustomer}
	customer.ID = 3
	token, _, err := m.GeneratePair(customer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"garbage", "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid", "/me", "Bearer " + token, http.StatusOK},
		{"customer on admin route", "/admin", "Bearer " + token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
