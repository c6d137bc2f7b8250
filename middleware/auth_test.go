package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/auth"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/models"
	"github.com/smilecare/dental-scheduler-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func setupProtectedRouter(cfg *config.Config, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{EnsureValidToken(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		user, err := GetCurrentUser(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "username": user.Username})
	})

	router.GET("/protected", handlers...)
	return router
}

func TestEnsureValidToken(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)
	cfg := &config.Config{JWTSecret: testSecret}

	testutil.SeedUser(t, db, "active", models.RoleClient)
	disabled := testutil.SeedUser(t, db, "disabled", models.RoleClient)
	require.NoError(t, db.Model(disabled).Update("active", false).Error)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer token", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"unknown subject", "Bearer " + testutil.TokenFor(t, "ghost", models.RoleClient, testSecret), http.StatusUnauthorized},
		{"disabled user", "Bearer " + testutil.TokenFor(t, "disabled", models.RoleClient, testSecret), http.StatusUnauthorized},
		{"valid token", "Bearer " + testutil.TokenFor(t, "active", models.RoleClient, testSecret), http.StatusOK},
	}

	router := setupProtectedRouter(cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestEnsureValidTokenRejectsWrongSecret(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)

	testutil.SeedUser(t, db, "victim", models.RoleClient)

	forged, _, err := auth.GenerateToken("victim", models.RoleAdmin, "attacker-secret", time.Hour)
	require.NoError(t, err)

	router := setupProtectedRouter(&config.Config{JWTSecret: testSecret})
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	db := testutil.NewTestDB(t)
	config.SetDB(db)
	cfg := &config.Config{JWTSecret: testSecret}

	testutil.SeedUser(t, db, "theadmin", models.RoleAdmin)
	testutil.SeedUser(t, db, "theclient", models.RoleClient)

	router := setupProtectedRouter(cfg, models.RoleAdmin)

	tests := []struct {
		name           string
		username       string
		role           string
		expectedStatus int
	}{
		{"admin passes the gate", "theadmin", models.RoleAdmin, http.StatusOK},
		{"client is rejected", "theclient", models.RoleClient, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+testutil.TokenFor(t, tt.username, tt.role, testSecret))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestGetCurrentUserMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetCurrentUser(c)
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "MISSING_USER", authErr.Code)
}
