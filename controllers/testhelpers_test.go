package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/models"
	"github.com/smilecare/dental-scheduler-api/tests/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupControllerTestDB installs a fresh in-memory database for a test.
func setupControllerTestDB(t *testing.T) *gorm.DB {
	testutil.RequireTestEnvironment(t)
	db := testutil.NewTestDB(t)
	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware injects an already-resolved caller, standing in
// for middleware.EnsureValidToken in handler tests.
func mockAuthMiddleware(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("current_user", user)
		c.Next()
	}
}

// doJSON performs a JSON request against the router and decodes the
// response envelope.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "response should be valid JSON")
	return w.Code, response
}

func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}
