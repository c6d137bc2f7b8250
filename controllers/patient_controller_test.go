package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/smilecare/dental-scheduler-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patientBody(cnp string) map[string]interface{} {
	return map[string]interface{}{
		"first_name":   "Ion",
		"last_name":    "Ionescu",
		"phone_number": "0712345678",
		"cnp":          cnp,
	}
}

func TestPatientCRUDEndpoints(t *testing.T) {
	db := setupControllerTestDB(t)

	admin := models.User{Username: "patadmin", Password: "x", Role: models.RoleAdmin, Active: true}
	require.NoError(t, db.Create(&admin).Error)

	router := setupTestRouter()
	router.POST("/patients", mockAuthMiddleware(&admin), CreatePatient)
	router.GET("/patients", mockAuthMiddleware(&admin), GetAllPatients)
	router.GET("/patients/:id", mockAuthMiddleware(&admin), GetPatient)
	router.PUT("/patients/:id", mockAuthMiddleware(&admin), EditPatient)
	router.DELETE("/patients/:id", mockAuthMiddleware(&admin), DeletePatient)

	// create
	status, response := doJSON(t, router, http.MethodPost, "/patients", patientBody("9500000000001"))
	require.Equal(t, http.StatusCreated, status)
	data := response["data"].(map[string]interface{})
	id := uint(data["id"].(float64))

	// duplicate CNP
	status, response = doJSON(t, router, http.MethodPost, "/patients", patientBody("9500000000001"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", errorCode(response))

	// edit
	body := patientBody("9500000000001")
	body["phone_number"] = "0700000001"
	status, response = doJSON(t, router, http.MethodPut, fmt.Sprintf("/patients/%d", id), body)
	require.Equal(t, http.StatusOK, status)
	data = response["data"].(map[string]interface{})
	assert.Equal(t, "0700000001", data["phone_number"])

	// ownership: a client linked to another patient may not edit this one
	otherClient := models.User{Username: "otherpat", Password: "x", Role: models.RoleClient, Active: true}
	require.NoError(t, db.Create(&otherClient).Error)
	seedPatientRecord(t, db, "9500000000002", &otherClient.ID)

	otherRouter := setupTestRouter()
	otherRouter.PUT("/patients/:id", mockAuthMiddleware(&otherClient), EditPatient)
	status, response = doJSON(t, otherRouter, http.MethodPut, fmt.Sprintf("/patients/%d", id), body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(response))

	// delete
	status, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil)
	require.Equal(t, http.StatusOK, status)

	status, response = doJSON(t, router, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(response))
}
