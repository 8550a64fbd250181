package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paydesk/models"
	"paydesk/types"
)

func TestEmployeeHandlers(t *testing.T) {
	app, db := setupApp(t)
	app.Get("/employees", GetAllEmployees)
	app.Post("/employees", AddEmployee)
	app.Delete("/employees/:id", RemoveEmployee)

	t.Run("Add Then List", func(t *testing.T) {
		payload, _ := json.Marshal(AddEmployeeRequest{
			FullName:   "Test Employee",
			Email:      "new@co.com",
			Department: "IT",
			Position:   "Developer",
			Salary:     5000,
		})
		req := httptest.NewRequest("POST", "/employees", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		req = httptest.NewRequest("GET", "/employees?department=IT", nil)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var response types.APIResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
		assert.True(t, response.Success)
		assert.Len(t, response.Data.([]interface{}), 1)
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/employees", bytes.NewReader([]byte(`{"email":""}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Remove Deactivates Instead Of Deleting", func(t *testing.T) {
		emp := models.Employee{
			ID:             uuid.New().String(),
			OrganizationID: "org-1",
			Email:          "leaver@co.com",
			FullName:       "Leaver",
			Status:         "active",
			JoinedAt:       time.Now(),
		}
		require.NoError(t, db.Create(&emp).Error)

		req := httptest.NewRequest("DELETE", "/employees/"+emp.ID, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var got models.Employee
		require.NoError(t, db.First(&got, "id = ?", emp.ID).Error)
		assert.Equal(t, "inactive", got.Status)
	})

	t.Run("Remove Unknown Employee", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/employees/"+uuid.New().String(), nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}
