//go:build dev && integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-testhelpers"
)

func TestSubmitResourceHappyPath(t *testing.T) {
	h := helper(t)

	name := testhelpers.UniqueName("Integration Pantry")
	body, _ := json.Marshal(map[string]string{
		"name":    name,
		"type":    "Food Pantry",
		"address": "500 Woodward Ave, Detroit, MI 48226",
		"hours":   "Sat 10AM-1PM",
	})
	req := h.BuildRequest(http.MethodPost, h.BaseURL+"/api/v1/submissions", body, "web", "203.0.113.20")
	resp := h.DoRequest(req, h.NewHTTPClient())
	require.Equal(t, http.StatusCreated, resp.StatusCode, h.ReadBody(resp))

	var sub models.Submission
	h.DecodeJSON(resp, &sub)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, name, sub.Name)

	_, err := h.DB.Exec(h.Ctx, `DELETE FROM submissions WHERE id=$1`, sub.ID)
	require.NoError(t, err)
}

func TestSubmitResourceInvalidBodies(t *testing.T) {
	h := helper(t)

	cases := map[string]map[string]string{
		"missing name":    {"type": "Food Pantry", "address": "1 Main St"},
		"missing address": {"name": "X", "type": "Food Pantry"},
		"unknown type":    {"name": "X", "type": "Restaurant", "address": "1 Main St"},
		"bad photo url":   {"name": "X", "type": "Food Pantry", "address": "1 Main St", "photoUrl": "not a url"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			body, _ := json.Marshal(payload)
			req := h.BuildRequest(http.MethodPost, h.BaseURL+"/api/v1/submissions", body, "web", "203.0.113.21")
			resp := h.DoRequest(req, h.NewHTTPClient())
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
