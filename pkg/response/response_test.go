package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyshnav-v/food-delivery/app/query"
	"github.com/vyshnav-v/food-delivery/pkg/apperr"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"name": "Mains"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Mains", body["data"].(map[string]interface{})["name"])
}

func TestList(t *testing.T) {
	rec := httptest.NewRecorder()
	p := query.NewPagination(23, query.Params{Page: 2, Limit: 10})
	response.List(rec, []int{1, 2, 3}, p, map[string]int{"pending": 4})

	body := decode(t, rec)
	assert.Equal(t, float64(23), body["count"])

	pg := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pg["totalPages"])
	assert.Equal(t, true, pg["hasNextPage"])
	assert.Equal(t, true, pg["hasPrevPage"])

	assert.Equal(t, float64(4), body["stats"].(map[string]interface{})["pending"])
}

func TestListWithoutStatsOmitsField(t *testing.T) {
	rec := httptest.NewRecorder()
	response.List(rec, []int{}, query.NewPagination(0, query.Params{Page: 1, Limit: 10}), nil)

	body := decode(t, rec)
	_, present := body["stats"]
	assert.False(t, present)
}

func TestErrorMapsAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, apperr.NotFound("Product"), "Failed")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Product not found", body["message"])
}

func TestErrorWrapsUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, errors.New("socket closed"), "Failed to fetch orders")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Failed to fetch orders", body["message"])
	// Outside production the cause is echoed for debugging.
	assert.Equal(t, "socket closed", body["error"])
}

func TestValidationFail(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationFail(rec, map[string]string{"email": "The email field is required."})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs["email"], "required")
}
