package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	CustomerPhone string `json:"customer_phone" binding:"required"`
	Items         []struct {
		ItemID string `json:"item_id" binding:"required"`
	} `json:"items" binding:"required,min=1,dive"`
}

func bind(t *testing.T, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var target bindTarget
	err := c.ShouldBindJSON(&target)
	require.Error(t, err)
	BindError(c, err)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestBindErrorListsJSONFieldNames(t *testing.T) {
	w, resp := bind(t, `{"items":[{}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	raw, _ := json.Marshal(resp.Errors)
	var fields []apperror.FieldError
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.Len(t, fields, 2)
	assert.Equal(t, apperror.FieldError{Field: "customer_phone", Message: "is required"}, fields[0])
	assert.Equal(t, "items[0].item_id", fields[1].Field)
}

func TestBindErrorMalformedJSON(t *testing.T) {
	w, resp := bind(t, `{"customer_phone":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, resp.Errors)
	assert.Contains(t, resp.Message, "Invalid request body")
}

func TestErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(RequestIDKey, "req-1")

	Error(c, assert.AnError)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", resp.Message)
	assert.Equal(t, "req-1", resp.Meta.RequestID)
	assert.Len(t, c.Errors, 1)
}

func TestErrorUsesAppErrorCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, apperror.NewConflictError("Item K-1 is already sold"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Item K-1 is already sold")
}
