package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performMapped(t *testing.T, handler gin.HandlerFunc, body string) response.Response {
	t.Helper()
	r := gin.New()
	r.POST("/x", handler)
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRespondMappedErrorUsesRuleTable(t *testing.T) {
	resp := performMapped(t, func(c *gin.Context) {
		err := fmt.Errorf("load order: %w", service.ErrOrderNotFound)
		RespondMappedError(c, err, OrderErrorRules, response.CodeInternal, "error.internal")
	}, "{}")
	assert.Equal(t, response.CodeNotFound, resp.StatusCode)

	resp = performMapped(t, func(c *gin.Context) {
		RespondMappedError(c, errors.New("boom"), OrderErrorRules, response.CodeInternal, "error.internal")
	}, "{}")
	assert.Equal(t, response.CodeInternal, resp.StatusCode)
}

func TestBindJSONProducesAppError(t *testing.T) {
	type payload struct {
		Name string `json:"name" binding:"required"`
	}
	handler := func(c *gin.Context) {
		var req payload
		if err := BindJSON(c, &req, "error.review_rating_invalid"); err != nil {
			appErr, ok := response.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, "error.review_rating_invalid", appErr.Key)
			RespondMappedError(c, err, nil, response.CodeInternal, "error.internal")
			return
		}
		response.Success(c, req.Name)
	}

	resp := performMapped(t, handler, `{"name":""}`)
	assert.Equal(t, response.CodeBadRequest, resp.StatusCode)

	resp = performMapped(t, handler, `{"name":"lamp"}`)
	assert.Equal(t, response.CodeOK, resp.StatusCode)
	assert.Equal(t, "lamp", resp.Data)
}

func TestConcatMappedErrorsKeepsOrder(t *testing.T) {
	rules := ConcatMappedErrors(
		[]MappedError{{Target: service.ErrProductNotFound, Code: response.CodeBadRequest, Key: "first"}},
		ProductErrorRules,
	)
	require.Len(t, rules, 1+len(ProductErrorRules))
	assert.Equal(t, "first", rules[0].Key)
}
