package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/patchworkgame-go/internal/api/apierr"
	"github.com/mcoot/patchworkgame-go/internal/testutil"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var body apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func TestRecoveryWritesAPIError(t *testing.T) {
	h := Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("stamp out of bounds")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/matches/ABC/buy", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	body := decodeError(t, rr)
	assert.Equal(t, apierr.CodeInternalError, body.Code)
	assert.NotContains(t, body.Message, "stamp")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFound(testutil.NopLogger()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/lobbies", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRouteNotFound, decodeError(t, rr).Code)

	rr = httptest.NewRecorder()
	MethodNotAllowed(testutil.NopLogger()).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/v1/catalog", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, apierr.CodeMethodNotAllowed, decodeError(t, rr).Code)
}
