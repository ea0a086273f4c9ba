package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLocked = errors.New("pet locked")

func serve(t *testing.T, responder *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/pets/:petId/availability", func(c *gin.Context) {
		responder.RespondError(c, err)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/pets/7/availability", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespondErrorUsesFirstMatchingMapper(t *testing.T) {
	responder := NewChainedResponder("https://adoptions.example",
		func(err error) (ProblemDetail, bool) { return ProblemDetail{}, false },
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errLocked) {
				return ErrConflict.WithDetail(err.Error()).WithExtension("petId", 7), true
			}
			return ProblemDetail{}, false
		},
	)

	rec, problem := serve(t, responder, errLocked)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "https://adoptions.example"+TypeConflict, problem.Type)
	assert.Equal(t, "/v1/pets/7/availability", problem.Instance)
	assert.Equal(t, float64(7), problem.Extensions["petId"])
}

func TestRespondErrorHidesUnmappedDetail(t *testing.T) {
	var logs bytes.Buffer
	responder := NewChainedResponder("").WithLogger(slog.New(slog.NewJSONHandler(&logs, nil)))

	rec, problem := serve(t, responder, errors.New("dial tcp 10.0.0.5:5432: refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, problem.Type)
	assert.NotContains(t, problem.Detail, "10.0.0.5")
	assert.Contains(t, logs.String(), "10.0.0.5")
	assert.Contains(t, logs.String(), `"path":"/v1/pets/7/availability"`)
}

func TestRespondErrorPassesProblemThrough(t *testing.T) {
	rec, problem := serve(t, NewChainedResponder(""), ErrNotFound.WithDetail("no such pet"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no such pet", problem.Detail)
}

func TestWithExtensionDoesNotShareMaps(t *testing.T) {
	base := ErrConflict.WithExtension("from", "approved")
	derived := base.WithExtension("to", "adopted")

	assert.NotContains(t, base.Extensions, "to")
	assert.Equal(t, "approved", derived.Extensions["from"])
	assert.Nil(t, ErrConflict.Extensions)
}
