package errors

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of every error body.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates a service error into a problem. ok is false when the error is not recognized.
type ErrorMapper func(err error) (problem ProblemDetail, ok bool)

// Responder writes problem documents. Errors no mapper recognizes become a 500 whose
// detail is logged rather than returned to the client.
type Responder struct {
	baseURI string
	logger  *slog.Logger
	mappers []ErrorMapper
}

// NewChainedResponder builds a responder that tries mappers in order.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{
		baseURI: strings.TrimSuffix(baseURI, "/"),
		mappers: mappers,
	}
}

// WithLogger sets the logger for unmapped errors. Without one the slog default at call time is used.
func (r *Responder) WithLogger(logger *slog.Logger) *Responder {
	r.logger = logger
	return r
}

// Respond writes problem, defaulting the instance to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && strings.HasPrefix(problem.Type, "/") {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError maps err through the chain; a ProblemDetail passes through unchanged.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(c.Request.Context(), "unhandled service error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	)
	r.Respond(c, ErrInternal.WithDetail("the request could not be completed"))
}
