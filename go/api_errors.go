package adoptionserver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptiondomain "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	adoptionports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

var problems = apierrors.NewChainedResponder("", mapAdoptionError, mapPetError)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	problems.Respond(c, problem)
}

// respondServiceError translates application errors into RFC 7807 responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func mapAdoptionError(err error) (apierrors.ProblemDetail, bool) {
	var transition *adoptiondomain.InvalidTransitionError
	switch {
	case errors.As(err, &transition):
		allowed := make([]string, 0, len(transition.Allowed))
		for _, status := range transition.Allowed {
			allowed = append(allowed, string(status))
		}
		return apierrors.ErrConflict.
			WithDetail(err.Error()).
			WithExtension("from", string(transition.From)).
			WithExtension("to", string(transition.To)).
			WithExtension("allowed", allowed), true
	case errors.Is(err, adoptiondomain.ErrInvalidTransition),
		errors.Is(err, adoptionapp.ErrDuplicateApplication),
		errors.Is(err, adoptionapp.ErrPetUnavailable),
		errors.Is(err, adoptionapp.ErrConcurrentUpdate),
		errors.Is(err, adoptionports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, adoptionports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "application"), true
	case errors.Is(err, adoptionports.ErrPetNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "pet"), true
	case errors.Is(err, adoptionapp.ErrInvalidInput):
		return validationProblem(err), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapPetError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, petsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "pet"), true
	case errors.Is(err, petsapp.ErrInvalidInput):
		return validationProblem(err), true
	}
	return apierrors.ProblemDetail{}, false
}

func validationProblem(err error) apierrors.ProblemDetail {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.ErrValidation.WithDetail(err.Error())
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fieldPath(fe.Namespace())] = fmt.Sprintf("failed %q validation", fe.Tag())
	}
	return apierrors.NewValidationProblem(fields).WithDetail("request failed validation")
}

// fieldPath drops the root struct name: "SubmitApplicationInput.Applicant.Email" becomes "applicant.email".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToLower(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, ".")
}
