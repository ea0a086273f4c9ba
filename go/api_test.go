package adoptionserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptionhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptionmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/petcatalog"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/workflows"
	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	adoptionports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	pethttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	petsmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

type testServer struct {
	router      *gin.Engine
	petID       int64
	transitions *recordingWorkflows
}

// recordingWorkflows remembers every status routed through the orchestrator.
type recordingWorkflows struct {
	adoptionports.WorkflowOrchestrator
	mu       sync.Mutex
	statuses []string
}

func (w *recordingWorkflows) TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	w.mu.Lock()
	w.statuses = append(w.statuses, input.Status)
	w.mu.Unlock()
	return w.WorkflowOrchestrator.TransitionApplication(ctx, input)
}

func (w *recordingWorkflows) seen() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.statuses...)
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	pets := petsapp.NewService(petsmemory.NewRepository())
	name, species := "Mochi", "cat"
	pet, err := pets.AddPet(context.Background(), petstypes.AddPetInput{
		PetMutationInput: petstypes.PetMutationInput{Name: &name, Species: &species},
	})
	require.NoError(t, err)

	adoptions := adoptionapp.NewService(
		adoptionmemory.NewApplicationRepository(),
		adoptionmemory.NewInterestRepository(),
		adoptionapp.WithPetCatalog(petcatalog.New(pets)),
		adoptionapp.WithIdempotencyStore(adoptionmemory.NewIdempotencyStore()),
	)
	transitions := &recordingWorkflows{WorkflowOrchestrator: adoptionworkflows.NewInlineTransitionWorkflows(adoptions)}
	handlers := ApiHandleFunctions{
		AdoptionAPI: NewAdoptionAPI(adoptions, transitions),
		InterestAPI: NewInterestAPI(adoptions),
		PetAPI:      NewPetAPI(pets),
		StatusAPI:   NewStatusAPI(),
	}
	return &testServer{router: NewRouterWithGinEngine(gin.New(), handlers), petID: pet.Entity.ID, transitions: transitions}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) submit(t *testing.T, userID string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/v1/adoptions", adoptionhttpmapper.SubmitApplication{
		UserID: userID,
		PetID:  s.petID,
		ApplicantInfo: adoptionhttpmapper.ApplicantInfo{
			FullName:    "Ana Ruiz",
			Email:       "ana@example.com",
			Phone:       "555-0123",
			Address:     "9 Elm St",
			HousingType: "apartment",
		},
	}, headers...)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestStatusEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/adoption-statuses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]adoptionhttpmapper.StatusDescriptor](t, rec)
	require.Len(t, all, 13)
	assert.Equal(t, "browsing", all[0].Status)

	rec = s.do(t, http.MethodGet, "/v1/adoption-statuses/UNDER_REVIEW", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	one := decode[adoptionhttpmapper.StatusDescriptor](t, rec)
	assert.Equal(t, []string{"approved", "rejected"}, one.NextStatuses)
	assert.True(t, one.Known)

	rec = s.do(t, http.MethodGet, "/v1/adoption-statuses/lost", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	unknown := decode[adoptionhttpmapper.StatusDescriptor](t, rec)
	assert.False(t, unknown.Known)
	assert.Equal(t, "Unknown status", unknown.Message)
	assert.Equal(t, 0, unknown.Progress)
}

func TestApplicationLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.submit(t, "user-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[adoptionhttpmapper.Application](t, rec)
	assert.Equal(t, "application_sent", created.Status)

	rec = s.do(t, http.MethodPost, "/v1/adoptions/"+created.ID+"/transitions", adoptionhttpmapper.TransitionRequest{Status: "under_review", Note: "references checked"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reviewed := decode[adoptionhttpmapper.Application](t, rec)
	assert.Equal(t, "under_review", reviewed.Status)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Contains(t, reviewed.ShelterNotes, "references checked")

	rec = s.do(t, http.MethodPost, "/v1/adoptions/"+created.ID+"/transitions", adoptionhttpmapper.TransitionRequest{Status: "adopted"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeConflict, problem.Type)
	assert.Equal(t, "under_review", problem.Extensions["from"])
	assert.Equal(t, "adopted", problem.Extensions["to"])
	assert.Equal(t, []any{"approved", "rejected"}, problem.Extensions["allowed"])

	rec = s.do(t, http.MethodGet, "/v1/adoptions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/adoptions?userId=user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]adoptionhttpmapper.Application](t, rec), 1)
}

func TestSubmitConflictsAndValidation(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.submit(t, "user-1").Code)
	rec := s.submit(t, "user-1")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/adoptions", adoptionhttpmapper.SubmitApplication{
		UserID: "user-2",
		PetID:  s.petID,
		ApplicantInfo: adoptionhttpmapper.ApplicantInfo{
			FullName:    "Ana Ruiz",
			Email:       "not-an-email",
			Phone:       "555-0123",
			Address:     "9 Elm St",
			HousingType: "house",
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	fields, ok := problem.Extensions["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "applicant.email")

	rec = s.do(t, http.MethodPost, "/v1/adoptions", adoptionhttpmapper.SubmitApplication{
		UserID:        "user-3",
		PetID:         s.petID + 40,
		ApplicantInfo: adoptionhttpmapper.ApplicantInfo{FullName: "A", Email: "a@b.c", Phone: "1", Address: "x", HousingType: "condo"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitIdempotencyKeyReplays(t *testing.T) {
	s := newTestServer(t)

	first := s.submit(t, "user-9", IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	second := s.submit(t, "user-9", IdempotencyKeyHeader, "retry-1")
	require.Equal(t, http.StatusCreated, second.Code, second.Body.String())

	assert.Equal(t,
		decode[adoptionhttpmapper.Application](t, first).ID,
		decode[adoptionhttpmapper.Application](t, second).ID)
}

func TestPetAvailabilityFollowsApplications(t *testing.T) {
	s := newTestServer(t)
	created := decode[adoptionhttpmapper.Application](t, s.submit(t, "user-1"))

	for _, status := range []string{"under_review", "approved", "meet_scheduled", "meeting_completed"} {
		rec := s.do(t, http.MethodPost, "/v1/adoptions/"+created.ID+"/transitions", adoptionhttpmapper.TransitionRequest{Status: status})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := s.do(t, http.MethodGet, "/v1/pets/"+itoa(s.petID)+"/availability", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	availability := decode[adoptionhttpmapper.PetAvailability](t, rec)
	assert.False(t, availability.Available)
	assert.Equal(t, created.ID, availability.LockingApplicationID)

	rec = s.do(t, http.MethodGet, "/v1/pets/"+itoa(s.petID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", decode[pethttpmapper.Pet](t, rec).Status)

	assert.Equal(t, http.StatusConflict, s.submit(t, "user-2").Code)
}

func TestCompetingApplicationCannotPassLockedPet(t *testing.T) {
	s := newTestServer(t)
	alice := decode[adoptionhttpmapper.Application](t, s.submit(t, "alice"))
	bob := decode[adoptionhttpmapper.Application](t, s.submit(t, "bob"))

	move := func(id, status string) *httptest.ResponseRecorder {
		return s.do(t, http.MethodPost, "/v1/adoptions/"+id+"/transitions", adoptionhttpmapper.TransitionRequest{Status: status})
	}
	for _, status := range []string{"under_review", "approved", "meet_scheduled"} {
		require.Equal(t, http.StatusOK, move(bob.ID, status).Code)
	}
	for _, status := range []string{"under_review", "approved", "meet_scheduled", "meeting_completed"} {
		require.Equal(t, http.StatusOK, move(alice.ID, status).Code)
	}

	rec := move(bob.ID, "meeting_completed")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Equal(t, apierrors.TypeConflict, decode[apierrors.ProblemDetail](t, rec).Type)

	for _, status := range []string{"adoption_approved", "adopted"} {
		require.Equal(t, http.StatusOK, move(alice.ID, status).Code)
	}
	rec = s.do(t, http.MethodGet, "/v1/adoptions?petId="+itoa(s.petID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	adopted := 0
	for _, app := range decode[[]adoptionhttpmapper.Application](t, rec) {
		if app.Status == "adopted" {
			adopted++
		}
	}
	assert.Equal(t, 1, adopted)
}

func TestWithdrawAndNotes(t *testing.T) {
	s := newTestServer(t)
	created := decode[adoptionhttpmapper.Application](t, s.submit(t, "user-1"))

	notes := "call after 5pm"
	rec := s.do(t, http.MethodPatch, "/v1/adoptions/"+created.ID+"/notes", adoptionhttpmapper.NotesUpdate{UserNotes: &notes})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, notes, decode[adoptionhttpmapper.Application](t, rec).UserNotes)

	rec = s.do(t, http.MethodPatch, "/v1/adoptions/"+created.ID+"/notes", adoptionhttpmapper.NotesUpdate{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/adoptions/"+created.ID+"/withdraw", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "withdrawn", decode[adoptionhttpmapper.Application](t, rec).Status)
	assert.Equal(t, []string{"withdrawn"}, s.transitions.seen())

	rec = s.do(t, http.MethodPost, "/v1/adoptions/"+created.ID+"/withdraw", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/adoptions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInterestEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/interests", adoptionhttpmapper.InterestRequest{UserID: "user-1", PetID: s.petID, InterestType: "pass"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/v1/interests", adoptionhttpmapper.InterestRequest{UserID: "user-1", PetID: s.petID, InterestType: "super_like"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/interests?userId=user-1&positiveOnly=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]adoptionhttpmapper.Interest](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "super_like", list[0].InterestType)

	rec = s.do(t, http.MethodPost, "/v1/interests", adoptionhttpmapper.InterestRequest{UserID: "user-1", PetID: s.petID, InterestType: "meh"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/interests?userId=user-1&positiveOnly=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPetEndpoints(t *testing.T) {
	s := newTestServer(t)

	name, species := "Pip", "rabbit"
	rec := s.do(t, http.MethodPost, "/v1/pets", pethttpmapper.MutationPet{Name: &name, Species: &species})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pet := decode[pethttpmapper.Pet](t, rec)
	assert.Equal(t, "available", pet.Status)

	age := 8
	rec = s.do(t, http.MethodPut, "/v1/pets/"+itoa(pet.ID), pethttpmapper.MutationPet{AgeMonths: &age})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 8, decode[pethttpmapper.Pet](t, rec).AgeMonths)

	rec = s.do(t, http.MethodGet, "/v1/pets/findByStatus?status=available", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]pethttpmapper.Pet](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/v1/pets/findByStatus?status=sold", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/v1/pets/"+itoa(pet.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/pets/"+itoa(pet.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/pets/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
