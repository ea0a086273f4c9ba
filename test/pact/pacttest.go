//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pet-adoption-api"
	ConsumerName = "adoption-portal"

	StateStatusModel         = "adoption status model"
	StatePetListed           = "pet with id 101 is listed"
	StateApplicationInReview = "application app-pact-1 is under review"
	StateApplicationMissing  = "no application with id app-missing"
)

const (
	ListedPetID          int64 = 101
	ReviewApplicationID        = "app-pact-1"
	MissingApplicationID       = "app-missing"
	PactUserID                 = "pact-user"
)

// ExampleApplicantInfo provides stable applicant data for pact interactions.
func ExampleApplicantInfo() map[string]any {
	return map[string]any{
		"fullName":    "Pact Applicant",
		"email":       "pact.applicant@example.com",
		"phone":       "+1234567890",
		"address":     "1 Contract Lane",
		"housingType": "house",
		"hasYard":     true,
		"motivation":  "Room to run",
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
