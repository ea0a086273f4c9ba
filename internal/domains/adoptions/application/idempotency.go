package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
)

type normalizedSubmission struct {
	UserID        string              `json:"userId"`
	PetID         int64               `json:"petId"`
	InitialStatus string              `json:"initialStatus"`
	UserNotes     string              `json:"userNotes"`
	Applicant     normalizedApplicant `json:"applicant"`
}

type normalizedApplicant struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmploymentStatus string `json:"employmentStatus"`
	HousingType      string `json:"housingType"`
	HasYard          bool   `json:"hasYard"`
	OtherPets        string `json:"otherPets"`
	Experience       string `json:"experience"`
	Motivation       string `json:"motivation"`
}

// FingerprintSubmission builds a deterministic hash of the submission payload (excluding the idempotency key).
func FingerprintSubmission(input adoptiontypes.SubmitApplicationInput) (string, error) {
	payload, err := json.Marshal(normalizeSubmission(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeSubmission(input adoptiontypes.SubmitApplicationInput) normalizedSubmission {
	a := input.Applicant
	return normalizedSubmission{
		UserID:        strings.TrimSpace(input.UserID),
		PetID:         input.PetID,
		InitialStatus: strings.ToLower(strings.TrimSpace(input.InitialStatus)),
		UserNotes:     strings.TrimSpace(input.UserNotes),
		Applicant: normalizedApplicant{
			FullName:         strings.TrimSpace(a.FullName),
			Email:            strings.ToLower(strings.TrimSpace(a.Email)),
			Phone:            strings.TrimSpace(a.Phone),
			Address:          strings.TrimSpace(a.Address),
			EmploymentStatus: strings.TrimSpace(a.EmploymentStatus),
			HousingType:      strings.ToLower(strings.TrimSpace(a.HousingType)),
			HasYard:          a.HasYard,
			OtherPets:        strings.TrimSpace(a.OtherPets),
			Experience:       strings.TrimSpace(a.Experience),
			Motivation:       strings.TrimSpace(a.Motivation),
		},
	}
}
