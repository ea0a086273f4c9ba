package domain

import (
	"errors"
	"strings"
)

// HousingType describes the applicant's home.
type HousingType string

const (
	HousingHouse     HousingType = "house"
	HousingApartment HousingType = "apartment"
	HousingCondo     HousingType = "condo"
	HousingOther     HousingType = "other"
)

var (
	ErrEmptyFullName      = errors.New("applicant full name is required")
	ErrInvalidEmail       = errors.New("applicant email must contain '@'")
	ErrEmptyPhone         = errors.New("applicant phone is required")
	ErrEmptyAddress       = errors.New("applicant address is required")
	ErrInvalidHousingType = errors.New("housing type must be one of house, apartment, condo, other")
)

// ApplicantInfo is captured once when an application is submitted.
type ApplicantInfo struct {
	FullName         string
	Email            string
	Phone            string
	Address          string
	EmploymentStatus string
	HousingType      HousingType
	HasYard          bool
	OtherPets        string
	Experience       string
	Motivation       string
}

// IsValid reports whether h is a known housing type.
func (h HousingType) IsValid() bool {
	switch h {
	case HousingHouse, HousingApartment, HousingCondo, HousingOther:
		return true
	default:
		return false
	}
}

// Normalize trims free text fields and lower-cases the housing type.
func (a ApplicantInfo) Normalize() ApplicantInfo {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Address = strings.TrimSpace(a.Address)
	a.EmploymentStatus = strings.TrimSpace(a.EmploymentStatus)
	a.HousingType = HousingType(strings.ToLower(strings.TrimSpace(string(a.HousingType))))
	a.OtherPets = strings.TrimSpace(a.OtherPets)
	a.Experience = strings.TrimSpace(a.Experience)
	a.Motivation = strings.TrimSpace(a.Motivation)
	return a
}

// Validate enforces the fields the shelter needs to contact the applicant.
func (a ApplicantInfo) Validate() error {
	if a.FullName == "" {
		return ErrEmptyFullName
	}
	if !strings.Contains(a.Email, "@") {
		return ErrInvalidEmail
	}
	if a.Phone == "" {
		return ErrEmptyPhone
	}
	if a.Address == "" {
		return ErrEmptyAddress
	}
	if !a.HousingType.IsValid() {
		return ErrInvalidHousingType
	}
	return nil
}
