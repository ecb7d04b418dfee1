package model

import "time"

// Registration types seen in the upstream data. Values are compared
// case-insensitively.
const (
	RegistrationTypeNew      = "new"
	RegistrationTypeRenewal  = "renewal"
	RegistrationTypeTransfer = "transfer"
)

type Owner struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
	State       string `json:"state,omitempty"`
	NationalID  string `json:"nationalId,omitempty"`
}

type Vehicle struct {
	Make          string `json:"make"`
	Model         string `json:"model"`
	Year          int    `json:"year,omitempty"`
	Color         string `json:"color,omitempty"`
	Category      string `json:"category,omitempty"`
	ChassisNumber string `json:"chassisNumber,omitempty"`
	EngineNumber  string `json:"engineNumber,omitempty"`
}

// VehicleRegistration is created upstream and read-only here.
type VehicleRegistration struct {
	ID               string    `json:"id"`
	Owner            Owner     `json:"owner"`
	Vehicle          Vehicle   `json:"vehicle"`
	RegistrationType string    `json:"registrationType"`
	Status           string    `json:"status"`
	IssuedBy         string    `json:"issuedBy,omitempty"`
	PlateNumber      string    `json:"plateNumber"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// StationJob is a pending registration task queued at a station.
type StationJob struct {
	ID               string    `json:"id"`
	ApplicantName    string    `json:"applicantName"`
	PlateNumber      string    `json:"plateNumber"`
	RegistrationType string    `json:"registrationType"`
	VehicleMake      string    `json:"vehicleMake"`
	CreatedAt        time.Time `json:"createdAt"`
}

type LearnerPermit struct {
	ID            string    `json:"id"`
	PermitNumber  string    `json:"permitNumber"`
	ApplicantName string    `json:"applicantName"`
	Class         string    `json:"class"`
	Status        string    `json:"status"`
	IssuedAt      time.Time `json:"issuedAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type Plate struct {
	Number         string     `json:"number"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	RegistrationID string     `json:"registrationId,omitempty"`
	AssignedAt     *time.Time `json:"assignedAt,omitempty"`
}

// Envelope is the `{data: [...]}` wrapper used by list endpoints.
type Envelope[T any] struct {
	Data []T `json:"data"`
}
