package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatusPending is the only live status; resolving a report moves it
// into resolved_reports instead of flipping a column.
const ReportStatusPending = "pending"

// DonorReport is an open complaint against a donor.
type DonorReport struct {
	BaseModel
	DonorID     uuid.UUID `gorm:"type:uuid;index" json:"donor_id"`
	Donor       User      `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	Status      string    `gorm:"default:pending" json:"status"`
	ReportedAt  time.Time `json:"reported_at"`
}

// ResolvedReport is the archival copy of a resolved DonorReport. Rows are
// written once during resolution and never updated afterward.
type ResolvedReport struct {
	BaseModel
	DonorID         uuid.UUID `gorm:"type:uuid;index" json:"donor_id"`
	DonorName       string    `json:"donor_name"`
	Reason          string    `json:"reason"`
	Description     string    `json:"description,omitempty"`
	ResolutionNotes string    `json:"resolution_notes,omitempty"`
	ReportedAt      time.Time `json:"reported_at"`
	ResolvedAt      time.Time `json:"resolved_at"`
}
