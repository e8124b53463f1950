package models

import "time"

// Priority of a maintenance request.
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityEmergency Priority = "emergency"
)

// Rank orders priorities from low (1) to emergency (4); unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityEmergency:
		return 4
	default:
		return 0
	}
}

// MaintenanceStatus is the workflow state of a request.
type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "open"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

// IsOpen reports whether the request still needs work.
func (s MaintenanceStatus) IsOpen() bool {
	return s == MaintenanceOpen || s == MaintenanceInProgress
}

// MaintenanceRequest is a repair ticket. PropertyName and TenantName are
// resolved by the storage layer for display and search.
type MaintenanceRequest struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	PropertyID   string            `json:"property_id"`
	PropertyName string            `json:"property_name,omitempty"`
	TenantID     string            `json:"tenant_id"`
	TenantName   string            `json:"tenant_name,omitempty"`
	UnitNumber   string            `json:"unit_number,omitempty"`
	Priority     Priority          `json:"priority"`
	Status       MaintenanceStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// DummyMaintenanceRequest is the validated body for a new request.
type DummyMaintenanceRequest struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"required,max=2000"`
	Priority    Priority `json:"priority" validate:"required,oneof=low medium high emergency"`
	PropertyID  string   `json:"property_id" validate:"required,uuid"`
	TenantID    string   `json:"tenant_id,omitempty" validate:"omitempty,uuid"`
	UnitNumber  string   `json:"unit_number,omitempty" validate:"omitempty,max=20"`
}

// MaintenanceSummary feeds the dashboard cards.
type MaintenanceSummary struct {
	Total         int `json:"total"`
	Open          int `json:"open"`
	InProgress    int `json:"in_progress"`
	Completed     int `json:"completed"`
	EmergencyOpen int `json:"emergency_open"`
}
