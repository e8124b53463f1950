package models

import "time"

// Property is a building managed by one manager.
type Property struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	ManagerID string `json:"manager_id"`
}

// DummyProperty is the body for a new property.
type DummyProperty struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// DummyLease assigns lease terms to a tenant. Dates use 2006-01-02.
type DummyLease struct {
	PropertyID    string `json:"property_id" validate:"required,uuid"`
	UnitNumber    string `json:"unit_number" validate:"omitempty,max=20"`
	RentAmount    string `json:"rent_amount" validate:"required,numeric"`
	DepositAmount string `json:"deposit_amount,omitempty" validate:"omitempty,numeric"`
	LeaseStart    string `json:"lease_start" validate:"required,datetime=2006-01-02"`
	LeaseEnd      string `json:"lease_end" validate:"required,datetime=2006-01-02"`
}

// DummyMaintenanceStatus moves a request through its workflow.
type DummyMaintenanceStatus struct {
	Status MaintenanceStatus `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
}

// LeaseDates parses the lease bounds of d.
func (d DummyLease) LeaseDates() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, d.LeaseStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(time.DateOnly, d.LeaseEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
