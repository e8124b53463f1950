package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserType separates the two portals.
type UserType string

const (
	UserManager UserType = "manager"
	UserTenant  UserType = "tenant"
)

// Profile is a portal account. Tenant-only fields stay nil for managers.
type Profile struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	FullName      string           `json:"full_name,omitempty"`
	AvatarURL     string           `json:"avatar_url,omitempty"`
	UserType      UserType         `json:"user_type"`
	PropertyID    *string          `json:"property_id,omitempty"`
	UnitNumber    string           `json:"unit_number,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	RentAmount    *decimal.Decimal `json:"rent_amount,omitempty"`
	DepositAmount *decimal.Decimal `json:"deposit_amount,omitempty"`
	Balance       decimal.Decimal  `json:"balance"`
	LeaseStart    *time.Time       `json:"lease_start,omitempty"`
	LeaseEnd      *time.Time       `json:"lease_end,omitempty"`
	Status        string           `json:"status,omitempty"`
	ManagerID     *string          `json:"manager_id,omitempty"`
	PasswordHash  string           `json:"-"`
}

// Lease returns the lease terms recorded on the profile.
func (p *Profile) Lease() Lease {
	return Lease{
		Start: p.LeaseStart,
		End:   p.LeaseEnd,
		Rent:  p.RentAmount,
	}
}

// DummyRegister is the sign-up request body.
type DummyRegister struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	UserType UserType `json:"user_type" validate:"required,oneof=manager tenant"`
	FullName string   `json:"full_name,omitempty" validate:"omitempty,max=120"`
}

// DummyLogin is the sign-in request body.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
