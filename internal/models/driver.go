package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverStatus tracks a driver's duty state. OnDuty is set and cleared by
// trip dispatch and completion; Suspended is an administrative state.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "Available"
	DriverOnDuty    DriverStatus = "OnDuty"
	DriverSuspended DriverStatus = "Suspended"
)

// Driver represents a fleet driver including license details.
type Driver struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	LicenseCategory   string             `bson:"license_category" json:"licenseCategory"`
	LicenseNumber     string             `bson:"license_number" json:"licenseNumber"`
	LicenseExpiryDate time.Time          `bson:"license_expiry_date" json:"licenseExpiryDate"`
	Status            DriverStatus       `bson:"status" json:"status"`

	// Performance fields are informational only and never gate transitions.
	CompletionRate float64 `bson:"completion_rate,omitempty" json:"completionRate,omitempty"`
	SafetyScore    float64 `bson:"safety_score,omitempty" json:"safetyScore,omitempty"`
	Complaints     int     `bson:"complaints,omitempty" json:"complaints,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidDriverStatus reports whether s is a known driver status.
func IsValidDriverStatus(s DriverStatus) bool {
	switch s {
	case DriverAvailable, DriverOnDuty, DriverSuspended:
		return true
	default:
		return false
	}
}

// LicenseExpired reports whether the driver's license has expired as of now.
func (d *Driver) LicenseExpired(now time.Time) bool {
	return d.LicenseExpiryDate.Before(now)
}

// Deletable reports whether the driver may be removed. Drivers on duty are
// tied to a dispatched trip and cannot be deleted.
func (d *Driver) Deletable() bool {
	return d.Status != DriverOnDuty
}
