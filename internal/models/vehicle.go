package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStatus tracks where a vehicle is in its operational lifecycle.
// Transitions are driven by trip and maintenance workflows, not set freely.
type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "Available"
	VehicleOnTrip    VehicleStatus = "OnTrip"
	VehicleInShop    VehicleStatus = "InShop"
	VehicleRetired   VehicleStatus = "Retired"
)

// VehicleType classifies vehicles by cargo class.
type VehicleType string

const (
	VehicleTruck VehicleType = "Truck"
	VehicleVan   VehicleType = "Van"
	VehicleBike  VehicleType = "Bike"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	LicensePlate string             `bson:"license_plate" json:"licensePlate"`
	VehicleType  VehicleType        `bson:"vehicle_type" json:"vehicleType"`
	MaxCapacity  float64            `bson:"max_capacity" json:"maxCapacity"` // in kg
	Odometer     float64            `bson:"odometer" json:"odometer"`       // in km
	Status       VehicleStatus      `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsValidVehicleStatus reports whether s is a known vehicle status.
func IsValidVehicleStatus(s VehicleStatus) bool {
	switch s {
	case VehicleAvailable, VehicleOnTrip, VehicleInShop, VehicleRetired:
		return true
	default:
		return false
	}
}

// IsValidVehicleType reports whether t is a known vehicle type.
func IsValidVehicleType(t VehicleType) bool {
	switch t {
	case VehicleTruck, VehicleVan, VehicleBike:
		return true
	default:
		return false
	}
}

// NormalizePlate canonicalizes a license plate for uniqueness checks.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Deletable reports whether the vehicle may be removed from the fleet.
// Vehicles on a trip or in the shop must be released first.
func (v *Vehicle) Deletable() bool {
	return v.Status != VehicleOnTrip && v.Status != VehicleInShop
}
