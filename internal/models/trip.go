package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripStatus is the trip lifecycle state. Transitions follow a strict
// directed graph; Completed and Cancelled are terminal.
type TripStatus string

const (
	TripDraft      TripStatus = "Draft"
	TripDispatched TripStatus = "Dispatched"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

// tripTransitions is the allowed-edge table for the trip state machine.
var tripTransitions = map[TripStatus][]TripStatus{
	TripDraft:      {TripDispatched, TripCancelled},
	TripDispatched: {TripCompleted, TripCancelled},
	TripCompleted:  {},
	TripCancelled:  {},
}

// CanTransitionTrip reports whether the trip state machine allows moving
// from one status to another.
func CanTransitionTrip(from, to TripStatus) bool {
	for _, next := range tripTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidTripStatus reports whether s is a known trip status.
func IsValidTripStatus(s TripStatus) bool {
	switch s {
	case TripDraft, TripDispatched, TripCompleted, TripCancelled:
		return true
	default:
		return false
	}
}

// Trip represents a cargo trip referencing one vehicle and one driver.
type Trip struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID     primitive.ObjectID `bson:"vehicle" json:"vehicle"`
	DriverID      primitive.ObjectID `bson:"driver" json:"driver"`
	CargoWeight   float64            `bson:"cargo_weight" json:"cargoWeight"` // in kg
	FromLocation  string             `bson:"from_location" json:"fromLocation"`
	ToLocation    string             `bson:"to_location" json:"toLocation"`
	StartOdometer float64            `bson:"start_odometer" json:"startOdometer"`
	EndOdometer   *float64           `bson:"end_odometer,omitempty" json:"endOdometer,omitempty"`
	Status        TripStatus         `bson:"status" json:"status"`
	Revenue       float64            `bson:"revenue" json:"revenue"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// DistanceTraveled returns endOdometer - startOdometer, or nil while the
// trip has no end reading.
func (t *Trip) DistanceTraveled() *float64 {
	if t.EndOdometer == nil {
		return nil
	}
	d := *t.EndOdometer - t.StartOdometer
	return &d
}
