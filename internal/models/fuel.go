package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelLog records a fuel purchase for a vehicle. Pure record with no
// cascading effects; consumed only by analytics.
type FuelLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID primitive.ObjectID `bson:"vehicle" json:"vehicle"`
	Liters    float64            `bson:"liters" json:"liters"`
	Cost      float64            `bson:"cost" json:"cost"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
