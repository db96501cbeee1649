package fleet

import (
	"context"
	"time"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// FuelService records fuel purchases. Fuel logs have no cascading effects;
// they only feed analytics.
type FuelService struct {
	fuel     db.FuelCollection
	vehicles db.VehicleCollection
}

// NewFuelService creates a new fuel service.
func NewFuelService(fuel db.FuelCollection, vehicles db.VehicleCollection) *FuelService {
	return &FuelService{fuel: fuel, vehicles: vehicles}
}

// CreateFuelInput carries the fields for a fuel purchase record.
type CreateFuelInput struct {
	VehicleID string
	Liters    float64
	Cost      float64
	Date      time.Time
}

// Create records a fuel purchase against an existing vehicle.
func (s *FuelService) Create(ctx context.Context, input CreateFuelInput) (*models.FuelLog, error) {
	if input.Liters < 0.1 {
		return nil, &ValidationError{Field: "liters", Reason: "must be at least 0.1"}
	}
	if input.Cost < 0 {
		return nil, &ValidationError{Field: "cost", Reason: "cannot be negative"}
	}

	vehicle, err := s.vehicles.FindVehicleByID(ctx, input.VehicleID)
	if err != nil {
		return nil, mapStoreErr(err, "vehicle", input.VehicleID)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	return s.fuel.InsertFuelLog(ctx, models.FuelLog{
		VehicleID: vehicle.ID,
		Liters:    input.Liters,
		Cost:      input.Cost,
		Date:      date,
	})
}

// Get returns a fuel log by id.
func (s *FuelService) Get(ctx context.Context, id string) (*models.FuelLog, error) {
	fuelLog, err := s.fuel.FindFuelLogByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "fuel log", id)
	}
	return fuelLog, nil
}

// List returns fuel logs matching the filter plus the unpaged total.
func (s *FuelService) List(ctx context.Context, filter db.FuelFilter) ([]models.FuelLog, int64, error) {
	return s.fuel.FindFuelLogs(ctx, filter)
}
