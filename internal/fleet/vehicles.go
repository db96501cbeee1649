package fleet

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/events"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// VehicleService owns vehicle registration and the administrative side of
// the vehicle lifecycle. Trip and maintenance workflows drive the status
// cascades; this service only guards direct mutations.
type VehicleService struct {
	vehicles db.VehicleCollection
	events   events.Publisher
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(vehicles db.VehicleCollection, publisher events.Publisher) *VehicleService {
	return &VehicleService{vehicles: vehicles, events: publisher}
}

// CreateVehicleInput carries the fields for vehicle registration.
type CreateVehicleInput struct {
	Name         string
	LicensePlate string
	VehicleType  models.VehicleType
	MaxCapacity  float64
	Odometer     float64
	Status       models.VehicleStatus
}

// Create registers a vehicle. The license plate is case-normalized and
// must be unique across the fleet.
func (s *VehicleService) Create(ctx context.Context, input CreateVehicleInput) (*models.Vehicle, error) {
	if !models.IsValidVehicleType(input.VehicleType) {
		return nil, &ValidationError{Field: "vehicleType", Reason: "must be one of: Truck, Van, Bike"}
	}
	if input.MaxCapacity < 0 {
		return nil, &ValidationError{Field: "maxCapacity", Reason: "cannot be negative"}
	}
	if input.Odometer < 0 {
		return nil, &ValidationError{Field: "odometer", Reason: "cannot be negative"}
	}
	status := input.Status
	if status == "" {
		status = models.VehicleAvailable
	}
	if !models.IsValidVehicleStatus(status) {
		return nil, &ValidationError{Field: "status", Reason: "must be one of: Available, OnTrip, InShop, Retired"}
	}

	plate := models.NormalizePlate(input.LicensePlate)
	if _, err := s.vehicles.FindVehicleByPlate(ctx, plate); err == nil {
		return nil, &ValidationError{Field: "licensePlate", Reason: "vehicle with this license plate already exists"}
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	return s.vehicles.InsertVehicle(ctx, models.Vehicle{
		Name:         input.Name,
		LicensePlate: plate,
		VehicleType:  input.VehicleType,
		MaxCapacity:  input.MaxCapacity,
		Odometer:     input.Odometer,
		Status:       status,
	})
}

// UpdateVehicleInput carries partial updates; nil fields stay unchanged.
type UpdateVehicleInput struct {
	Name         *string
	LicensePlate *string
	VehicleType  *models.VehicleType
	MaxCapacity  *float64
	Odometer     *float64
	Status       *models.VehicleStatus
}

// Update applies an administrative update. Status set here is the explicit
// override path; workflow transitions go through the trip and maintenance
// services.
func (s *VehicleService) Update(ctx context.Context, id string, input UpdateVehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindVehicleByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}

	if input.LicensePlate != nil {
		plate := models.NormalizePlate(*input.LicensePlate)
		if plate != vehicle.LicensePlate {
			existing, err := s.vehicles.FindVehicleByPlate(ctx, plate)
			if err == nil && existing.ID != vehicle.ID {
				return nil, &ValidationError{Field: "licensePlate", Reason: "another vehicle with this license plate already exists"}
			}
			if err != nil && !errors.Is(err, db.ErrNotFound) {
				return nil, err
			}
		}
		vehicle.LicensePlate = plate
	}
	if input.Name != nil {
		vehicle.Name = *input.Name
	}
	if input.VehicleType != nil {
		if !models.IsValidVehicleType(*input.VehicleType) {
			return nil, &ValidationError{Field: "vehicleType", Reason: "must be one of: Truck, Van, Bike"}
		}
		vehicle.VehicleType = *input.VehicleType
	}
	if input.MaxCapacity != nil {
		if *input.MaxCapacity < 0 {
			return nil, &ValidationError{Field: "maxCapacity", Reason: "cannot be negative"}
		}
		vehicle.MaxCapacity = *input.MaxCapacity
	}
	if input.Odometer != nil {
		if *input.Odometer < 0 {
			return nil, &ValidationError{Field: "odometer", Reason: "cannot be negative"}
		}
		vehicle.Odometer = *input.Odometer
	}

	statusChanged := false
	if input.Status != nil {
		if !models.IsValidVehicleStatus(*input.Status) {
			return nil, &ValidationError{Field: "status", Reason: "must be one of: Available, OnTrip, InShop, Retired"}
		}
		statusChanged = vehicle.Status != *input.Status
		vehicle.Status = *input.Status
	}

	updated, err := s.vehicles.UpdateVehicle(ctx, id, *vehicle)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	if statusChanged {
		s.publishStatus(ctx, updated)
	}
	return updated, nil
}

// Get returns a vehicle by id.
func (s *VehicleService) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindVehicleByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	return vehicle, nil
}

// List returns vehicles matching the filter plus the unpaged total.
func (s *VehicleService) List(ctx context.Context, filter db.VehicleFilter) ([]models.Vehicle, int64, error) {
	return s.vehicles.FindVehicles(ctx, filter)
}

// Delete removes a vehicle. Vehicles on a trip or in the shop are in use
// and cannot be deleted.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	vehicle, err := s.vehicles.FindVehicleByID(ctx, id)
	if err != nil {
		return s.mapErr(err, id)
	}
	if !vehicle.Deletable() {
		return &ConflictError{
			Entity: "vehicle",
			Status: string(vehicle.Status),
			Reason: "vehicle must be Available or Retired to be deleted",
		}
	}
	if err := s.vehicles.DeleteVehicle(ctx, id); err != nil {
		return s.mapErr(err, id)
	}
	return nil
}

func (s *VehicleService) publishStatus(ctx context.Context, vehicle *models.Vehicle) {
	err := s.events.Publish(ctx, events.Event{
		Kind:     events.VehicleStatusChanged,
		EntityID: vehicle.ID.Hex(),
		Fields:   map[string]string{"status": string(vehicle.Status)},
	})
	if err != nil {
		log.WithError(err).Warn("failed to publish vehicle status event")
	}
}

func (s *VehicleService) mapErr(err error, id string) error {
	if errors.Is(err, db.ErrNotFound) {
		return &NotFoundError{Entity: "vehicle", ID: id}
	}
	return err
}
