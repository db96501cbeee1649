package fleet

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/events"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// MaintenanceService owns the maintenance workflow. Opening a log forces
// the vehicle into the shop; completing or deleting one releases it. Shop
// status is not reference-counted: with two open logs on one vehicle,
// completing either marks the vehicle Available.
type MaintenanceService struct {
	maintenance db.MaintenanceCollection
	vehicles    db.VehicleCollection
	txn         db.Txn
	events      events.Publisher
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(maintenance db.MaintenanceCollection, vehicles db.VehicleCollection, txn db.Txn, publisher events.Publisher) *MaintenanceService {
	return &MaintenanceService{maintenance: maintenance, vehicles: vehicles, txn: txn, events: publisher}
}

// CreateMaintenanceInput carries the fields for opening a maintenance log.
type CreateMaintenanceInput struct {
	VehicleID   string
	Description string
	Cost        float64
	Date        time.Time
}

// Create opens a maintenance log and moves the vehicle into the shop. A
// vehicle in transit cannot be serviced. Forcing InShop is idempotent when
// the vehicle is already there.
func (s *MaintenanceService) Create(ctx context.Context, input CreateMaintenanceInput) (*models.MaintenanceLog, error) {
	if input.Cost < 0 {
		return nil, &ValidationError{Field: "cost", Reason: "cannot be negative"}
	}

	vehicle, err := s.vehicles.FindVehicleByID(ctx, input.VehicleID)
	if err != nil {
		return nil, mapStoreErr(err, "vehicle", input.VehicleID)
	}
	if vehicle.Status == models.VehicleOnTrip {
		return nil, &ConflictError{
			Entity: "vehicle",
			Status: string(vehicle.Status),
			Reason: "cannot create a maintenance log for a vehicle that is currently on a trip",
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	var created *models.MaintenanceLog
	err = s.txn.Run(ctx, func(ctx context.Context) error {
		created, err = s.maintenance.InsertMaintenanceLog(ctx, models.MaintenanceLog{
			VehicleID:   vehicle.ID,
			Description: input.Description,
			Cost:        input.Cost,
			Date:        date,
		})
		if err != nil {
			return err
		}
		return s.vehicles.UpdateVehicleStatus(ctx, input.VehicleID, models.VehicleInShop)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.MaintenanceOpened, created)
	return created, nil
}

// Complete marks the service done and releases the vehicle back to
// Available. The log itself is unchanged; shop status lives on the vehicle.
func (s *MaintenanceService) Complete(ctx context.Context, id string) (*models.Vehicle, error) {
	maintenanceLog, err := s.maintenance.FindMaintenanceLogByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "maintenance log", id)
	}

	vehicleID := maintenanceLog.VehicleID.Hex()
	if err := s.vehicles.UpdateVehicleStatus(ctx, vehicleID, models.VehicleAvailable); err != nil {
		return nil, mapStoreErr(err, "vehicle", vehicleID)
	}

	s.publish(ctx, events.MaintenanceClosed, maintenanceLog)

	vehicle, err := s.vehicles.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, mapStoreErr(err, "vehicle", vehicleID)
	}
	return vehicle, nil
}

// UpdateMaintenanceInput carries partial updates; nil fields stay unchanged.
type UpdateMaintenanceInput struct {
	Description *string
	Cost        *float64
	Date        *time.Time
}

// Update mutates the log's descriptive fields. Vehicle status is untouched.
func (s *MaintenanceService) Update(ctx context.Context, id string, input UpdateMaintenanceInput) (*models.MaintenanceLog, error) {
	maintenanceLog, err := s.maintenance.FindMaintenanceLogByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "maintenance log", id)
	}

	if input.Description != nil {
		maintenanceLog.Description = *input.Description
	}
	if input.Cost != nil {
		if *input.Cost < 0 {
			return nil, &ValidationError{Field: "cost", Reason: "cannot be negative"}
		}
		maintenanceLog.Cost = *input.Cost
	}
	if input.Date != nil {
		maintenanceLog.Date = *input.Date
	}

	updated, err := s.maintenance.UpdateMaintenanceLog(ctx, id, *maintenanceLog)
	if err != nil {
		return nil, mapStoreErr(err, "maintenance log", id)
	}
	return updated, nil
}

// Delete removes the log. If the vehicle is still in the shop it is
// released, matching the completion behavior.
func (s *MaintenanceService) Delete(ctx context.Context, id string) error {
	maintenanceLog, err := s.maintenance.FindMaintenanceLogByID(ctx, id)
	if err != nil {
		return mapStoreErr(err, "maintenance log", id)
	}

	vehicleID := maintenanceLog.VehicleID.Hex()
	err = s.txn.Run(ctx, func(ctx context.Context) error {
		vehicle, err := s.vehicles.FindVehicleByID(ctx, vehicleID)
		if err == nil && vehicle.Status == models.VehicleInShop {
			if err := s.vehicles.UpdateVehicleStatus(ctx, vehicleID, models.VehicleAvailable); err != nil {
				return err
			}
		}
		return s.maintenance.DeleteMaintenanceLog(ctx, id)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.MaintenanceClosed, maintenanceLog)
	return nil
}

// Get returns a maintenance log by id.
func (s *MaintenanceService) Get(ctx context.Context, id string) (*models.MaintenanceLog, error) {
	maintenanceLog, err := s.maintenance.FindMaintenanceLogByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "maintenance log", id)
	}
	return maintenanceLog, nil
}

// List returns maintenance logs matching the filter plus the unpaged total.
func (s *MaintenanceService) List(ctx context.Context, filter db.MaintenanceFilter) ([]models.MaintenanceLog, int64, error) {
	return s.maintenance.FindMaintenanceLogs(ctx, filter)
}

func (s *MaintenanceService) publish(ctx context.Context, kind events.Kind, maintenanceLog *models.MaintenanceLog) {
	err := s.events.Publish(ctx, events.Event{
		Kind:     kind,
		EntityID: maintenanceLog.ID.Hex(),
		Fields:   map[string]string{"vehicle": maintenanceLog.VehicleID.Hex()},
	})
	if err != nil {
		log.WithError(err).Warn("failed to publish maintenance event")
	}
}
