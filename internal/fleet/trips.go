package fleet

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/events"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// TripService is the orchestrator of the fleet state machine. Trip status
// transitions cascade into vehicle and driver status, and every cascade
// runs as one transactional unit: either the trip, vehicle and driver all
// move, or none of them do.
type TripService struct {
	trips    db.TripCollection
	vehicles db.VehicleCollection
	drivers  db.DriverCollection
	txn      db.Txn
	events   events.Publisher
	now      func() time.Time
}

// NewTripService creates a new trip service.
func NewTripService(trips db.TripCollection, vehicles db.VehicleCollection, drivers db.DriverCollection, txn db.Txn, publisher events.Publisher) *TripService {
	return &TripService{
		trips:    trips,
		vehicles: vehicles,
		drivers:  drivers,
		txn:      txn,
		events:   publisher,
		now:      time.Now,
	}
}

// CreateTripInput carries the fields for trip creation.
type CreateTripInput struct {
	VehicleID     string
	DriverID      string
	CargoWeight   float64
	FromLocation  string
	ToLocation    string
	StartOdometer float64
	Revenue       float64
}

// Create validates and persists a trip in Draft status. Validation order,
// first failure wins: vehicle exists, driver exists, values non-negative,
// cargo fits capacity, vehicle available, driver available, license not
// expired. Draft trips do not reserve the vehicle or driver; reservation
// happens at dispatch.
func (s *TripService) Create(ctx context.Context, input CreateTripInput) (*models.Trip, error) {
	vehicle, err := s.vehicles.FindVehicleByID(ctx, input.VehicleID)
	if err != nil {
		return nil, mapStoreErr(err, "vehicle", input.VehicleID)
	}
	driver, err := s.drivers.FindDriverByID(ctx, input.DriverID)
	if err != nil {
		return nil, mapStoreErr(err, "driver", input.DriverID)
	}

	if input.CargoWeight < 0 {
		return nil, &ValidationError{Field: "cargoWeight", Reason: "cannot be negative"}
	}
	if input.StartOdometer < 0 {
		return nil, &ValidationError{Field: "startOdometer", Reason: "cannot be negative"}
	}
	if input.Revenue < 0 {
		return nil, &ValidationError{Field: "revenue", Reason: "cannot be negative"}
	}

	if input.CargoWeight > vehicle.MaxCapacity {
		return nil, &CapacityExceededError{CargoWeight: input.CargoWeight, MaxCapacity: vehicle.MaxCapacity}
	}
	if vehicle.Status != models.VehicleAvailable {
		return nil, &UnavailableError{Entity: "vehicle", Status: string(vehicle.Status)}
	}
	if driver.Status != models.DriverAvailable {
		return nil, &UnavailableError{Entity: "driver", Status: string(driver.Status)}
	}
	if driver.LicenseExpired(s.now()) {
		return nil, &ExpiredLicenseError{ExpiredOn: driver.LicenseExpiryDate}
	}

	return s.trips.InsertTrip(ctx, models.Trip{
		VehicleID:     vehicle.ID,
		DriverID:      driver.ID,
		CargoWeight:   input.CargoWeight,
		FromLocation:  input.FromLocation,
		ToLocation:    input.ToLocation,
		StartOdometer: input.StartOdometer,
		Revenue:       input.Revenue,
		Status:        models.TripDraft,
	})
}

// Get returns a trip by id.
func (s *TripService) Get(ctx context.Context, id string) (*models.Trip, error) {
	trip, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "trip", id)
	}
	return trip, nil
}

// ListTripsInput narrows trip listings.
type ListTripsInput struct {
	Status      models.TripStatus
	VehicleID   string
	DriverID    string
	VehicleType models.VehicleType
	Page        int
	Limit       int
}

// List returns trips matching the filter plus the unpaged total. Filtering
// by vehicle type resolves the matching vehicles first.
func (s *TripService) List(ctx context.Context, input ListTripsInput) ([]models.Trip, int64, error) {
	filter := db.TripFilter{
		Status:    input.Status,
		VehicleID: input.VehicleID,
		DriverID:  input.DriverID,
		Page:      input.Page,
		Limit:     input.Limit,
	}
	if input.VehicleType != "" {
		vehicles, _, err := s.vehicles.FindVehicles(ctx, db.VehicleFilter{VehicleType: input.VehicleType})
		if err != nil {
			return nil, 0, err
		}
		filter.VehicleIDs = make([]primitive.ObjectID, 0, len(vehicles))
		for _, v := range vehicles {
			filter.VehicleIDs = append(filter.VehicleIDs, v.ID)
		}
	}
	return s.trips.FindTrips(ctx, filter)
}

// UpdateStatus drives the trip state machine. Allowed edges:
// Draft to Dispatched or Cancelled, Dispatched to Completed or Cancelled.
// Completed and Cancelled are terminal.
func (s *TripService) UpdateStatus(ctx context.Context, id string, next models.TripStatus, endOdometer *float64) (*models.Trip, error) {
	if !models.IsValidTripStatus(next) {
		return nil, &ValidationError{Field: "status", Reason: "must be one of: Draft, Dispatched, Completed, Cancelled"}
	}

	trip, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "trip", id)
	}
	previous := trip.Status

	if !models.CanTransitionTrip(previous, next) {
		return nil, &InvalidTransitionError{From: previous, To: next}
	}

	switch next {
	case models.TripDispatched:
		err = s.dispatch(ctx, trip)
	case models.TripCompleted:
		err = s.complete(ctx, trip, endOdometer)
	case models.TripCancelled:
		err = s.cancel(ctx, trip, previous)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, trip, next)

	updated, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "trip", id)
	}
	return updated, nil
}

// dispatch re-validates availability and license (state may have drifted
// since the Draft was created) and then reserves vehicle and driver. The
// reservation writes are conditional on the status still being Available,
// so a concurrent dispatch losing the race fails instead of double-booking.
func (s *TripService) dispatch(ctx context.Context, trip *models.Trip) error {
	vehicleID := trip.VehicleID.Hex()
	driverID := trip.DriverID.Hex()

	vehicle, err := s.vehicles.FindVehicleByID(ctx, vehicleID)
	if err != nil {
		return mapStoreErr(err, "vehicle", vehicleID)
	}
	driver, err := s.drivers.FindDriverByID(ctx, driverID)
	if err != nil {
		return mapStoreErr(err, "driver", driverID)
	}

	if vehicle.Status != models.VehicleAvailable {
		return &UnavailableError{Entity: "vehicle", Status: string(vehicle.Status)}
	}
	if driver.Status != models.DriverAvailable {
		return &UnavailableError{Entity: "driver", Status: string(driver.Status)}
	}
	if driver.LicenseExpired(s.now()) {
		return &ExpiredLicenseError{ExpiredOn: driver.LicenseExpiryDate}
	}

	return s.txn.Run(ctx, func(ctx context.Context) error {
		ok, err := s.vehicles.UpdateVehicleStatusIf(ctx, vehicleID, models.VehicleAvailable, models.VehicleOnTrip)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race; re-read so the error names the status the
			// winner left behind, not the one we failed to set.
			current, err := s.vehicles.FindVehicleByID(ctx, vehicleID)
			if err != nil {
				return mapStoreErr(err, "vehicle", vehicleID)
			}
			return &UnavailableError{Entity: "vehicle", Status: string(current.Status)}
		}
		ok, err = s.drivers.UpdateDriverStatusIf(ctx, driverID, models.DriverAvailable, models.DriverOnDuty)
		if err != nil {
			return err
		}
		if !ok {
			current, err := s.drivers.FindDriverByID(ctx, driverID)
			if err != nil {
				return mapStoreErr(err, "driver", driverID)
			}
			return &UnavailableError{Entity: "driver", Status: string(current.Status)}
		}
		return s.trips.UpdateTripStatus(ctx, trip.ID.Hex(), models.TripDispatched, nil)
	})
}

// complete records the end odometer and releases vehicle and driver. The
// vehicle odometer advances to the trip's end reading.
func (s *TripService) complete(ctx context.Context, trip *models.Trip, endOdometer *float64) error {
	if endOdometer == nil {
		return &MissingFieldError{Field: "endOdometer"}
	}
	if *endOdometer < trip.StartOdometer {
		return &ValidationError{Field: "endOdometer", Reason: "must be greater than or equal to start odometer"}
	}

	return s.txn.Run(ctx, func(ctx context.Context) error {
		if err := s.trips.UpdateTripStatus(ctx, trip.ID.Hex(), models.TripCompleted, endOdometer); err != nil {
			return err
		}
		if err := s.vehicles.CompleteVehicleTrip(ctx, trip.VehicleID.Hex(), *endOdometer); err != nil {
			return err
		}
		return s.drivers.UpdateDriverStatus(ctx, trip.DriverID.Hex(), models.DriverAvailable)
	})
}

// cancel marks the trip cancelled. Vehicle and driver are released only if
// the trip had been dispatched; a Draft never reserved them.
func (s *TripService) cancel(ctx context.Context, trip *models.Trip, previous models.TripStatus) error {
	return s.txn.Run(ctx, func(ctx context.Context) error {
		if err := s.trips.UpdateTripStatus(ctx, trip.ID.Hex(), models.TripCancelled, nil); err != nil {
			return err
		}
		if previous != models.TripDispatched {
			return nil
		}
		if err := s.vehicles.UpdateVehicleStatus(ctx, trip.VehicleID.Hex(), models.VehicleAvailable); err != nil {
			return err
		}
		return s.drivers.UpdateDriverStatus(ctx, trip.DriverID.Hex(), models.DriverAvailable)
	})
}

func (s *TripService) publish(ctx context.Context, trip *models.Trip, status models.TripStatus) {
	kind := map[models.TripStatus]events.Kind{
		models.TripDispatched: events.TripDispatched,
		models.TripCompleted:  events.TripCompleted,
		models.TripCancelled:  events.TripCancelled,
	}[status]
	if kind == "" {
		return
	}
	err := s.events.Publish(ctx, events.Event{
		Kind:     kind,
		EntityID: trip.ID.Hex(),
		Fields: map[string]string{
			"vehicle": trip.VehicleID.Hex(),
			"driver":  trip.DriverID.Hex(),
		},
	})
	if err != nil {
		log.WithError(err).Warn("failed to publish trip event")
	}
}

func mapStoreErr(err error, entity, id string) error {
	if errors.Is(err, db.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
