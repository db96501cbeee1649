package fleet

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/events"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// MockVehicleCollection is a mock implementation of db.VehicleCollection
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (*models.Vehicle, error) {
	args := m.Called(ctx, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicles(ctx context.Context, filter db.VehicleFilter) ([]models.Vehicle, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleCollection) FindActiveVehicles(ctx context.Context) ([]models.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) (*models.Vehicle, error) {
	args := m.Called(ctx, id, vehicle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicleStatus(ctx context.Context, id string, status models.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockVehicleCollection) UpdateVehicleStatusIf(ctx context.Context, id string, from, to models.VehicleStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockVehicleCollection) CompleteVehicleTrip(ctx context.Context, id string, odometer float64) error {
	args := m.Called(ctx, id, odometer)
	return args.Error(0)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleCollection) CountVehiclesByStatus(ctx context.Context) (map[models.VehicleStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.VehicleStatus]int64), args.Error(1)
}

func (m *MockVehicleCollection) CountVehiclesByType(ctx context.Context) (map[models.VehicleType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.VehicleType]int64), args.Error(1)
}

// MockDriverCollection is a mock implementation of db.DriverCollection
type MockDriverCollection struct {
	mock.Mock
}

func (m *MockDriverCollection) InsertDriver(ctx context.Context, driver models.Driver) (*models.Driver, error) {
	args := m.Called(ctx, driver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) FindDriverByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Driver, error) {
	args := m.Called(ctx, licenseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) FindDrivers(ctx context.Context, filter db.DriverFilter) ([]models.Driver, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Driver), args.Get(1).(int64), args.Error(2)
}

func (m *MockDriverCollection) UpdateDriver(ctx context.Context, id string, driver models.Driver) (*models.Driver, error) {
	args := m.Called(ctx, id, driver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) UpdateDriverStatus(ctx context.Context, id string, status models.DriverStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockDriverCollection) UpdateDriverStatusIf(ctx context.Context, id string, from, to models.DriverStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockDriverCollection) DeleteDriver(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverCollection) CountDriversByStatus(ctx context.Context) (map[models.DriverStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.DriverStatus]int64), args.Error(1)
}

func (m *MockDriverCollection) CountDriversExpiringBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDriverCollection) FindDriversExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Driver, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Driver), args.Error(1)
}

// MockTripCollection is a mock implementation of db.TripCollection
type MockTripCollection struct {
	mock.Mock
}

func (m *MockTripCollection) InsertTrip(ctx context.Context, trip models.Trip) (*models.Trip, error) {
	args := m.Called(ctx, trip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindTrips(ctx context.Context, filter db.TripFilter) ([]models.Trip, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Trip), args.Get(1).(int64), args.Error(2)
}

func (m *MockTripCollection) FindRecentTrips(ctx context.Context, vehicleID string, limit int64) ([]models.Trip, error) {
	args := m.Called(ctx, vehicleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Trip), args.Error(1)
}

func (m *MockTripCollection) UpdateTripStatus(ctx context.Context, id string, status models.TripStatus, endOdometer *float64) error {
	args := m.Called(ctx, id, status, endOdometer)
	return args.Error(0)
}

func (m *MockTripCollection) CountTripsByStatus(ctx context.Context, vehicleID string) (map[models.TripStatus]int64, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.TripStatus]int64), args.Error(1)
}

func (m *MockTripCollection) CompletedTotals(ctx context.Context, vehicleID string) (*db.CompletedTripTotals, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.CompletedTripTotals), args.Error(1)
}

func (m *MockTripCollection) MonthlyTotals(ctx context.Context, since time.Time) ([]db.MonthlyTripTotals, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.MonthlyTripTotals), args.Error(1)
}

// MockMaintenanceCollection is a mock implementation of db.MaintenanceCollection
type MockMaintenanceCollection struct {
	mock.Mock
}

func (m *MockMaintenanceCollection) InsertMaintenanceLog(ctx context.Context, log models.MaintenanceLog) (*models.MaintenanceLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceLog), args.Error(1)
}

func (m *MockMaintenanceCollection) FindMaintenanceLogByID(ctx context.Context, id string) (*models.MaintenanceLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceLog), args.Error(1)
}

func (m *MockMaintenanceCollection) FindMaintenanceLogs(ctx context.Context, filter db.MaintenanceFilter) ([]models.MaintenanceLog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.MaintenanceLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockMaintenanceCollection) FindRecentMaintenanceLogs(ctx context.Context, vehicleID string, limit int64) ([]models.MaintenanceLog, error) {
	args := m.Called(ctx, vehicleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceLog), args.Error(1)
}

func (m *MockMaintenanceCollection) UpdateMaintenanceLog(ctx context.Context, id string, log models.MaintenanceLog) (*models.MaintenanceLog, error) {
	args := m.Called(ctx, id, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceLog), args.Error(1)
}

func (m *MockMaintenanceCollection) DeleteMaintenanceLog(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMaintenanceCollection) MaintenanceTotals(ctx context.Context, vehicleID string) (*db.CostTotals, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.CostTotals), args.Error(1)
}

func (m *MockMaintenanceCollection) MonthlyMaintenanceTotals(ctx context.Context, since time.Time) ([]db.MonthlyCostTotals, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.MonthlyCostTotals), args.Error(1)
}

// MockFuelCollection is a mock implementation of db.FuelCollection
type MockFuelCollection struct {
	mock.Mock
}

func (m *MockFuelCollection) InsertFuelLog(ctx context.Context, log models.FuelLog) (*models.FuelLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelLog), args.Error(1)
}

func (m *MockFuelCollection) FindFuelLogByID(ctx context.Context, id string) (*models.FuelLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FuelLog), args.Error(1)
}

func (m *MockFuelCollection) FindFuelLogs(ctx context.Context, filter db.FuelFilter) ([]models.FuelLog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.FuelLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockFuelCollection) FindRecentFuelLogs(ctx context.Context, vehicleID string, limit int64) ([]models.FuelLog, error) {
	args := m.Called(ctx, vehicleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FuelLog), args.Error(1)
}

func (m *MockFuelCollection) FuelTotals(ctx context.Context, vehicleID string) (*db.FuelTotals, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.FuelTotals), args.Error(1)
}

func (m *MockFuelCollection) MonthlyFuelTotals(ctx context.Context, since time.Time) ([]db.MonthlyFuelTotals, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.MonthlyFuelTotals), args.Error(1)
}

// MockPublisher records published events.
type MockPublisher struct {
	Events []events.Event
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.Events = append(m.Events, event)
	return nil
}
