package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

func newAnalyticsService(vehicles *MockVehicleCollection, drivers *MockDriverCollection, trips *MockTripCollection, maintenance *MockMaintenanceCollection, fuel *MockFuelCollection) *AnalyticsService {
	service := NewAnalyticsService(vehicles, drivers, trips, maintenance, fuel)
	service.now = func() time.Time { return testNow }
	return service
}

func TestFuelEfficiency(t *testing.T) {
	t.Run("rounds to two decimals", func(t *testing.T) {
		efficiency := fuelEfficiency(1000, 300)
		assert.NotNil(t, efficiency)
		assert.Equal(t, 3.33, *efficiency)
	})

	t.Run("nil with zero liters", func(t *testing.T) {
		assert.Nil(t, fuelEfficiency(500, 0))
	})

	t.Run("zero distance with fuel is zero, not nil", func(t *testing.T) {
		efficiency := fuelEfficiency(0, 50)
		assert.NotNil(t, efficiency)
		assert.Equal(t, 0.0, *efficiency)
	})
}

func TestROI(t *testing.T) {
	t.Run("positive return", func(t *testing.T) {
		assert.Equal(t, 50.0, roi(1500, 1000))
	})

	t.Run("negative return", func(t *testing.T) {
		assert.Equal(t, -25.0, roi(750, 1000))
	})

	t.Run("zero cost yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, roi(1500, 0))
	})
}

func TestUtilizationRate(t *testing.T) {
	t.Run("rounds to nearest percent", func(t *testing.T) {
		assert.Equal(t, 33, utilizationRate(1, 3))
		assert.Equal(t, 67, utilizationRate(2, 3))
	})

	t.Run("empty fleet yields zero", func(t *testing.T) {
		assert.Equal(t, 0, utilizationRate(0, 0))
	})

	t.Run("full utilization", func(t *testing.T) {
		assert.Equal(t, 100, utilizationRate(5, 5))
	})
}

func TestAnalyticsService_MonthlyTrends(t *testing.T) {
	t.Run("covers six months across a year boundary", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		drivers := new(MockDriverCollection)
		trips := new(MockTripCollection)
		maintenance := new(MockMaintenanceCollection)
		fuel := new(MockFuelCollection)
		service := newAnalyticsService(vehicles, drivers, trips, maintenance, fuel)
		service.now = func() time.Time { return time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC) }

		start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
		trips.On("MonthlyTotals", mock.Anything, start).Return([]db.MonthlyTripTotals{
			{Month: "2025-12", Trips: 4, Revenue: 2000, Distance: 900},
			{Month: "2026-01", Trips: 2, Revenue: 800, Distance: 300},
		}, nil)
		fuel.On("MonthlyFuelTotals", mock.Anything, start).Return([]db.MonthlyFuelTotals{
			{Month: "2025-12", Cost: 400, Liters: 300},
		}, nil)
		maintenance.On("MonthlyMaintenanceTotals", mock.Anything, start).Return([]db.MonthlyCostTotals{
			{Month: "2026-01", Cost: 150},
		}, nil)

		trends, err := service.MonthlyTrends(context.Background())

		assert.NoError(t, err)
		assert.Len(t, trends, 6)
		months := make([]string, 0, len(trends))
		for _, trend := range trends {
			months = append(months, trend.Month)
		}
		assert.Equal(t, []string{"2025-09", "2025-10", "2025-11", "2025-12", "2026-01", "2026-02"}, months)

		// December carries trips and fuel; net profit nets out the fuel spend.
		december := trends[3]
		assert.Equal(t, int64(4), december.Trips)
		assert.Equal(t, 1600.0, december.NetProfit)
		assert.NotNil(t, december.FuelEfficiency)
		assert.Equal(t, 3.0, *december.FuelEfficiency)

		// January has trips but no fuel; efficiency is undefined.
		january := trends[4]
		assert.Equal(t, int64(2), january.Trips)
		assert.Equal(t, 650.0, january.NetProfit)
		assert.Nil(t, january.FuelEfficiency)

		// Quiet months appear as zero rows.
		assert.Equal(t, int64(0), trends[0].Trips)
		assert.Equal(t, 0.0, trends[0].Revenue)
	})
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	t.Run("assembles the fleet overview", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		drivers := new(MockDriverCollection)
		trips := new(MockTripCollection)
		maintenance := new(MockMaintenanceCollection)
		fuel := new(MockFuelCollection)
		service := newAnalyticsService(vehicles, drivers, trips, maintenance, fuel)

		vehicles.On("CountVehiclesByStatus", mock.Anything).Return(map[models.VehicleStatus]int64{
			models.VehicleAvailable: 2,
			models.VehicleOnTrip:    1,
		}, nil)
		vehicles.On("CountVehiclesByType", mock.Anything).Return(map[models.VehicleType]int64{
			models.VehicleTruck: 2,
			models.VehicleVan:   1,
		}, nil)
		drivers.On("CountDriversByStatus", mock.Anything).Return(map[models.DriverStatus]int64{
			models.DriverAvailable: 3,
			models.DriverOnDuty:    1,
		}, nil)
		drivers.On("CountDriversExpiringBetween", mock.Anything, testNow, testNow.AddDate(0, 0, 30)).
			Return(int64(2), nil)
		trips.On("CountTripsByStatus", mock.Anything, "").Return(map[models.TripStatus]int64{
			models.TripCompleted:  5,
			models.TripDispatched: 1,
		}, nil)
		trips.On("CompletedTotals", mock.Anything, "").Return(&db.CompletedTripTotals{
			TotalTrips:       5,
			TotalDistance:    1200,
			TotalCargoWeight: 7500,
			TotalRevenue:     6000,
		}, nil)
		fuel.On("FuelTotals", mock.Anything, "").Return(&db.FuelTotals{TotalCost: 900, TotalLiters: 600}, nil)
		maintenance.On("MaintenanceTotals", mock.Anything, "").Return(&db.CostTotals{TotalCost: 1100, Count: 3}, nil)
		trips.On("MonthlyTotals", mock.Anything, mock.Anything).Return([]db.MonthlyTripTotals{}, nil)
		fuel.On("MonthlyFuelTotals", mock.Anything, mock.Anything).Return([]db.MonthlyFuelTotals{}, nil)
		maintenance.On("MonthlyMaintenanceTotals", mock.Anything, mock.Anything).Return([]db.MonthlyCostTotals{}, nil)
		trips.On("FindRecentTrips", mock.Anything, "", int64(5)).Return([]models.Trip{}, nil)

		dashboard, err := service.Dashboard(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(3), dashboard.Vehicles.Total)
		assert.Equal(t, int64(4), dashboard.Drivers.Total)
		assert.Equal(t, int64(2), dashboard.Drivers.ExpiringLicenses)
		assert.Equal(t, int64(6), dashboard.Trips.Total)
		assert.Equal(t, 1200.0, dashboard.Trips.TotalDistance)
		assert.Equal(t, 7500.0, dashboard.Trips.TotalCargoWeight)
		assert.Equal(t, 2000.0, dashboard.Costs.TotalCost)
		// 1 of 3 vehicles on a trip.
		assert.Equal(t, 33, dashboard.UtilizationRate)
		// (6000 - 2000) / 2000 * 100
		assert.Equal(t, 200.0, dashboard.ROI)
		assert.Len(t, dashboard.MonthlyTrends, 6)
	})
}

func TestAnalyticsService_FuelEfficiencyReport(t *testing.T) {
	t.Run("ranks best first with unfueled vehicles last", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		trips := new(MockTripCollection)
		fuel := new(MockFuelCollection)
		service := newAnalyticsService(vehicles, new(MockDriverCollection), trips, new(MockMaintenanceCollection), fuel)

		efficient := availableVehicle(1000, 0)
		efficient.Name = "Efficient"
		thirsty := availableVehicle(1000, 0)
		thirsty.Name = "Thirsty"
		unfueled := availableVehicle(1000, 0)
		unfueled.Name = "Unfueled"

		vehicles.On("FindActiveVehicles", mock.Anything).Return([]models.Vehicle{*thirsty, *unfueled, *efficient}, nil)
		trips.On("CompletedTotals", mock.Anything, thirsty.ID.Hex()).Return(&db.CompletedTripTotals{TotalDistance: 500}, nil)
		fuel.On("FuelTotals", mock.Anything, thirsty.ID.Hex()).Return(&db.FuelTotals{TotalLiters: 500}, nil)
		trips.On("CompletedTotals", mock.Anything, unfueled.ID.Hex()).Return(&db.CompletedTripTotals{TotalDistance: 200}, nil)
		fuel.On("FuelTotals", mock.Anything, unfueled.ID.Hex()).Return(&db.FuelTotals{}, nil)
		trips.On("CompletedTotals", mock.Anything, efficient.ID.Hex()).Return(&db.CompletedTripTotals{TotalDistance: 900}, nil)
		fuel.On("FuelTotals", mock.Anything, efficient.ID.Hex()).Return(&db.FuelTotals{TotalLiters: 100}, nil)

		report, err := service.FuelEfficiencyReport(context.Background())

		assert.NoError(t, err)
		assert.Len(t, report, 3)
		assert.Equal(t, "Efficient", report[0].Vehicle.Name)
		assert.Equal(t, 9.0, *report[0].Efficiency)
		assert.Equal(t, "Thirsty", report[1].Vehicle.Name)
		assert.Equal(t, "Unfueled", report[2].Vehicle.Name)
		assert.Nil(t, report[2].Efficiency)
	})
}

func TestAnalyticsService_VehicleAnalytics(t *testing.T) {
	t.Run("aggregates one vehicle", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		trips := new(MockTripCollection)
		maintenance := new(MockMaintenanceCollection)
		fuel := new(MockFuelCollection)
		service := newAnalyticsService(vehicles, new(MockDriverCollection), trips, maintenance, fuel)

		vehicle := availableVehicle(1000, 250)
		id := vehicle.ID.Hex()
		vehicles.On("FindVehicleByID", mock.Anything, id).Return(vehicle, nil)
		trips.On("CountTripsByStatus", mock.Anything, id).Return(map[models.TripStatus]int64{
			models.TripCompleted: 3,
			models.TripCancelled: 1,
		}, nil)
		trips.On("CompletedTotals", mock.Anything, id).Return(&db.CompletedTripTotals{
			TotalTrips:    3,
			TotalDistance: 450,
			TotalRevenue:  1500,
		}, nil)
		fuel.On("FuelTotals", mock.Anything, id).Return(&db.FuelTotals{TotalCost: 200, TotalLiters: 150}, nil)
		maintenance.On("MaintenanceTotals", mock.Anything, id).Return(&db.CostTotals{TotalCost: 300}, nil)
		trips.On("FindRecentTrips", mock.Anything, id, int64(10)).Return([]models.Trip{}, nil)
		maintenance.On("FindRecentMaintenanceLogs", mock.Anything, id, int64(5)).Return([]models.MaintenanceLog{}, nil)
		fuel.On("FindRecentFuelLogs", mock.Anything, id, int64(5)).Return([]models.FuelLog{}, nil)

		analytics, err := service.VehicleAnalytics(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), analytics.TotalTrips)
		assert.Equal(t, 500.0, analytics.TotalCost)
		assert.Equal(t, 1000.0, analytics.NetProfit)
		assert.Equal(t, 3.0, *analytics.FuelEfficiency)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		vehicles := new(MockVehicleCollection)
		service := newAnalyticsService(vehicles, new(MockDriverCollection), new(MockTripCollection), new(MockMaintenanceCollection), new(MockFuelCollection))

		vehicles.On("FindVehicleByID", mock.Anything, "nope").Return(nil, db.ErrNotFound)

		_, err := service.VehicleAnalytics(context.Background(), "nope")

		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
