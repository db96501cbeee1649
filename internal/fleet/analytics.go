package fleet

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// AnalyticsService computes fleet-wide and per-vehicle reports from the
// aggregation results of the underlying collections. All metrics are
// derived; nothing here writes.
type AnalyticsService struct {
	vehicles    db.VehicleCollection
	drivers     db.DriverCollection
	trips       db.TripCollection
	maintenance db.MaintenanceCollection
	fuel        db.FuelCollection
	now         func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(vehicles db.VehicleCollection, drivers db.DriverCollection, trips db.TripCollection, maintenance db.MaintenanceCollection, fuel db.FuelCollection) *AnalyticsService {
	return &AnalyticsService{
		vehicles:    vehicles,
		drivers:     drivers,
		trips:       trips,
		maintenance: maintenance,
		fuel:        fuel,
		now:         time.Now,
	}
}

// expiryWindowDays is the horizon for the dashboard's expiring-license
// count, matching the drivers/expiring default.
const expiryWindowDays = 30

// trendMonths is the length of the monthly trend window, current month
// included.
const trendMonths = 6

// VehicleStats breaks the fleet down by status and type.
type VehicleStats struct {
	Total    int64                          `json:"total"`
	ByStatus map[models.VehicleStatus]int64 `json:"byStatus"`
	ByType   map[models.VehicleType]int64   `json:"byType"`
}

// DriverStats breaks drivers down by status and flags expiring licenses.
type DriverStats struct {
	Total            int64                         `json:"total"`
	ByStatus         map[models.DriverStatus]int64 `json:"byStatus"`
	ExpiringLicenses int64                         `json:"expiringLicenses"`
}

// TripStats breaks trips down by status and carries the completed totals.
type TripStats struct {
	Total            int64                       `json:"total"`
	ByStatus         map[models.TripStatus]int64 `json:"byStatus"`
	TotalDistance    float64                     `json:"totalDistance"`
	TotalCargoWeight float64                     `json:"totalCargoWeight"`
	TotalRevenue     float64                     `json:"totalRevenue"`
}

// CostStats sums operational spend across fuel and maintenance.
type CostStats struct {
	FuelCost        float64 `json:"fuelCost"`
	FuelLiters      float64 `json:"fuelLiters"`
	MaintenanceCost float64 `json:"maintenanceCost"`
	TotalCost       float64 `json:"totalCost"`
}

// MonthlyTrend is one row of the trailing monthly report. Month is an
// absolute "YYYY-MM" key so December and January of different years never
// collapse into one bucket. FuelEfficiency is nil for months without fuel.
type MonthlyTrend struct {
	Month           string   `json:"month"`
	Trips           int64    `json:"trips"`
	Revenue         float64  `json:"revenue"`
	Distance        float64  `json:"distance"`
	FuelCost        float64  `json:"fuelCost"`
	FuelLiters      float64  `json:"fuelLiters"`
	MaintenanceCost float64  `json:"maintenanceCost"`
	NetProfit       float64  `json:"netProfit"`
	FuelEfficiency  *float64 `json:"fuelEfficiency"`
}

// Dashboard is the fleet-wide overview.
type Dashboard struct {
	Vehicles        VehicleStats   `json:"vehicles"`
	Drivers         DriverStats    `json:"drivers"`
	Trips           TripStats      `json:"trips"`
	Costs           CostStats      `json:"costs"`
	UtilizationRate int            `json:"utilizationRate"`
	ROI             float64        `json:"roi"`
	MonthlyTrends   []MonthlyTrend `json:"monthlyTrends"`
	RecentTrips     []models.Trip  `json:"recentTrips"`
}

// Dashboard assembles the fleet overview: counts by status and type,
// expiring licenses over the next 30 days, completed-trip totals, spend,
// utilization, ROI and the trailing six-month trend.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	vehiclesByStatus, err := s.vehicles.CountVehiclesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	vehiclesByType, err := s.vehicles.CountVehiclesByType(ctx)
	if err != nil {
		return nil, err
	}
	driversByStatus, err := s.drivers.CountDriversByStatus(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	expiring, err := s.drivers.CountDriversExpiringBetween(ctx, now, now.AddDate(0, 0, expiryWindowDays))
	if err != nil {
		return nil, err
	}
	tripsByStatus, err := s.trips.CountTripsByStatus(ctx, "")
	if err != nil {
		return nil, err
	}
	completed, err := s.trips.CompletedTotals(ctx, "")
	if err != nil {
		return nil, err
	}
	fuelTotals, err := s.fuel.FuelTotals(ctx, "")
	if err != nil {
		return nil, err
	}
	maintenanceTotals, err := s.maintenance.MaintenanceTotals(ctx, "")
	if err != nil {
		return nil, err
	}
	trends, err := s.MonthlyTrends(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.trips.FindRecentTrips(ctx, "", 5)
	if err != nil {
		return nil, err
	}

	totalVehicles := sumCounts(vehiclesByStatus)
	totalCost := fuelTotals.TotalCost + maintenanceTotals.TotalCost

	return &Dashboard{
		Vehicles: VehicleStats{
			Total:    totalVehicles,
			ByStatus: vehiclesByStatus,
			ByType:   vehiclesByType,
		},
		Drivers: DriverStats{
			Total:            sumCounts(driversByStatus),
			ByStatus:         driversByStatus,
			ExpiringLicenses: expiring,
		},
		Trips: TripStats{
			Total:            sumCounts(tripsByStatus),
			ByStatus:         tripsByStatus,
			TotalDistance:    completed.TotalDistance,
			TotalCargoWeight: completed.TotalCargoWeight,
			TotalRevenue:     completed.TotalRevenue,
		},
		Costs: CostStats{
			FuelCost:        fuelTotals.TotalCost,
			FuelLiters:      fuelTotals.TotalLiters,
			MaintenanceCost: maintenanceTotals.TotalCost,
			TotalCost:       totalCost,
		},
		UtilizationRate: utilizationRate(vehiclesByStatus[models.VehicleOnTrip], totalVehicles),
		ROI:             roi(completed.TotalRevenue, totalCost),
		MonthlyTrends:   trends,
		RecentTrips:     recent,
	}, nil
}

// VehicleAnalytics is the per-vehicle report.
type VehicleAnalytics struct {
	Vehicle           models.Vehicle              `json:"vehicle"`
	TripsByStatus     map[models.TripStatus]int64 `json:"tripsByStatus"`
	TotalTrips        int64                       `json:"totalTrips"`
	TotalDistance     float64                     `json:"totalDistance"`
	TotalCargoWeight  float64                     `json:"totalCargoWeight"`
	AvgCargoWeight    float64                     `json:"avgCargoWeight"`
	TotalRevenue      float64                     `json:"totalRevenue"`
	FuelCost          float64                     `json:"fuelCost"`
	FuelLiters        float64                     `json:"fuelLiters"`
	MaintenanceCost   float64                     `json:"maintenanceCost"`
	TotalCost         float64                     `json:"totalCost"`
	NetProfit         float64                     `json:"netProfit"`
	FuelEfficiency    *float64                    `json:"fuelEfficiency"`
	RecentTrips       []models.Trip               `json:"recentTrips"`
	RecentMaintenance []models.MaintenanceLog     `json:"recentMaintenance"`
	RecentFuel        []models.FuelLog            `json:"recentFuel"`
}

// VehicleAnalytics aggregates one vehicle's history: completed-trip
// totals, spend, fuel efficiency over its lifetime and the most recent
// activity.
func (s *AnalyticsService) VehicleAnalytics(ctx context.Context, id string) (*VehicleAnalytics, error) {
	vehicle, err := s.vehicles.FindVehicleByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err, "vehicle", id)
	}

	tripsByStatus, err := s.trips.CountTripsByStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	completed, err := s.trips.CompletedTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	fuelTotals, err := s.fuel.FuelTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	maintenanceTotals, err := s.maintenance.MaintenanceTotals(ctx, id)
	if err != nil {
		return nil, err
	}
	recentTrips, err := s.trips.FindRecentTrips(ctx, id, 10)
	if err != nil {
		return nil, err
	}
	recentMaintenance, err := s.maintenance.FindRecentMaintenanceLogs(ctx, id, 5)
	if err != nil {
		return nil, err
	}
	recentFuel, err := s.fuel.FindRecentFuelLogs(ctx, id, 5)
	if err != nil {
		return nil, err
	}

	totalCost := fuelTotals.TotalCost + maintenanceTotals.TotalCost

	return &VehicleAnalytics{
		Vehicle:           *vehicle,
		TripsByStatus:     tripsByStatus,
		TotalTrips:        sumCounts(tripsByStatus),
		TotalDistance:     completed.TotalDistance,
		TotalCargoWeight:  completed.TotalCargoWeight,
		AvgCargoWeight:    completed.AvgCargoWeight,
		TotalRevenue:      completed.TotalRevenue,
		FuelCost:          fuelTotals.TotalCost,
		FuelLiters:        fuelTotals.TotalLiters,
		MaintenanceCost:   maintenanceTotals.TotalCost,
		TotalCost:         totalCost,
		NetProfit:         completed.TotalRevenue - totalCost,
		FuelEfficiency:    fuelEfficiency(completed.TotalDistance, fuelTotals.TotalLiters),
		RecentTrips:       recentTrips,
		RecentMaintenance: recentMaintenance,
		RecentFuel:        recentFuel,
	}, nil
}

// VehicleEfficiency is one leaderboard row. Efficiency is nil when the
// vehicle has no fuel history.
type VehicleEfficiency struct {
	Vehicle       models.Vehicle `json:"vehicle"`
	TotalDistance float64        `json:"totalDistance"`
	TotalLiters   float64        `json:"totalLiters"`
	Efficiency    *float64       `json:"efficiency"`
}

// FuelEfficiencyReport ranks active vehicles by distance per liter, best
// first. Vehicles with no fuel history sort last.
func (s *AnalyticsService) FuelEfficiencyReport(ctx context.Context) ([]VehicleEfficiency, error) {
	vehicles, err := s.vehicles.FindActiveVehicles(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]VehicleEfficiency, 0, len(vehicles))
	for _, vehicle := range vehicles {
		id := vehicle.ID.Hex()
		completed, err := s.trips.CompletedTotals(ctx, id)
		if err != nil {
			return nil, err
		}
		fuelTotals, err := s.fuel.FuelTotals(ctx, id)
		if err != nil {
			return nil, err
		}
		report = append(report, VehicleEfficiency{
			Vehicle:       vehicle,
			TotalDistance: completed.TotalDistance,
			TotalLiters:   fuelTotals.TotalLiters,
			Efficiency:    fuelEfficiency(completed.TotalDistance, fuelTotals.TotalLiters),
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		a, b := report[i].Efficiency, report[j].Efficiency
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a > *b
	})
	return report, nil
}

// MonthlyTrends merges trip, fuel and maintenance monthly aggregates into
// the trailing six calendar months, current month included. Months without
// activity appear with zero values so the series never has gaps.
func (s *AnalyticsService) MonthlyTrends(ctx context.Context) ([]MonthlyTrend, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trendMonths - 1), 0)

	tripTotals, err := s.trips.MonthlyTotals(ctx, start)
	if err != nil {
		return nil, err
	}
	fuelTotals, err := s.fuel.MonthlyFuelTotals(ctx, start)
	if err != nil {
		return nil, err
	}
	maintenanceTotals, err := s.maintenance.MonthlyMaintenanceTotals(ctx, start)
	if err != nil {
		return nil, err
	}

	tripsByMonth := make(map[string]db.MonthlyTripTotals, len(tripTotals))
	for _, row := range tripTotals {
		tripsByMonth[row.Month] = row
	}
	fuelByMonth := make(map[string]db.MonthlyFuelTotals, len(fuelTotals))
	for _, row := range fuelTotals {
		fuelByMonth[row.Month] = row
	}
	maintenanceByMonth := make(map[string]db.MonthlyCostTotals, len(maintenanceTotals))
	for _, row := range maintenanceTotals {
		maintenanceByMonth[row.Month] = row
	}

	trends := make([]MonthlyTrend, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		tripRow := tripsByMonth[month]
		fuelRow := fuelByMonth[month]
		maintenanceRow := maintenanceByMonth[month]
		trends = append(trends, MonthlyTrend{
			Month:           month,
			Trips:           tripRow.Trips,
			Revenue:         tripRow.Revenue,
			Distance:        tripRow.Distance,
			FuelCost:        fuelRow.Cost,
			FuelLiters:      fuelRow.Liters,
			MaintenanceCost: maintenanceRow.Cost,
			NetProfit:       tripRow.Revenue - fuelRow.Cost - maintenanceRow.Cost,
			FuelEfficiency:  fuelEfficiency(tripRow.Distance, fuelRow.Liters),
		})
	}
	return trends, nil
}

// fuelEfficiency is distance per liter rounded to two decimals, nil when
// no fuel was purchased. Division by zero liters is meaningless, not
// infinite efficiency.
func fuelEfficiency(distance, liters float64) *float64 {
	if liters == 0 {
		return nil
	}
	efficiency := math.Round(distance/liters*100) / 100
	return &efficiency
}

// roi is net return over cost as a percentage, zero when nothing was
// spent.
func roi(revenue, cost float64) float64 {
	if cost == 0 {
		return 0
	}
	return math.Round((revenue-cost)/cost*100*100) / 100
}

// utilizationRate is the share of the fleet currently on a trip, rounded
// to the nearest whole percent.
func utilizationRate(onTrip, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(onTrip) / float64(total) * 100))
}

func sumCounts[K comparable](counts map[K]int64) int64 {
	var total int64
	for _, count := range counts {
		total += count
	}
	return total
}
