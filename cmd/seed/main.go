// Seeds the database with sample data for local development.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/isha-gohel181/FleetFlow/internal/auth"
	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	defer client.Disconnect(context.Background())

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "fleetflow"
	}
	database := client.Database(dbName)

	log.Info("Clearing existing data")
	for _, name := range []string{"users", "vehicles", "drivers", "trips", "maintenance_logs", "fuel_logs"} {
		if _, err := database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s: %v", name, err)
		}
	}

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	collections := db.New(client, database)
	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	passwordHash, err := authService.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	users := []models.User{
		{Name: "John Fleet Manager", Email: "fleet@fleetflow.com", Role: models.RoleFleetManager},
		{Name: "Sarah Dispatcher", Email: "dispatcher@fleetflow.com", Role: models.RoleDispatcher},
		{Name: "Mike Safety Officer", Email: "safety@fleetflow.com", Role: models.RoleSafetyOfficer},
		{Name: "Emily Financial Analyst", Email: "finance@fleetflow.com", Role: models.RoleFinancialAnalyst},
	}
	for _, user := range users {
		user.PasswordHash = passwordHash
		user.IsActive = true
		user.CreatedAt = now
		user.UpdatedAt = now
		if err := collections.Users.InsertUser(ctx, user); err != nil {
			log.Fatalf("Failed to insert user %s: %v", user.Email, err)
		}
	}
	log.WithField("count", len(users)).Info("Created users")

	vehicles := []models.Vehicle{
		{Name: "Heavy Hauler 1", LicensePlate: "ABC-1234", VehicleType: models.VehicleTruck, MaxCapacity: 20000, Odometer: 150000, Status: models.VehicleAvailable},
		{Name: "City Runner", LicensePlate: "XYZ-5678", VehicleType: models.VehicleVan, MaxCapacity: 3000, Odometer: 75000, Status: models.VehicleAvailable},
		{Name: "Express Bike 1", LicensePlate: "BIKE-001", VehicleType: models.VehicleBike, MaxCapacity: 50, Odometer: 25000, Status: models.VehicleAvailable},
		{Name: "Long Haul Truck", LicensePlate: "DEF-9012", VehicleType: models.VehicleTruck, MaxCapacity: 25000, Odometer: 200000, Status: models.VehicleAvailable},
		{Name: "Delivery Van 2", LicensePlate: "GHI-3456", VehicleType: models.VehicleVan, MaxCapacity: 2500, Odometer: 45000, Status: models.VehicleAvailable},
	}
	createdVehicles := make([]*models.Vehicle, 0, len(vehicles))
	for _, vehicle := range vehicles {
		created, err := collections.Vehicles.InsertVehicle(ctx, vehicle)
		if err != nil {
			log.Fatalf("Failed to insert vehicle %s: %v", vehicle.Name, err)
		}
		createdVehicles = append(createdVehicles, created)
	}
	log.WithField("count", len(createdVehicles)).Info("Created vehicles")

	expiry := now.AddDate(2, 0, 0)
	drivers := []models.Driver{
		{Name: "Robert Johnson", LicenseCategory: "A", LicenseNumber: "DL-1001", LicenseExpiryDate: expiry, Status: models.DriverAvailable},
		{Name: "Maria Garcia", LicenseCategory: "B", LicenseNumber: "DL-1002", LicenseExpiryDate: expiry, Status: models.DriverAvailable},
		{Name: "James Williams", LicenseCategory: "C", LicenseNumber: "DL-1003", LicenseExpiryDate: expiry, Status: models.DriverAvailable},
		{Name: "Linda Davis", LicenseCategory: "B", LicenseNumber: "DL-1004", LicenseExpiryDate: expiry, Status: models.DriverAvailable},
		{Name: "Michael Brown", LicenseCategory: "A", LicenseNumber: "DL-1005", LicenseExpiryDate: expiry, Status: models.DriverAvailable},
	}
	createdDrivers := make([]*models.Driver, 0, len(drivers))
	for _, driver := range drivers {
		created, err := collections.Drivers.InsertDriver(ctx, driver)
		if err != nil {
			log.Fatalf("Failed to insert driver %s: %v", driver.Name, err)
		}
		createdDrivers = append(createdDrivers, created)
	}
	log.WithField("count", len(createdDrivers)).Info("Created drivers")

	endOdometer := 150250.0
	trips := []models.Trip{
		{
			VehicleID:     createdVehicles[0].ID,
			DriverID:      createdDrivers[0].ID,
			CargoWeight:   15000,
			FromLocation:  "Warehouse A, City Center",
			ToLocation:    "Distribution Hub B, Industrial Zone",
			StartOdometer: 150000,
			EndOdometer:   &endOdometer,
			Status:        models.TripCompleted,
			Revenue:       1200,
		},
		{
			VehicleID:     createdVehicles[1].ID,
			DriverID:      createdDrivers[1].ID,
			CargoWeight:   2000,
			FromLocation:  "Store 1, Downtown",
			ToLocation:    "Customer Location, Suburbs",
			StartOdometer: 75000,
			Status:        models.TripDraft,
			Revenue:       300,
		},
	}
	for _, trip := range trips {
		if _, err := collections.Trips.InsertTrip(ctx, trip); err != nil {
			log.Fatalf("Failed to insert trip: %v", err)
		}
	}
	log.WithField("count", len(trips)).Info("Created trips")

	maintenanceLogs := []models.MaintenanceLog{
		{
			VehicleID:   createdVehicles[0].ID,
			Description: "Regular service - Oil change and filter replacement",
			Cost:        250,
			Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			VehicleID:   createdVehicles[1].ID,
			Description: "Brake pad replacement",
			Cost:        450,
			Date:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, maintenanceLog := range maintenanceLogs {
		if _, err := collections.Maintenance.InsertMaintenanceLog(ctx, maintenanceLog); err != nil {
			log.Fatalf("Failed to insert maintenance log: %v", err)
		}
	}
	log.WithField("count", len(maintenanceLogs)).Info("Created maintenance logs")

	fuelLogs := []models.FuelLog{
		{VehicleID: createdVehicles[0].ID, Liters: 120, Cost: 180, Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{VehicleID: createdVehicles[0].ID, Liters: 100, Cost: 150, Date: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
		{VehicleID: createdVehicles[1].ID, Liters: 50, Cost: 75, Date: time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)},
	}
	for _, fuelLog := range fuelLogs {
		if _, err := collections.Fuel.InsertFuelLog(ctx, fuelLog); err != nil {
			log.Fatalf("Failed to insert fuel log: %v", err)
		}
	}
	log.WithField("count", len(fuelLogs)).Info("Created fuel logs")

	log.Info("Database seeded successfully")
	for _, user := range users {
		log.Infof("  %s: %s / password123", user.Role, user.Email)
	}
}
