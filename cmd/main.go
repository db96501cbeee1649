package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/isha-gohel181/FleetFlow/internal/auth"
	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/events"
	"github.com/isha-gohel181/FleetFlow/internal/fleet"
	"github.com/isha-gohel181/FleetFlow/internal/handlers"
	"github.com/isha-gohel181/FleetFlow/internal/middleware"
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
	log.Info("Connected to MongoDB successfully")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "fleetflow"
	}
	database := client.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	collections := db.New(client, database)

	var publisher events.Publisher = events.NopPublisher{}
	if brokerURL := os.Getenv("MQTT_BROKER_URL"); brokerURL != "" {
		mqttPublisher, err := events.NewMQTTPublisher(brokerURL, "fleetflow-api")
		if err != nil {
			log.Fatalf("Failed to connect to MQTT broker: %v", err)
		}
		defer mqttPublisher.Close()
		publisher = mqttPublisher
		log.WithField("broker", brokerURL).Info("Connected to MQTT broker")
	}

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	vehicleService := fleet.NewVehicleService(collections.Vehicles, publisher)
	driverService := fleet.NewDriverService(collections.Drivers)
	tripService := fleet.NewTripService(collections.Trips, collections.Vehicles, collections.Drivers, collections.Txn, publisher)
	maintenanceService := fleet.NewMaintenanceService(collections.Maintenance, collections.Vehicles, collections.Txn, publisher)
	fuelService := fleet.NewFuelService(collections.Fuel, collections.Vehicles)
	analyticsService := fleet.NewAnalyticsService(collections.Vehicles, collections.Drivers, collections.Trips, collections.Maintenance, collections.Fuel)

	authHandler := handlers.NewAuthHandler(authService, collections.Users)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	driverHandler := handlers.NewDriverHandler(driverService)
	tripHandler := handlers.NewTripHandler(tripService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	fuelHandler := handlers.NewFuelHandler(fuelService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()
	loginLimit := rateLimiter.RateLimit(10, 60)

	// protect chains authentication and the permission check for one action.
	protect := func(action models.Action, handlerFunc http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(authMiddleware.RequirePermission(action)(handlerFunc))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("POST /api/auth/login", loginLimit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/register", loginLimit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("GET /api/auth/profile", authMiddleware.Authenticate(http.HandlerFunc(authHandler.GetProfile)))

	mux.Handle("POST /api/vehicles", protect(models.ActionVehiclesCreate, vehicleHandler.Create))
	mux.Handle("GET /api/vehicles", protect(models.ActionVehiclesRead, vehicleHandler.List))
	mux.Handle("GET /api/vehicles/{id}", protect(models.ActionVehiclesRead, vehicleHandler.Get))
	mux.Handle("PUT /api/vehicles/{id}", protect(models.ActionVehiclesUpdate, vehicleHandler.Update))
	mux.Handle("DELETE /api/vehicles/{id}", protect(models.ActionVehiclesDelete, vehicleHandler.Delete))

	mux.Handle("POST /api/drivers", protect(models.ActionDriversCreate, driverHandler.Create))
	mux.Handle("GET /api/drivers", protect(models.ActionDriversRead, driverHandler.List))
	mux.Handle("GET /api/drivers/expiring", protect(models.ActionDriversRead, driverHandler.Expiring))
	mux.Handle("GET /api/drivers/{id}", protect(models.ActionDriversRead, driverHandler.Get))
	mux.Handle("PUT /api/drivers/{id}", protect(models.ActionDriversUpdate, driverHandler.Update))
	mux.Handle("DELETE /api/drivers/{id}", protect(models.ActionDriversDelete, driverHandler.Delete))

	mux.Handle("POST /api/trips", protect(models.ActionTripsCreate, tripHandler.Create))
	mux.Handle("GET /api/trips", protect(models.ActionTripsRead, tripHandler.List))
	mux.Handle("GET /api/trips/{id}", protect(models.ActionTripsRead, tripHandler.Get))
	mux.Handle("PATCH /api/trips/{id}/status", protect(models.ActionTripsUpdateStatus, tripHandler.UpdateStatus))

	mux.Handle("POST /api/maintenance", protect(models.ActionMaintenanceWrite, maintenanceHandler.Create))
	mux.Handle("GET /api/maintenance", protect(models.ActionMaintenanceRead, maintenanceHandler.List))
	mux.Handle("GET /api/maintenance/{id}", protect(models.ActionMaintenanceRead, maintenanceHandler.Get))
	mux.Handle("PUT /api/maintenance/{id}", protect(models.ActionMaintenanceWrite, maintenanceHandler.Update))
	mux.Handle("POST /api/maintenance/{id}/complete", protect(models.ActionMaintenanceWrite, maintenanceHandler.Complete))
	mux.Handle("DELETE /api/maintenance/{id}", protect(models.ActionMaintenanceWrite, maintenanceHandler.Delete))

	mux.Handle("POST /api/fuel", protect(models.ActionFuelCreate, fuelHandler.Create))
	mux.Handle("GET /api/fuel", protect(models.ActionFuelRead, fuelHandler.List))
	mux.Handle("GET /api/fuel/{id}", protect(models.ActionFuelRead, fuelHandler.Get))

	mux.Handle("GET /api/analytics/dashboard", protect(models.ActionAnalyticsRead, analyticsHandler.Dashboard))
	mux.Handle("GET /api/analytics/trends", protect(models.ActionAnalyticsRead, analyticsHandler.Trends))
	mux.Handle("GET /api/analytics/fuel-efficiency", protect(models.ActionAnalyticsRead, analyticsHandler.FuelEfficiency))
	mux.Handle("GET /api/analytics/vehicles/{id}", protect(models.ActionAnalyticsRead, analyticsHandler.Vehicle))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.WithField("port", port).Info("HTTP server listening")
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
