package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by lookups that resolve to no document.
var ErrNotFound = errors.New("not found")

// ConnectMongo connects to MongoDB using the MONGO_URI environment variable.
func ConnectMongo() (*mongo.Client, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Collections bundles the per-entity collections backed by one database.
type Collections struct {
	Vehicles    VehicleCollection
	Drivers     DriverCollection
	Trips       TripCollection
	Maintenance MaintenanceCollection
	Fuel        FuelCollection
	Users       UserCollection
	Txn         Txn
}

// New wires the Mongo-backed collections for the given database.
func New(client *mongo.Client, database *mongo.Database) *Collections {
	return &Collections{
		Vehicles:    &MongoVehicleCollection{Collection: database.Collection("vehicles")},
		Drivers:     &MongoDriverCollection{Collection: database.Collection("drivers")},
		Trips:       &MongoTripCollection{Collection: database.Collection("trips")},
		Maintenance: &MongoMaintenanceCollection{Collection: database.Collection("maintenance_logs")},
		Fuel:        &MongoFuelCollection{Collection: database.Collection("fuel_logs")},
		Users:       &MongoUserCollection{Collection: database.Collection("users")},
		Txn:         &SessionTxn{Client: client},
	}
}

// EnsureIndexes creates the unique and query indexes the workflows rely on.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{"vehicles", []mongo.IndexModel{
			{Keys: bson.D{{Key: "license_plate", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "vehicle_type", Value: 1}}},
		}},
		{"drivers", []mongo.IndexModel{
			{Keys: bson.D{{Key: "license_number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "license_expiry_date", Value: 1}}},
		}},
		{"trips", []mongo.IndexModel{
			{Keys: bson.D{{Key: "vehicle", Value: 1}}},
			{Keys: bson.D{{Key: "driver", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		}},
		{"maintenance_logs", []mongo.IndexModel{
			{Keys: bson.D{{Key: "vehicle", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		}},
		{"fuel_logs", []mongo.IndexModel{
			{Keys: bson.D{{Key: "vehicle", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		}},
		{"users", []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		}},
	}

	for _, spec := range specs {
		if _, err := database.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", spec.collection, err)
		}
	}
	return nil
}
