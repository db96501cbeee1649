package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// FuelFilter narrows fuel log listings.
type FuelFilter struct {
	VehicleID string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// FuelTotals aggregates fuel purchases.
type FuelTotals struct {
	TotalCost   float64 `bson:"total_cost"`
	TotalLiters float64 `bson:"total_liters"`
	Count       int64   `bson:"count"`
}

// MonthlyFuelTotals aggregates fuel purchases by year-month key.
type MonthlyFuelTotals struct {
	Month  string  `bson:"_id"`
	Cost   float64 `bson:"cost"`
	Liters float64 `bson:"liters"`
}

// FuelCollection defines the interface for fuel log operations.
type FuelCollection interface {
	InsertFuelLog(ctx context.Context, log models.FuelLog) (*models.FuelLog, error)
	FindFuelLogByID(ctx context.Context, id string) (*models.FuelLog, error)
	FindFuelLogs(ctx context.Context, filter FuelFilter) ([]models.FuelLog, int64, error)
	FindRecentFuelLogs(ctx context.Context, vehicleID string, limit int64) ([]models.FuelLog, error)
	FuelTotals(ctx context.Context, vehicleID string) (*FuelTotals, error)
	MonthlyFuelTotals(ctx context.Context, since time.Time) ([]MonthlyFuelTotals, error)
}

// MongoFuelCollection implements FuelCollection for MongoDB.
type MongoFuelCollection struct {
	Collection *mongo.Collection
}

// InsertFuelLog inserts a fuel record into the collection.
func (c *MongoFuelCollection) InsertFuelLog(ctx context.Context, log models.FuelLog) (*models.FuelLog, error) {
	now := time.Now()
	log.CreatedAt = now
	log.UpdatedAt = now
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	if _, err := c.Collection.InsertOne(ctx, log); err != nil {
		return nil, err
	}
	return &log, nil
}

// FindFuelLogByID finds a fuel record by its ID.
func (c *MongoFuelCollection) FindFuelLogByID(ctx context.Context, id string) (*models.FuelLog, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var log models.FuelLog
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&log)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// FindFuelLogs queries fuel records, most recent date first.
func (c *MongoFuelCollection) FindFuelLogs(ctx context.Context, filter FuelFilter) ([]models.FuelLog, int64, error) {
	query := bson.M{}
	if filter.VehicleID != "" {
		objectID, err := primitive.ObjectIDFromHex(filter.VehicleID)
		if err != nil {
			return nil, 0, ErrNotFound
		}
		query["vehicle"] = objectID
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		dateRange := bson.M{}
		if filter.StartDate != nil {
			dateRange["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			dateRange["$lte"] = *filter.EndDate
		}
		query["date"] = dateRange
	}

	total, err := c.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if filter.Limit > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}
	cursor, err := c.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var logs []models.FuelLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// FindRecentFuelLogs returns the newest fuel records for a vehicle.
func (c *MongoFuelCollection) FindRecentFuelLogs(ctx context.Context, vehicleID string, limit int64) ([]models.FuelLog, error) {
	query := bson.M{}
	if vehicleID != "" {
		objectID, err := primitive.ObjectIDFromHex(vehicleID)
		if err != nil {
			return nil, ErrNotFound
		}
		query["vehicle"] = objectID
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit)
	cursor, err := c.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []models.FuelLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// FuelTotals sums fuel spend and liters, fleet-wide or per vehicle.
func (c *MongoFuelCollection) FuelTotals(ctx context.Context, vehicleID string) (*FuelTotals, error) {
	match := bson.M{}
	if vehicleID != "" {
		objectID, err := primitive.ObjectIDFromHex(vehicleID)
		if err != nil {
			return nil, ErrNotFound
		}
		match["vehicle"] = objectID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total_cost":   bson.M{"$sum": "$cost"},
			"total_liters": bson.M{"$sum": "$liters"},
			"count":        bson.M{"$sum": 1},
		}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []FuelTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &FuelTotals{}, nil
	}
	return &rows[0], nil
}

// MonthlyFuelTotals aggregates fuel purchases since the given time, grouped
// by year-month of the purchase date.
func (c *MongoFuelCollection) MonthlyFuelTotals(ctx context.Context, since time.Time) ([]MonthlyFuelTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$date"}},
			"cost":   bson.M{"$sum": "$cost"},
			"liters": bson.M{"$sum": "$liters"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []MonthlyFuelTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
