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

// MaintenanceFilter narrows maintenance log listings.
type MaintenanceFilter struct {
	VehicleID string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// CostTotals aggregates maintenance spend.
type CostTotals struct {
	TotalCost float64 `bson:"total_cost"`
	Count     int64   `bson:"count"`
}

// MonthlyCostTotals aggregates maintenance spend by year-month key.
type MonthlyCostTotals struct {
	Month string  `bson:"_id"`
	Cost  float64 `bson:"cost"`
}

// MaintenanceCollection defines the interface for maintenance log operations.
type MaintenanceCollection interface {
	InsertMaintenanceLog(ctx context.Context, log models.MaintenanceLog) (*models.MaintenanceLog, error)
	FindMaintenanceLogByID(ctx context.Context, id string) (*models.MaintenanceLog, error)
	FindMaintenanceLogs(ctx context.Context, filter MaintenanceFilter) ([]models.MaintenanceLog, int64, error)
	FindRecentMaintenanceLogs(ctx context.Context, vehicleID string, limit int64) ([]models.MaintenanceLog, error)
	UpdateMaintenanceLog(ctx context.Context, id string, log models.MaintenanceLog) (*models.MaintenanceLog, error)
	DeleteMaintenanceLog(ctx context.Context, id string) error
	MaintenanceTotals(ctx context.Context, vehicleID string) (*CostTotals, error)
	MonthlyMaintenanceTotals(ctx context.Context, since time.Time) ([]MonthlyCostTotals, error)
}

// MongoMaintenanceCollection implements MaintenanceCollection for MongoDB.
type MongoMaintenanceCollection struct {
	Collection *mongo.Collection
}

// InsertMaintenanceLog inserts a maintenance record into the collection.
func (c *MongoMaintenanceCollection) InsertMaintenanceLog(ctx context.Context, log models.MaintenanceLog) (*models.MaintenanceLog, error) {
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

// FindMaintenanceLogByID finds a maintenance record by its ID.
func (c *MongoMaintenanceCollection) FindMaintenanceLogByID(ctx context.Context, id string) (*models.MaintenanceLog, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var log models.MaintenanceLog
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&log)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// FindMaintenanceLogs queries maintenance records, most recent date first.
func (c *MongoMaintenanceCollection) FindMaintenanceLogs(ctx context.Context, filter MaintenanceFilter) ([]models.MaintenanceLog, int64, error) {
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

	var logs []models.MaintenanceLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// FindRecentMaintenanceLogs returns the newest maintenance records for a vehicle.
func (c *MongoMaintenanceCollection) FindRecentMaintenanceLogs(ctx context.Context, vehicleID string, limit int64) ([]models.MaintenanceLog, error) {
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

	var logs []models.MaintenanceLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// UpdateMaintenanceLog replaces the mutable fields of a maintenance record.
// Vehicle status is untouched; only the workflows change it.
func (c *MongoMaintenanceCollection) UpdateMaintenanceLog(ctx context.Context, id string, log models.MaintenanceLog) (*models.MaintenanceLog, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	log.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"description": log.Description,
		"cost":        log.Cost,
		"date":        log.Date,
		"updated_at":  log.UpdatedAt,
	}}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return c.FindMaintenanceLogByID(ctx, id)
}

// DeleteMaintenanceLog deletes a maintenance record by its ID.
func (c *MongoMaintenanceCollection) DeleteMaintenanceLog(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MaintenanceTotals sums maintenance spend, fleet-wide or per vehicle.
func (c *MongoMaintenanceCollection) MaintenanceTotals(ctx context.Context, vehicleID string) (*CostTotals, error) {
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
			"_id":        nil,
			"total_cost": bson.M{"$sum": "$cost"},
			"count":      bson.M{"$sum": 1},
		}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []CostTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &CostTotals{}, nil
	}
	return &rows[0], nil
}

// MonthlyMaintenanceTotals aggregates maintenance spend since the given
// time, grouped by year-month of the service date.
func (c *MongoMaintenanceCollection) MonthlyMaintenanceTotals(ctx context.Context, since time.Time) ([]MonthlyCostTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"date": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":  bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$date"}},
			"cost": bson.M{"$sum": "$cost"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []MonthlyCostTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
