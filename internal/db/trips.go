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

// TripFilter narrows trip listings. VehicleIDs restricts to a set of
// vehicles, used when filtering trips by vehicle type.
type TripFilter struct {
	Status     models.TripStatus
	VehicleID  string
	VehicleIDs []primitive.ObjectID
	DriverID   string
	Page       int
	Limit      int
}

// CompletedTripTotals aggregates completed trips, fleet-wide or per vehicle.
type CompletedTripTotals struct {
	TotalTrips       int64   `bson:"total_trips"`
	TotalDistance    float64 `bson:"total_distance"`
	TotalCargoWeight float64 `bson:"total_cargo_weight"`
	AvgCargoWeight   float64 `bson:"avg_cargo_weight"`
	TotalRevenue     float64 `bson:"total_revenue"`
}

// MonthlyTripTotals aggregates completed trips by absolute year-month key
// (e.g. "2026-08"). Absolute keys keep months from aliasing across years.
type MonthlyTripTotals struct {
	Month    string  `bson:"_id"`
	Trips    int64   `bson:"trips"`
	Revenue  float64 `bson:"revenue"`
	Distance float64 `bson:"distance"`
}

// TripCollection defines the interface for trip data operations.
type TripCollection interface {
	InsertTrip(ctx context.Context, trip models.Trip) (*models.Trip, error)
	FindTripByID(ctx context.Context, id string) (*models.Trip, error)
	FindTrips(ctx context.Context, filter TripFilter) ([]models.Trip, int64, error)
	FindRecentTrips(ctx context.Context, vehicleID string, limit int64) ([]models.Trip, error)
	UpdateTripStatus(ctx context.Context, id string, status models.TripStatus, endOdometer *float64) error
	CountTripsByStatus(ctx context.Context, vehicleID string) (map[models.TripStatus]int64, error)
	CompletedTotals(ctx context.Context, vehicleID string) (*CompletedTripTotals, error)
	MonthlyTotals(ctx context.Context, since time.Time) ([]MonthlyTripTotals, error)
}

// MongoTripCollection implements TripCollection for MongoDB.
type MongoTripCollection struct {
	Collection *mongo.Collection
}

// InsertTrip inserts a trip record into the collection.
func (c *MongoTripCollection) InsertTrip(ctx context.Context, trip models.Trip) (*models.Trip, error) {
	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now
	if trip.ID.IsZero() {
		trip.ID = primitive.NewObjectID()
	}
	if _, err := c.Collection.InsertOne(ctx, trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindTripByID finds a trip by its ID.
func (c *MongoTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var trip models.Trip
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindTrips queries trips matching the filter, newest first.
func (c *MongoTripCollection) FindTrips(ctx context.Context, filter TripFilter) ([]models.Trip, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.VehicleID != "" {
		objectID, err := primitive.ObjectIDFromHex(filter.VehicleID)
		if err != nil {
			return nil, 0, ErrNotFound
		}
		query["vehicle"] = objectID
	} else if filter.VehicleIDs != nil {
		query["vehicle"] = bson.M{"$in": filter.VehicleIDs}
	}
	if filter.DriverID != "" {
		objectID, err := primitive.ObjectIDFromHex(filter.DriverID)
		if err != nil {
			return nil, 0, ErrNotFound
		}
		query["driver"] = objectID
	}

	total, err := c.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}
	cursor, err := c.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// FindRecentTrips returns the newest trips, optionally for one vehicle.
func (c *MongoTripCollection) FindRecentTrips(ctx context.Context, vehicleID string, limit int64) ([]models.Trip, error) {
	query := bson.M{}
	if vehicleID != "" {
		objectID, err := primitive.ObjectIDFromHex(vehicleID)
		if err != nil {
			return nil, ErrNotFound
		}
		query["vehicle"] = objectID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := c.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// UpdateTripStatus sets a trip's status and, when provided, its end
// odometer in one write.
func (c *MongoTripCollection) UpdateTripStatus(ctx context.Context, id string, status models.TripStatus, endOdometer *float64) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	set := bson.M{"status": status, "updated_at": time.Now()}
	if endOdometer != nil {
		set["end_odometer"] = *endOdometer
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountTripsByStatus groups trips by status, fleet-wide or per vehicle.
func (c *MongoTripCollection) CountTripsByStatus(ctx context.Context, vehicleID string) (map[models.TripStatus]int64, error) {
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
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.TripStatus `bson:"_id"`
		Count  int64             `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[models.TripStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CompletedTotals sums distance, cargo weight and revenue across completed
// trips. Pass an empty vehicleID for fleet-wide totals.
func (c *MongoTripCollection) CompletedTotals(ctx context.Context, vehicleID string) (*CompletedTripTotals, error) {
	match := bson.M{"status": models.TripCompleted}
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
			"_id":                nil,
			"total_trips":        bson.M{"$sum": 1},
			"total_distance":     bson.M{"$sum": bson.M{"$subtract": bson.A{"$end_odometer", "$start_odometer"}}},
			"total_cargo_weight": bson.M{"$sum": "$cargo_weight"},
			"avg_cargo_weight":   bson.M{"$avg": "$cargo_weight"},
			"total_revenue":      bson.M{"$sum": "$revenue"},
		}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []CompletedTripTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &CompletedTripTotals{}, nil
	}
	return &rows[0], nil
}

// MonthlyTotals aggregates completed trips since the given time, grouped by
// year-month of creation.
func (c *MongoTripCollection) MonthlyTotals(ctx context.Context, since time.Time) ([]MonthlyTripTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":     models.TripCompleted,
			"created_at": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$created_at"}},
			"trips":    bson.M{"$sum": 1},
			"revenue":  bson.M{"$sum": "$revenue"},
			"distance": bson.M{"$sum": bson.M{"$subtract": bson.A{"$end_odometer", "$start_odometer"}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []MonthlyTripTotals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
