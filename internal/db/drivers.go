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

// DriverFilter narrows driver listings. Search matches name or license
// number case-insensitively.
type DriverFilter struct {
	Status models.DriverStatus
	Search string
	Page   int
	Limit  int
}

// DriverCollection defines the interface for driver data operations.
type DriverCollection interface {
	InsertDriver(ctx context.Context, driver models.Driver) (*models.Driver, error)
	FindDriverByID(ctx context.Context, id string) (*models.Driver, error)
	FindDriverByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Driver, error)
	FindDrivers(ctx context.Context, filter DriverFilter) ([]models.Driver, int64, error)
	UpdateDriver(ctx context.Context, id string, driver models.Driver) (*models.Driver, error)
	UpdateDriverStatus(ctx context.Context, id string, status models.DriverStatus) error
	UpdateDriverStatusIf(ctx context.Context, id string, from, to models.DriverStatus) (bool, error)
	DeleteDriver(ctx context.Context, id string) error
	CountDriversByStatus(ctx context.Context) (map[models.DriverStatus]int64, error)
	CountDriversExpiringBetween(ctx context.Context, from, to time.Time) (int64, error)
	FindDriversExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Driver, error)
}

// MongoDriverCollection implements DriverCollection for MongoDB.
type MongoDriverCollection struct {
	Collection *mongo.Collection
}

// InsertDriver inserts a driver record into the collection.
func (c *MongoDriverCollection) InsertDriver(ctx context.Context, driver models.Driver) (*models.Driver, error) {
	now := time.Now()
	driver.CreatedAt = now
	driver.UpdatedAt = now
	if driver.ID.IsZero() {
		driver.ID = primitive.NewObjectID()
	}
	if _, err := c.Collection.InsertOne(ctx, driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// FindDriverByID finds a driver by its ID.
func (c *MongoDriverCollection) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var driver models.Driver
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&driver)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// FindDriverByLicenseNumber finds a driver by the unique license number.
func (c *MongoDriverCollection) FindDriverByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Driver, error) {
	var driver models.Driver
	err := c.Collection.FindOne(ctx, bson.M{"license_number": licenseNumber}).Decode(&driver)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// FindDrivers queries drivers matching the filter, newest first.
func (c *MongoDriverCollection) FindDrivers(ctx context.Context, filter DriverFilter) ([]models.Driver, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"license_number": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
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

	var drivers []models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// UpdateDriver replaces the mutable fields of a driver.
func (c *MongoDriverCollection) UpdateDriver(ctx context.Context, id string, driver models.Driver) (*models.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	driver.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":                driver.Name,
		"license_category":    driver.LicenseCategory,
		"license_number":      driver.LicenseNumber,
		"license_expiry_date": driver.LicenseExpiryDate,
		"status":              driver.Status,
		"completion_rate":     driver.CompletionRate,
		"safety_score":        driver.SafetyScore,
		"complaints":          driver.Complaints,
		"updated_at":          driver.UpdatedAt,
	}}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return c.FindDriverByID(ctx, id)
}

// UpdateDriverStatus sets a driver's status unconditionally.
func (c *MongoDriverCollection) UpdateDriverStatus(ctx context.Context, id string, status models.DriverStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateDriverStatusIf sets the status only when the stored status equals
// from. The false return means another writer got there first.
func (c *MongoDriverCollection) UpdateDriverStatusIf(ctx context.Context, id string, from, to models.DriverStatus) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}
	result, err := c.Collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

// DeleteDriver deletes a driver by its ID.
func (c *MongoDriverCollection) DeleteDriver(ctx context.Context, id string) error {
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

// CountDriversByStatus groups drivers by status.
func (c *MongoDriverCollection) CountDriversByStatus(ctx context.Context) (map[models.DriverStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.DriverStatus `bson:"_id"`
		Count  int64               `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[models.DriverStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountDriversExpiringBetween counts drivers whose license expires within
// the window [from, to].
func (c *MongoDriverCollection) CountDriversExpiringBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return c.Collection.CountDocuments(ctx, bson.M{
		"license_expiry_date": bson.M{"$gte": from, "$lte": to},
	})
}

// FindDriversExpiringBetween lists drivers whose license expires within the
// window, soonest first.
func (c *MongoDriverCollection) FindDriversExpiringBetween(ctx context.Context, from, to time.Time) ([]models.Driver, error) {
	opts := options.Find().SetSort(bson.D{{Key: "license_expiry_date", Value: 1}})
	cursor, err := c.Collection.Find(ctx, bson.M{
		"license_expiry_date": bson.M{"$gte": from, "$lte": to},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drivers []models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}
