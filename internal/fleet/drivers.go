package fleet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// DriverService owns driver registration and the administrative side of the
// driver lifecycle. Trip workflows drive the OnDuty transitions.
type DriverService struct {
	drivers db.DriverCollection
	now     func() time.Time
}

// NewDriverService creates a new driver service.
func NewDriverService(drivers db.DriverCollection) *DriverService {
	return &DriverService{drivers: drivers, now: time.Now}
}

// CreateDriverInput carries the fields for driver registration.
type CreateDriverInput struct {
	Name              string
	LicenseCategory   string
	LicenseNumber     string
	LicenseExpiryDate time.Time
	Status            models.DriverStatus
}

// Create registers a driver. The license number must be unique.
func (s *DriverService) Create(ctx context.Context, input CreateDriverInput) (*models.Driver, error) {
	if input.LicenseExpiryDate.IsZero() {
		return nil, &MissingFieldError{Field: "licenseExpiryDate"}
	}
	status := input.Status
	if status == "" {
		status = models.DriverAvailable
	}
	if !models.IsValidDriverStatus(status) {
		return nil, &ValidationError{Field: "status", Reason: "must be one of: Available, OnDuty, Suspended"}
	}

	if _, err := s.drivers.FindDriverByLicenseNumber(ctx, input.LicenseNumber); err == nil {
		return nil, &ValidationError{Field: "licenseNumber", Reason: "driver with this license number already exists"}
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	return s.drivers.InsertDriver(ctx, models.Driver{
		Name:              input.Name,
		LicenseCategory:   strings.ToUpper(strings.TrimSpace(input.LicenseCategory)),
		LicenseNumber:     input.LicenseNumber,
		LicenseExpiryDate: input.LicenseExpiryDate,
		Status:            status,
	})
}

// UpdateDriverInput carries partial updates; nil fields stay unchanged.
type UpdateDriverInput struct {
	Name              *string
	LicenseCategory   *string
	LicenseNumber     *string
	LicenseExpiryDate *time.Time
	Status            *models.DriverStatus
	CompletionRate    *float64
	SafetyScore       *float64
	Complaints        *int
}

// Update applies an administrative update. A driver cannot be set to
// Available or OnDuty when the effective license expiry date (the incoming
// one if provided, else the stored one) is in the past.
func (s *DriverService) Update(ctx context.Context, id string, input UpdateDriverInput) (*models.Driver, error) {
	driver, err := s.drivers.FindDriverByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}

	if input.Status != nil {
		if !models.IsValidDriverStatus(*input.Status) {
			return nil, &ValidationError{Field: "status", Reason: "must be one of: Available, OnDuty, Suspended"}
		}
		if *input.Status == models.DriverAvailable || *input.Status == models.DriverOnDuty {
			expiry := driver.LicenseExpiryDate
			if input.LicenseExpiryDate != nil {
				expiry = *input.LicenseExpiryDate
			}
			if expiry.Before(s.now()) {
				return nil, &ValidationError{
					Field:  "status",
					Reason: "cannot set driver status to Available or OnDuty with an expired license",
				}
			}
		}
		driver.Status = *input.Status
	}
	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.LicenseCategory != nil {
		driver.LicenseCategory = strings.ToUpper(strings.TrimSpace(*input.LicenseCategory))
	}
	if input.LicenseNumber != nil && *input.LicenseNumber != driver.LicenseNumber {
		existing, err := s.drivers.FindDriverByLicenseNumber(ctx, *input.LicenseNumber)
		if err == nil && existing.ID != driver.ID {
			return nil, &ValidationError{Field: "licenseNumber", Reason: "another driver with this license number already exists"}
		}
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		driver.LicenseNumber = *input.LicenseNumber
	}
	if input.LicenseExpiryDate != nil {
		driver.LicenseExpiryDate = *input.LicenseExpiryDate
	}
	if input.CompletionRate != nil {
		driver.CompletionRate = *input.CompletionRate
	}
	if input.SafetyScore != nil {
		driver.SafetyScore = *input.SafetyScore
	}
	if input.Complaints != nil {
		driver.Complaints = *input.Complaints
	}

	updated, err := s.drivers.UpdateDriver(ctx, id, *driver)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	return updated, nil
}

// Get returns a driver by id.
func (s *DriverService) Get(ctx context.Context, id string) (*models.Driver, error) {
	driver, err := s.drivers.FindDriverByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, id)
	}
	return driver, nil
}

// List returns drivers matching the filter plus the unpaged total.
func (s *DriverService) List(ctx context.Context, filter db.DriverFilter) ([]models.Driver, int64, error) {
	return s.drivers.FindDrivers(ctx, filter)
}

// ExpiringLicenses lists drivers whose license expires within the next
// days, soonest first. Days defaults to 30.
func (s *DriverService) ExpiringLicenses(ctx context.Context, days int) ([]models.Driver, error) {
	if days <= 0 {
		days = 30
	}
	now := s.now()
	return s.drivers.FindDriversExpiringBetween(ctx, now, now.AddDate(0, 0, days))
}

// Delete removes a driver. Drivers on duty are tied to a dispatched trip
// and cannot be deleted.
func (s *DriverService) Delete(ctx context.Context, id string) error {
	driver, err := s.drivers.FindDriverByID(ctx, id)
	if err != nil {
		return s.mapErr(err, id)
	}
	if !driver.Deletable() {
		return &ConflictError{
			Entity: "driver",
			Status: string(driver.Status),
			Reason: "driver must be Available or Suspended to be deleted",
		}
	}
	if err := s.drivers.DeleteDriver(ctx, id); err != nil {
		return s.mapErr(err, id)
	}
	return nil
}

func (s *DriverService) mapErr(err error, id string) error {
	if errors.Is(err, db.ErrNotFound) {
		return &NotFoundError{Entity: "driver", ID: id}
	}
	return err
}
