// Package fleet holds the status-transition and validation core: the state
// machine tying trip, vehicle and driver status together, the maintenance
// workflow, and the analytics derived from the five entity collections.
package fleet

import (
	"fmt"
	"time"

	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// NotFoundError reports that a referenced entity id does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ValidationError reports a field violating a stated constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// CapacityExceededError reports cargo weight exceeding vehicle capacity.
type CapacityExceededError struct {
	CargoWeight float64
	MaxCapacity float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("cargo weight (%g kg) exceeds vehicle maximum capacity (%g kg)", e.CargoWeight, e.MaxCapacity)
}

// UnavailableError reports a vehicle or driver not being in the status the
// requested operation needs.
type UnavailableError struct {
	Entity string
	Status string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is not available, current status: %s", e.Entity, e.Status)
}

// ExpiredLicenseError reports a driver license expired at validation time.
type ExpiredLicenseError struct {
	ExpiredOn time.Time
}

func (e *ExpiredLicenseError) Error() string {
	return fmt.Sprintf("driver's license has expired on %s", e.ExpiredOn.Format("2006-01-02"))
}

// InvalidTransitionError reports a trip status not reachable from the
// current one.
type InvalidTransitionError struct {
	From models.TripStatus
	To   models.TripStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// ConflictError reports an operation blocked by the current status of the
// entity, typically a deletion guard.
type ConflictError struct {
	Entity string
	Status string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot modify %s with status %q: %s", e.Entity, e.Status, e.Reason)
}

// MissingFieldError reports a conditionally-required field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}
