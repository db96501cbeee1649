package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "ABC-1234", NormalizePlate(" abc-1234 "))
	assert.Equal(t, "XYZ-5678", NormalizePlate("XYZ-5678"))
}

func TestVehicle_Deletable(t *testing.T) {
	tests := []struct {
		status   VehicleStatus
		expected bool
	}{
		{VehicleAvailable, true},
		{VehicleRetired, true},
		{VehicleOnTrip, false},
		{VehicleInShop, false},
	}

	for _, tt := range tests {
		v := &Vehicle{Status: tt.status}
		if got := v.Deletable(); got != tt.expected {
			t.Errorf("Deletable() with status %s = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestDriver_LicenseExpired(t *testing.T) {
	now := time.Now()

	expired := &Driver{LicenseExpiryDate: now.Add(-24 * time.Hour)}
	assert.True(t, expired.LicenseExpired(now))

	valid := &Driver{LicenseExpiryDate: now.Add(365 * 24 * time.Hour)}
	assert.False(t, valid.LicenseExpired(now))
}

func TestDriver_Deletable(t *testing.T) {
	assert.True(t, (&Driver{Status: DriverAvailable}).Deletable())
	assert.True(t, (&Driver{Status: DriverSuspended}).Deletable())
	assert.False(t, (&Driver{Status: DriverOnDuty}).Deletable())
}
