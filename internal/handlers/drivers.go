package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/fleet"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// DriverHandler handles driver requests.
type DriverHandler struct {
	drivers *fleet.DriverService
}

// NewDriverHandler creates a new driver handler.
func NewDriverHandler(drivers *fleet.DriverService) *DriverHandler {
	return &DriverHandler{drivers: drivers}
}

type driverRequest struct {
	Name              *string    `json:"name"`
	LicenseCategory   *string    `json:"licenseCategory"`
	LicenseNumber     *string    `json:"licenseNumber"`
	LicenseExpiryDate *time.Time `json:"licenseExpiryDate"`
	Status            *string    `json:"status"`
	CompletionRate    *float64   `json:"completionRate"`
	SafetyScore       *float64   `json:"safetyScore"`
	Complaints        *int       `json:"complaints"`
}

// Create handles POST /api/drivers.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req driverRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := fleet.CreateDriverInput{}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.LicenseCategory != nil {
		input.LicenseCategory = *req.LicenseCategory
	}
	if req.LicenseNumber != nil {
		input.LicenseNumber = *req.LicenseNumber
	}
	if req.LicenseExpiryDate != nil {
		input.LicenseExpiryDate = *req.LicenseExpiryDate
	}
	if req.Status != nil {
		input.Status = models.DriverStatus(*req.Status)
	}

	driver, err := h.drivers.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, driver)
}

// List handles GET /api/drivers.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := db.DriverFilter{
		Status: models.DriverStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}

	drivers, total, err := h.drivers.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondList(w, drivers, page, limit, total)
}

// Expiring handles GET /api/drivers/expiring. The days query parameter
// sets the window, defaulting to 30.
func (h *DriverHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days := 0
	if value, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil {
		days = value
	}

	drivers, err := h.drivers.ExpiringLicenses(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, drivers)
}

// Get handles GET /api/drivers/{id}.
func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	driver, err := h.drivers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, driver)
}

// Update handles PUT /api/drivers/{id}.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req driverRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := fleet.UpdateDriverInput{
		Name:              req.Name,
		LicenseCategory:   req.LicenseCategory,
		LicenseNumber:     req.LicenseNumber,
		LicenseExpiryDate: req.LicenseExpiryDate,
		CompletionRate:    req.CompletionRate,
		SafetyScore:       req.SafetyScore,
		Complaints:        req.Complaints,
	}
	if req.Status != nil {
		status := models.DriverStatus(*req.Status)
		input.Status = &status
	}

	driver, err := h.drivers.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, driver)
}

// Delete handles DELETE /api/drivers/{id}.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.drivers.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "driver deleted")
}
