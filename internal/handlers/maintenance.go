package handlers

import (
	"net/http"
	"time"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/fleet"
)

// MaintenanceHandler handles maintenance log requests.
type MaintenanceHandler struct {
	maintenance *fleet.MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(maintenance *fleet.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

type maintenanceRequest struct {
	VehicleID   *string    `json:"vehicle"`
	Description *string    `json:"description"`
	Cost        *float64   `json:"cost"`
	Date        *time.Time `json:"date"`
}

// Create handles POST /api/maintenance.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := fleet.CreateMaintenanceInput{}
	if req.VehicleID != nil {
		input.VehicleID = *req.VehicleID
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Cost != nil {
		input.Cost = *req.Cost
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	maintenanceLog, err := h.maintenance.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, maintenanceLog)
}

// List handles GET /api/maintenance.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	query := r.URL.Query()
	filter := db.MaintenanceFilter{
		VehicleID: query.Get("vehicle"),
		Page:      page,
		Limit:     limit,
	}
	if value, err := time.Parse(time.RFC3339, query.Get("startDate")); err == nil {
		filter.StartDate = &value
	}
	if value, err := time.Parse(time.RFC3339, query.Get("endDate")); err == nil {
		filter.EndDate = &value
	}

	logs, total, err := h.maintenance.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondList(w, logs, page, limit, total)
}

// Get handles GET /api/maintenance/{id}.
func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	maintenanceLog, err := h.maintenance.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, maintenanceLog)
}

// Update handles PUT /api/maintenance/{id}.
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	maintenanceLog, err := h.maintenance.Update(r.Context(), r.PathValue("id"), fleet.UpdateMaintenanceInput{
		Description: req.Description,
		Cost:        req.Cost,
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, maintenanceLog)
}

// Complete handles POST /api/maintenance/{id}/complete, releasing the
// vehicle back to service.
func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.maintenance.Complete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, vehicle)
}

// Delete handles DELETE /api/maintenance/{id}.
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenance.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "maintenance log deleted")
}
