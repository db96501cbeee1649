package handlers

import (
	"net/http"
	"time"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/fleet"
)

// FuelHandler handles fuel log requests.
type FuelHandler struct {
	fuel *fleet.FuelService
}

// NewFuelHandler creates a new fuel handler.
func NewFuelHandler(fuel *fleet.FuelService) *FuelHandler {
	return &FuelHandler{fuel: fuel}
}

type fuelRequest struct {
	VehicleID string     `json:"vehicle"`
	Liters    float64    `json:"liters"`
	Cost      float64    `json:"cost"`
	Date      *time.Time `json:"date"`
}

// Create handles POST /api/fuel.
func (h *FuelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req fuelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := fleet.CreateFuelInput{
		VehicleID: req.VehicleID,
		Liters:    req.Liters,
		Cost:      req.Cost,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	fuelLog, err := h.fuel.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, fuelLog)
}

// List handles GET /api/fuel.
func (h *FuelHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	query := r.URL.Query()
	filter := db.FuelFilter{
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

	logs, total, err := h.fuel.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondList(w, logs, page, limit, total)
}

// Get handles GET /api/fuel/{id}.
func (h *FuelHandler) Get(w http.ResponseWriter, r *http.Request) {
	fuelLog, err := h.fuel.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, fuelLog)
}
