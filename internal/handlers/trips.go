package handlers

import (
	"net/http"

	"github.com/isha-gohel181/FleetFlow/internal/fleet"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// TripHandler handles trip requests.
type TripHandler struct {
	trips *fleet.TripService
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(trips *fleet.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

type createTripRequest struct {
	VehicleID     string  `json:"vehicle"`
	DriverID      string  `json:"driver"`
	CargoWeight   float64 `json:"cargoWeight"`
	FromLocation  string  `json:"fromLocation"`
	ToLocation    string  `json:"toLocation"`
	StartOdometer float64 `json:"startOdometer"`
	Revenue       float64 `json:"revenue"`
}

// Create handles POST /api/trips.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := h.trips.Create(r.Context(), fleet.CreateTripInput{
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		CargoWeight:   req.CargoWeight,
		FromLocation:  req.FromLocation,
		ToLocation:    req.ToLocation,
		StartOdometer: req.StartOdometer,
		Revenue:       req.Revenue,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, trip)
}

// List handles GET /api/trips.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	query := r.URL.Query()

	trips, total, err := h.trips.List(r.Context(), fleet.ListTripsInput{
		Status:      models.TripStatus(query.Get("status")),
		VehicleID:   query.Get("vehicle"),
		DriverID:    query.Get("driver"),
		VehicleType: models.VehicleType(query.Get("vehicleType")),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondList(w, trips, page, limit, total)
}

// Get handles GET /api/trips/{id}.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, trip)
}

type updateTripStatusRequest struct {
	Status      string   `json:"status"`
	EndOdometer *float64 `json:"endOdometer"`
}

// UpdateStatus handles PATCH /api/trips/{id}/status. This is the only way
// to move a trip through its lifecycle.
func (h *TripHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateTripStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := h.trips.UpdateStatus(r.Context(), r.PathValue("id"), models.TripStatus(req.Status), req.EndOdometer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, trip)
}
