package handlers

import (
	"net/http"

	"github.com/isha-gohel181/FleetFlow/internal/db"
	"github.com/isha-gohel181/FleetFlow/internal/fleet"
	"github.com/isha-gohel181/FleetFlow/internal/models"
)

// VehicleHandler handles vehicle requests.
type VehicleHandler struct {
	vehicles *fleet.VehicleService
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles *fleet.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type vehicleRequest struct {
	Name         *string  `json:"name"`
	LicensePlate *string  `json:"licensePlate"`
	VehicleType  *string  `json:"vehicleType"`
	MaxCapacity  *float64 `json:"maxCapacity"`
	Odometer     *float64 `json:"odometer"`
	Status       *string  `json:"status"`
}

// Create handles POST /api/vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := fleet.CreateVehicleInput{}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.LicensePlate != nil {
		input.LicensePlate = *req.LicensePlate
	}
	if req.VehicleType != nil {
		input.VehicleType = models.VehicleType(*req.VehicleType)
	}
	if req.MaxCapacity != nil {
		input.MaxCapacity = *req.MaxCapacity
	}
	if req.Odometer != nil {
		input.Odometer = *req.Odometer
	}
	if req.Status != nil {
		input.Status = models.VehicleStatus(*req.Status)
	}

	vehicle, err := h.vehicles.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusCreated, vehicle)
}

// List handles GET /api/vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)
	filter := db.VehicleFilter{
		Status:      models.VehicleStatus(r.URL.Query().Get("status")),
		VehicleType: models.VehicleType(r.URL.Query().Get("vehicleType")),
		Page:        page,
		Limit:       limit,
	}

	vehicles, total, err := h.vehicles.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondList(w, vehicles, page, limit, total)
}

// Get handles GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, vehicle)
}

// Update handles PUT /api/vehicles/{id}.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := fleet.UpdateVehicleInput{
		Name:         req.Name,
		LicensePlate: req.LicensePlate,
		MaxCapacity:  req.MaxCapacity,
		Odometer:     req.Odometer,
	}
	if req.VehicleType != nil {
		vehicleType := models.VehicleType(*req.VehicleType)
		input.VehicleType = &vehicleType
	}
	if req.Status != nil {
		status := models.VehicleStatus(*req.Status)
		input.Status = &status
	}

	vehicle, err := h.vehicles.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, vehicle)
}

// Delete handles DELETE /api/vehicles/{id}.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "vehicle deleted")
}
