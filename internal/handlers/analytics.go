package handlers

import (
	"net/http"

	"github.com/isha-gohel181/FleetFlow/internal/fleet"
)

// AnalyticsHandler handles analytics requests.
type AnalyticsHandler struct {
	analytics *fleet.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analytics *fleet.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard handles GET /api/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, dashboard)
}

// Vehicle handles GET /api/analytics/vehicles/{id}.
func (h *AnalyticsHandler) Vehicle(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.analytics.VehicleAnalytics(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, analytics)
}

// FuelEfficiency handles GET /api/analytics/fuel-efficiency.
func (h *AnalyticsHandler) FuelEfficiency(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.FuelEfficiencyReport(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, report)
}

// Trends handles GET /api/analytics/trends.
func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.analytics.MonthlyTrends(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond(w, http.StatusOK, trends)
}
