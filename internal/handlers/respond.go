// Package handlers exposes the fleet services over HTTP. Every response
// uses the same envelope: {"success": bool, "message": ..., "data": ...}.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/isha-gohel181/FleetFlow/internal/fleet"
)

type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{Success: false, Message: message})
}

// writeServiceError maps the typed service errors onto HTTP status codes.
// Unknown errors are logged and reported as 500 without leaking details.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		notFound   *fleet.NotFoundError
		validation *fleet.ValidationError
		capacity   *fleet.CapacityExceededError
		missing    *fleet.MissingFieldError
		expired    *fleet.ExpiredLicenseError
		transition *fleet.InvalidTransitionError
		available  *fleet.UnavailableError
		conflict   *fleet.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation),
		errors.As(err, &capacity),
		errors.As(err, &missing),
		errors.As(err, &expired),
		errors.As(err, &transition),
		errors.As(err, &available):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.WithError(err).Error("request failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}

// pagination is the paging block attached to every list response.
type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type listData struct {
	Items      interface{} `json:"items"`
	Pagination pagination  `json:"pagination"`
}

func respondList(w http.ResponseWriter, items interface{}, page, limit int, total int64) {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	respond(w, http.StatusOK, listData{
		Items: items,
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 10
	if value, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && value > 0 {
		page = value
	}
	if value, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && value > 0 {
		limit = value
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
