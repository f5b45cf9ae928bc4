package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/checkin"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/handler/http/response"
)

type CheckinHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
	GetMyCheckins(w http.ResponseWriter, r *http.Request)
}

type checkinHandlerImpl struct {
	checkinService checkin.CheckinService
}

func NewCheckinHandler(checkinService checkin.CheckinService) CheckinHandler {
	return &checkinHandlerImpl{
		checkinService: checkinService,
	}
}

// CheckIn implements CheckinHandler.
func (h *checkinHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to resolve employee from token", "error", err)
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	var req checkin.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode check-in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.checkinService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

// CheckOut implements CheckinHandler.
func (h *checkinHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to resolve employee from token", "error", err)
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	req := checkin.CheckOutRequest{EmployeeID: employeeID}

	result, err := h.checkinService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetActive implements CheckinHandler.
func (h *checkinHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to resolve employee from token", "error", err)
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	result, err := h.checkinService.GetActive(r.Context(), employeeID)
	if err != nil {
		// "No active check-in" is a plain miss on this read endpoint, not
		// a lifecycle conflict.
		if errors.Is(err, checkin.ErrNoActiveCheckin) {
			response.NotFound(w, "No active check-in")
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyCheckins implements CheckinHandler.
func (h *checkinHandlerImpl) GetMyCheckins(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to resolve employee from token", "error", err)
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	req := checkin.MyCheckinsRequest{
		EmployeeID: employeeID,
		Date:       r.URL.Query().Get("date"),
	}

	result, err := h.checkinService.GetMyCheckins(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
