package checkin

import (
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

// ========================================
// CHECKIN DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string  `json:"-"` // from token claims, never from the body
	ClientID   string  `json:"client_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.ClientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_id",
			Message: "client_id is required",
		})
	} else if !validator.IsValidUUID(r.ClientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_id",
			Message: "client_id must be a valid UUID",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyCheckinsRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`
}

func (r *MyCheckinsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckInResponse struct {
	CheckinID   string  `json:"checkin_id"`
	EmployeeID  string  `json:"employee_id"`
	ClientID    string  `json:"client_id"`
	DistanceKm  float64 `json:"distance_km"`
	Warning     bool    `json:"warning"`
	CheckinTime string  `json:"checkin_time"`
	Notes       *string `json:"notes,omitempty"`
}

type CheckOutResponse struct {
	CheckinID    string  `json:"checkin_id"`
	CheckoutTime string  `json:"checkout_time"`
	HoursWorked  float64 `json:"hours_worked"`
}

type CheckinResponse struct {
	CheckinID    string  `json:"checkin_id"`
	EmployeeID   string  `json:"employee_id"`
	ClientID     string  `json:"client_id"`
	ClientName   *string `json:"client_name,omitempty"`
	CheckinTime  string  `json:"checkin_time"`
	CheckoutTime *string `json:"checkout_time,omitempty"`
	DistanceKm   float64 `json:"distance_km"`
	Status       Status  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
}
