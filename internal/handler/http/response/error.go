package response

import (
	"errors"
	"net/http"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/auth"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/checkin"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/user"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/geo"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Authorization errors carry no hint about entity existence
	case errors.Is(err, checkin.ErrNotAuthorizedForClient):
		Forbidden(w, "You are not assigned to this client")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// The report's employee filter must name a member of the caller's team
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found in your team")

	// Checkin lifecycle errors
	case errors.Is(err, checkin.ErrAlreadyCheckedIn):
		Conflict(w, "You already have an active check-in")
	case errors.Is(err, checkin.ErrNoActiveCheckin):
		Conflict(w, "You have no active check-in")

	// Coordinate validation
	case errors.Is(err, geo.ErrInvalidCoordinate):
		ValidationError(w, map[string]string{"position": err.Error()})

	// Transient store failures, distinguished so callers retry only the
	// safe class
	case errors.Is(err, checkin.ErrStoreTimeout):
		GatewayTimeout(w, "Store did not respond in time, safe to retry")
	case errors.Is(err, checkin.ErrCommitIndeterminate):
		CommitIndeterminate(w, "Commit status unknown, re-query current state before retrying")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
