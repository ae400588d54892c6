// Package api provides HTTP handlers for the workout compiler.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/waynenilsen/safeworkout/internal/errors"
)

// Response is the standard success response envelope.
type Response struct {
	Data interface{} `json:"data"`
}

// ErrorDetail represents the structured error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func readJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeDomainError maps a domain error to the standard error envelope, using
// internal/errors' category to pick the HTTP status code.
func writeDomainError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	code := domainErrorToCode(err)
	message := apperrors.GetMessage(err)

	if apperrors.IsInternal(err) {
		log.Printf("internal error: %v", err)
	}

	writeError(w, status, code, message)
}

func mapErrorToStatus(err error) int {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsConflict(err):
		return http.StatusConflict
	case apperrors.IsForbidden(err):
		return http.StatusForbidden
	case apperrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apperrors.IsBadRequest(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// domainErrorToCode converts a domain error to one of the boundary error
// codes (CONFIG_UNAVAILABLE, PROFILE_INVALID, LIBRARY_EMPTY_FOR_USER,
// PERSISTENCE_FAILED), falling back to the generic category code for
// everything else.
func domainErrorToCode(err error) string {
	if apperrors.IsStateError(err) {
		switch apperrors.GetStateErrorCode(err) {
		case apperrors.CodeConfigUnreachable, apperrors.CodeConfigMalformed:
			return "CONFIG_UNAVAILABLE"
		case apperrors.CodeProfileInvariant:
			return "PROFILE_INVALID"
		case apperrors.CodeAssemblyNoCandidates, apperrors.CodeAssemblyQuotaUnmet:
			return "LIBRARY_EMPTY_FOR_USER"
		case apperrors.CodePersistenceRetryExhausted:
			return "PERSISTENCE_FAILED"
		default:
			return "INTERNAL_ERROR"
		}
	}
	switch {
	case apperrors.IsNotFound(err):
		return "NOT_FOUND"
	case apperrors.IsValidation(err):
		return "PROFILE_INVALID"
	case apperrors.IsConflict(err):
		return "CONFLICT"
	case apperrors.IsForbidden(err):
		return "FORBIDDEN"
	case apperrors.IsUnauthorized(err):
		return "UNAUTHORIZED"
	case apperrors.IsBadRequest(err):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_ERROR"
	}
}
