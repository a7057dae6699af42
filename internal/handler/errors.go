package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/drivetime/internal/domain"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// requestBody writes a 400 for a body rejected before validation
// (missing or malformed JSON).
func requestBody(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "bad_request", message)
}

// validationBody writes a 422 for a body that decoded but failed validation.
func validationBody(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
}

// tooLarge reports whether err came from http.MaxBytesReader.
func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// validationMessage turns validator field errors into "origin is required"
// style text and strips the sentinel prefix from domain errors.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				parts = append(parts, field+" is required")
			case "max":
				parts = append(parts, field+" must be at most "+fe.Param()+" characters")
			default:
				parts = append(parts, field+" is invalid")
			}
		}
		return strings.Join(parts, "; ")
	}
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}
