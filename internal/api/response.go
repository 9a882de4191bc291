package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zapponejosh/tanggalan/internal/calendar"
)

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, "NOT_FOUND")
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, "BAD_REQUEST")
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

// calendarErrors maps engine sentinels to a status and error code.
var calendarErrors = []struct {
	err    error
	status int
	code   string
}{
	{calendar.ErrPasaranMismatch, http.StatusUnprocessableEntity, "PASARAN_MISMATCH"},
	{calendar.ErrFieldMismatch, http.StatusUnprocessableEntity, "FIELD_MISMATCH"},
	{calendar.ErrFormatMismatch, http.StatusBadRequest, "FORMAT_MISMATCH"},
	{calendar.ErrMissingField, http.StatusBadRequest, "MISSING_FIELD"},
	{calendar.ErrUnknownMonthName, http.StatusBadRequest, "UNKNOWN_MONTH"},
	{calendar.ErrInvalidWeton, http.StatusBadRequest, "INVALID_WETON"},
	{calendar.ErrOutOfRange, http.StatusBadRequest, "OUT_OF_RANGE"},
	{calendar.ErrInvalidOffset, http.StatusBadRequest, "INVALID_OFFSET"},
}

// WriteCalendarError writes the response for an error returned by the
// calendar package. Unknown errors become 500s.
func WriteCalendarError(w http.ResponseWriter, err error) error {
	for _, e := range calendarErrors {
		if errors.Is(err, e.err) {
			return WriteError(w, e.status, err.Error(), e.code)
		}
	}
	return WriteInternalError(w, "Internal server error")
}
