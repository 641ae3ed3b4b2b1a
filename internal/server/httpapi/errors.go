package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shastore/shastore/internal/common"
)

// errorBody is the error envelope for every non-2xx response:
// {"detail": "<short string>"}.
type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, errorBody{Detail: detail})
}

// writeServiceError translates a service-layer error into the nearest HTTP
// status. Anything unrecognized is a 500 with a generic message; internals
// never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrUnsupportedAlgorithm),
		errors.Is(err, common.ErrDuplicateUsername),
		errors.Is(err, common.ErrInvalidUsername),
		errors.Is(err, common.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
