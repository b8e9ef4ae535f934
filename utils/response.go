package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"goodjob/apperr"
	"goodjob/logger"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("encode response", zap.Error(err))
	}
}

// RespondWithAppError writes err as {code, message}. Errors that are not
// AppErrors are logged and hidden behind a generic 500.
func RespondWithAppError(w http.ResponseWriter, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("code", appErr.Code), zap.Error(err))
	}
	RespondWithJSON(w, appErr.HTTPStatus, map[string]string{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// DecodeJSON decodes a request body of at most 1 MB into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return apperr.BadRequest("invalid JSON payload")
	}
	return nil
}
