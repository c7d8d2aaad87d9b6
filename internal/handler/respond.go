package handler

import (
	"encoding/json"
	"net/http"

	"scorehub/pkg/errors"
	"scorehub/pkg/logger"
)

// writeSuccess writes the standard success envelope.
func writeSuccess(w http.ResponseWriter, log *logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps any error onto the standard error envelope, logging server
// faults at error level and client faults at warn.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := errors.From(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.WithError(appErr).Error("Request failed")
	} else {
		log.WithError(appErr).Warn("Request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	errObj := map[string]interface{}{
		"type":    string(appErr.Type),
		"message": appErr.Message,
	}
	if appErr.Details != nil {
		errObj["details"] = appErr.Details
	}

	response := map[string]interface{}{
		"success": false,
		"error":   errObj,
	}
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.WithError(encodeErr).Error("Failed to encode error response")
	}
}
