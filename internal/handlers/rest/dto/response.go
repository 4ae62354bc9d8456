package dto

import (
	"encoding/json"
	"net/http"

	"orderboard/internal/pkg/apperr"
	"orderboard/pkg/logger"
)

type errorLogger interface {
	With(fields ...logger.Field) logger.Logger
}

// WriteJSON пишет v с указанным статусом. Ошибка кодирования только логируется:
// статус к этому моменту уже отправлен.
func WriteJSON(w http.ResponseWriter, log errorLogger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// WriteError переводит err в статус и пишет {"error": ...}.
func WriteError(w http.ResponseWriter, log errorLogger, err error) {
	WriteJSON(w, log, apperr.HTTPStatus(err), ErrorResponse{
		Error:  err.Error(),
		Kind:   apperr.Kind(err),
		Reason: apperr.Reason(err),
	})
}
