package ping_get

import (
	"net/http"

	"orderboard/internal/handlers/rest/dto"
)

type Handler struct {
	log       handlerLogger
	readiness Readiness
}

func New(log handlerLogger, readiness Readiness) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:       handlerLog,
		readiness: readiness,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	message := "pong"
	if !h.readiness.Linked() {
		message = "pong (not linked to any restaurant)"
	}

	dto.WriteJSON(w, h.log, http.StatusOK, dto.PingResponse{
		Message: &message,
	})
}
