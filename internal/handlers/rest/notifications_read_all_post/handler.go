package notifications_read_all_post

import (
	"net/http"

	"orderboard/internal/handlers/rest/dto"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.service.MarkAll(r.Context())
	if err != nil {
		dto.WriteError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
