package notification_read_post

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"orderboard/internal/handlers/rest/dto"
	"orderboard/internal/service/feed"
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
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		dto.WriteError(w, h.log, feed.ErrInvalidNotificationID)
		return
	}

	err = h.service.MarkOne(r.Context(), id)
	if err != nil {
		dto.WriteError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
