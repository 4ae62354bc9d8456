package notifications_get

import (
	"errors"
	"net/http"
	"strconv"

	"orderboard/internal/handlers/rest/dto"
	"orderboard/internal/service/feed"
	"orderboard/pkg/logger"
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

// ServeHTTP отдает ленту уведомлений. ?open=true берет аренду просмотра
// и сразу перечитывает ленту, ?open=false отпускает аренду.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("open"); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if !open {
			h.service.Close()
		} else if err := h.service.Open(r.Context()); err != nil {
			if errors.Is(err, feed.ErrClosed) {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			h.log.With(
				logger.NewField("error", err),
			).Warn("notifications fetch on open failed")
		}
	}

	dto.WriteJSON(w, h.log, http.StatusOK, dto.FromFeedView(h.service.View()))
}
