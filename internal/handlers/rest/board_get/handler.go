package board_get

import (
	"net/http"
	"strconv"

	"orderboard/internal/handlers/rest/dto"
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

// ServeHTTP отдает текущее представление доски. С ?refresh=true сначала
// перечитывает заказы; ошибка обновления попадает в last_error.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("refresh"); raw != "" {
		refresh, err := strconv.ParseBool(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if refresh {
			if err := h.service.Refresh(r.Context()); err != nil {
				h.log.With(
					logger.NewField("error", err),
				).Warn("board refresh on request failed")
			}
		}
	}

	dto.WriteJSON(w, h.log, http.StatusOK, dto.FromBoardView(h.service.View()))
}
