package test_order_cancel_post

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"orderboard/internal/handlers/rest/dto"
	"orderboard/internal/service/testorder"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		dto.WriteError(w, h.log, testorder.ErrInvalidOrderID)
		return
	}

	err = h.service.Cancel(r.Context(), id)
	if err != nil {
		h.log.With(
			logger.NewField("order", id),
			logger.NewField("error", err),
		).Warn("test order cancel failed")
		dto.WriteError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
