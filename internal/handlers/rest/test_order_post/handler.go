package test_order_post

import (
	"encoding/json"
	"net/http"

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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.TestOrderRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.Create(r.Context(), dto.ToProductLines(request.Items))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("test order create failed")
		dto.WriteError(w, h.log, err)
		return
	}

	dto.WriteJSON(w, h.log, http.StatusCreated, dto.FromCreatedOrder(order))
}
