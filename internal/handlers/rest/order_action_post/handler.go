package order_action_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"orderboard/internal/entities"
	"orderboard/internal/handlers/rest/dto"
	"orderboard/internal/service/board"
	"orderboard/internal/service/lifecycle"
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
	vars := mux.Vars(r)

	orderID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		dto.WriteError(w, h.log, lifecycle.ErrInvalidOrderID)
		return
	}

	// тело необязательно: decline, done и cancel минут не требуют
	var request dto.CommandRequest
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil && !errors.Is(err, io.EOF) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cmd := entities.Command{
		Kind:    entities.CommandKind(vars["action"]),
		OrderID: orderID,
	}
	if request.Minutes != nil {
		cmd.Minutes, err = lifecycle.ParseMinutes(request.Minutes)
		if err != nil {
			dto.WriteError(w, h.log, err)
			return
		}
	}

	result, err := h.service.Execute(r.Context(), cmd)
	if err != nil {
		h.log.With(
			logger.NewField("order", orderID),
			logger.NewField("action", cmd.Kind),
			logger.NewField("error", err),
		).Warn("order action failed")
		if errors.Is(err, board.ErrClosed) {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		dto.WriteError(w, h.log, err)
		return
	}

	response := dto.CommandResponse{
		OrderID: orderID,
		Action:  cmd.Kind.String(),
	}
	if result != nil {
		response.TotalDelayMinutes = result.TotalDelayMinutes
	}
	dto.WriteJSON(w, h.log, http.StatusOK, response)
}
