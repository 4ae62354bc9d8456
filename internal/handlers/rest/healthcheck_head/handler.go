package healthcheck_head

import (
	"net/http"
	"sync/atomic"
)

// Readiness выполняется, когда доска применила первый снимок.
type Readiness interface {
	Ready() bool
}

type Handler struct {
	isShuttingDown *atomic.Bool
	readiness      Readiness
}

func New(isShuttingDown *atomic.Bool, readiness Readiness) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		readiness:      readiness,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() || !h.readiness.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
