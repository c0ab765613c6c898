package handlers

import (
	"net/http"

	"github.com/ndiaz/fitlink/internal/middleware"
	"github.com/ndiaz/fitlink/internal/store"
)

type StatsHandler struct {
	Store store.Store
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.OverviewStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Me(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.UserStats(middleware.UserID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
