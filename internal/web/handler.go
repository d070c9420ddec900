package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cexll/threadbot/internal/history"
	"github.com/cexll/threadbot/internal/thread"
)

// StatusProvider exposes the engine's view of the tracked thread.
type StatusProvider interface {
	Status() thread.Status
}

// Handler serves the read-only ops endpoints.
type Handler struct {
	service string
	status  StatusProvider
	history *history.Store
}

// NewHandler creates a new ops handler.
func NewHandler(service string, status StatusProvider, hist *history.Store) *Handler {
	return &Handler{
		service: service,
		status:  status,
		history: hist,
	}
}

// RegisterRoutes registers the ops routes.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/status", h.handleStatus).Methods("GET")
	r.HandleFunc("/ticks", h.handleTicks).Methods("GET")
	r.HandleFunc("/", h.handleRoot).Methods("GET")
}

type statusResponse struct {
	Service      string          `json:"service"`
	ActiveDate   string          `json:"active_date,omitempty"`
	ActivePostID string          `json:"active_post_id,omitempty"`
	LastTick     *history.Record `json:"last_tick,omitempty"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"service": h.service,
		"status":  "running",
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := h.status.Status()
	resp := statusResponse{
		Service:      h.service,
		ActiveDate:   st.ActiveDate,
		ActivePostID: st.ActivePostID,
	}
	if last, ok := h.history.Last(); ok {
		resp.LastTick = &last
	}
	writeJSON(w, resp)
}

func (h *Handler) handleTicks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.history.Recent())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
