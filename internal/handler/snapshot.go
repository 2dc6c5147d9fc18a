package handler

import (
	"log/slog"
	"net/http"

	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/snapshot"
)

type SnapshotHandler struct {
	manager *snapshot.Manager
	logger  *slog.Logger
}

func NewSnapshotHandler(m *snapshot.Manager, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{manager: m, logger: logger}
}

func (h *SnapshotHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	if !h.manager.Enabled() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "snapshots not configured"})
		return
	}
	rec, err := h.manager.RunNow(r.Context())
	if err != nil {
		h.logger.Error("snapshot failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "snapshot failed"})
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *SnapshotHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.manager.History(50)
	if err != nil {
		h.logger.Error("snapshot history", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list snapshots"})
		return
	}
	if history == nil {
		history = []model.Snapshot{}
	}
	writeJSON(w, http.StatusOK, history)
}
