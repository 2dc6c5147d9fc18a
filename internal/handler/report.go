package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/munsiapp/munsi/internal/auth"
	"github.com/munsiapp/munsi/internal/ledger"
	ws "github.com/munsiapp/munsi/internal/websocket"
)

type ReportHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewReportHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{ledger: l, hub: hub, logger: logger}
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.Dashboard(auth.UserID(r.Context()), r.PathValue("month"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ReportHandler) DueList(w http.ResponseWriter, r *http.Request) {
	due, err := h.ledger.DueTenants(auth.UserID(r.Context()), r.PathValue("month"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if due == nil {
		due = []ledger.DueTenant{}
	}
	writeJSON(w, http.StatusOK, due)
}

func (h *ReportHandler) MonthTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.ledger.MonthlyTotals(auth.UserID(r.Context()), r.PathValue("month"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *ReportHandler) Trend(w http.ResponseWriter, r *http.Request) {
	months := 6
	if q := r.URL.Query().Get("months"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 36 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "months must be 1-36"})
			return
		}
		months = n
	}

	trend, err := h.ledger.Trend(auth.UserID(r.Context()), r.PathValue("month"), months)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func (h *ReportHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledger.OccupancyByProperty(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if report == nil {
		report = []ledger.PropertyOccupancy{}
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Audit(w http.ResponseWriter, r *http.Request) {
	findings, err := h.ledger.Audit(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if findings == nil {
		findings = []ledger.Inconsistency{}
	}
	writeJSON(w, http.StatusOK, findings)
}

func (h *ReportHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	landlordID := auth.UserID(r.Context())
	repaired, err := h.ledger.Reconcile(landlordID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if repaired == nil {
		repaired = []ledger.Inconsistency{}
	}
	if len(repaired) > 0 {
		h.hub.Broadcast(landlordID, ws.NewMessage("occupancy", "reconciled", "",
			map[string]any{"repaired": len(repaired)}))
	}
	writeJSON(w, http.StatusOK, repaired)
}
