package handler

import (
	"log/slog"
	"net/http"

	"github.com/munsiapp/munsi/internal/auth"
	"github.com/munsiapp/munsi/internal/ledger"
	"github.com/munsiapp/munsi/internal/model"
	ws "github.com/munsiapp/munsi/internal/websocket"
)

type AgreementHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewAgreementHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *AgreementHandler {
	return &AgreementHandler{ledger: l, hub: hub, logger: logger}
}

func (h *AgreementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TenantID       string `json:"tenant_id"`
		StartDate      string `json:"start_date"`
		DurationMonths int    `json:"duration_months"`
		Terms          string `json:"terms"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	landlordID := auth.UserID(r.Context())
	agreement, err := h.ledger.CreateAgreement(landlordID, ledger.AgreementInput{
		TenantID:       req.TenantID,
		StartDate:      req.StartDate,
		DurationMonths: req.DurationMonths,
		Terms:          req.Terms,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(landlordID, ws.NewMessage("agreement", "created", agreement.ID, nil))
	writeJSON(w, http.StatusCreated, agreement)
}

func (h *AgreementHandler) End(w http.ResponseWriter, r *http.Request) {
	agreement, err := h.ledger.EndAgreement(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(agreement.LandlordID, ws.NewMessage("agreement", "ended", agreement.ID, nil))
	writeJSON(w, http.StatusOK, agreement)
}

func (h *AgreementHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		agreements []model.Agreement
		err        error
	)
	if auth.IsLandlord(r.Context()) {
		agreements, err = h.ledger.Agreements().ListByLandlord(auth.UserID(r.Context()))
	} else {
		agreements, err = h.ledger.Agreements().ListByTenant(auth.UserID(r.Context()))
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if agreements == nil {
		agreements = []model.Agreement{}
	}
	writeJSON(w, http.StatusOK, agreements)
}
