package handler

import (
	"log/slog"
	"net/http"

	"github.com/munsiapp/munsi/internal/auth"
	"github.com/munsiapp/munsi/internal/ledger"
	"github.com/munsiapp/munsi/internal/model"
	ws "github.com/munsiapp/munsi/internal/websocket"
)

type PaymentHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewPaymentHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{ledger: l, hub: hub, logger: logger}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TenantID string `json:"tenant_id"`
		Amount   int64  `json:"amount"`
		Method   string `json:"method"`
		MonthKey string `json:"month_key"`
		Status   string `json:"status"`
		Type     string `json:"type"`
		Note     string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.ledger.RecordPayment(ledger.PaymentInput{
		TenantID:   req.TenantID,
		Amount:     req.Amount,
		Method:     req.Method,
		MonthKey:   req.MonthKey,
		Status:     req.Status,
		Type:       req.Type,
		Note:       req.Note,
		RecordedBy: auth.UserID(r.Context()),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(payment.LandlordID, ws.NewMessage("payment", "created", payment.ID,
		map[string]any{"month_key": payment.MonthKey, "tenant_id": payment.TenantID}))
	writeJSON(w, http.StatusCreated, payment)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64  `json:"amount"`
		Note   string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := h.ledger.EditPayment(r.PathValue("id"), req.Amount, req.Note)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(payment.LandlordID, ws.NewMessage("payment", "updated", payment.ID, nil))
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	payment, err := h.ledger.Payments().GetByID(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.ledger.DeletePayment(id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if payment != nil {
		h.hub.Broadcast(payment.LandlordID, ws.NewMessage("payment", "deleted", id, nil))
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *PaymentHandler) ListByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("id")
	var (
		payments []model.Payment
		err      error
	)
	if monthKey := r.URL.Query().Get("month"); monthKey != "" {
		payments, err = h.ledger.Payments().ListByTenantMonth(tenantID, monthKey)
	} else {
		payments, err = h.ledger.Payments().ListByTenant(tenantID)
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	payments, err := h.ledger.Payments().ListByLandlordMonth(auth.UserID(r.Context()), r.PathValue("month"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}
