package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/munsiapp/munsi/internal/auth"
	"github.com/munsiapp/munsi/internal/ledger"
	"github.com/munsiapp/munsi/internal/model"
	ws "github.com/munsiapp/munsi/internal/websocket"
)

type ExpenseHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewExpenseHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{ledger: l, hub: hub, logger: logger}
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PropertyID  *string `json:"property_id"`
		Category    string  `json:"category"`
		Amount      int64   `json:"amount"`
		Description string  `json:"description"`
		Date        string  `json:"date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	landlordID := auth.UserID(r.Context())
	expense, err := h.ledger.AddExpense(landlordID, ledger.ExpenseInput{
		PropertyID:  req.PropertyID,
		Category:    strings.TrimSpace(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(landlordID, ws.NewMessage("expense", "created", expense.ID, nil))
	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.ledger.DeleteExpense(id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(auth.UserID(r.Context()), ws.NewMessage("expense", "deleted", id, nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.ledger.Expenses().ListByLandlord(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}
