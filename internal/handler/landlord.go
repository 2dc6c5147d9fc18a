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

type LandlordHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewLandlordHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *LandlordHandler {
	return &LandlordHandler{ledger: l, hub: hub, logger: logger}
}

func (h *LandlordHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		Address   string `json:"address"`
		Location  string `json:"location"`
		HoldingNo string `json:"holding_no"`
		TinNo     string `json:"tin_no"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	landlord, err := h.ledger.RegisterLandlord(auth.UserID(r.Context()), ledger.LandlordInput{
		Name:      strings.TrimSpace(req.Name),
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Location:  req.Location,
		HoldingNo: req.HoldingNo,
		TinNo:     req.TinNo,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, landlord)
}

func (h *LandlordHandler) Me(w http.ResponseWriter, r *http.Request) {
	landlord, err := h.ledger.Landlords().GetByID(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if landlord == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not registered"})
		return
	}
	writeJSON(w, http.StatusOK, landlord)
}

func (h *LandlordHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := auth.UserID(r.Context())
	landlord, err := h.ledger.Landlords().UpdateContact(userID, req.Phone, req.Email, req.Address)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if landlord == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not registered"})
		return
	}
	h.hub.Broadcast(userID, ws.NewMessage("landlord", "updated", userID, nil))
	writeJSON(w, http.StatusOK, landlord)
}

// Lookup finds a landlord for tenant onboarding, either by exact invite code
// or by phone number fragment. Only name, phone, and invite code are exposed.
func (h *LandlordHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	type match struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		InviteCode string `json:"invite_code"`
	}

	if code := r.URL.Query().Get("invite"); code != "" {
		landlord, err := h.ledger.Landlords().GetByInvite(code)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if landlord == nil {
			writeJSON(w, http.StatusOK, []match{})
			return
		}
		writeJSON(w, http.StatusOK, []match{{
			ID: landlord.ID, Name: landlord.Name, Phone: landlord.Phone, InviteCode: landlord.InviteCode,
		}})
		return
	}

	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invite or phone query is required"})
		return
	}
	landlords, err := h.ledger.Landlords().FindByPhone(phone)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	matches := make([]match, 0, len(landlords))
	for _, l := range landlords {
		matches = append(matches, match{ID: l.ID, Name: l.Name, Phone: l.Phone, InviteCode: l.InviteCode})
	}
	writeJSON(w, http.StatusOK, matches)
}

// ActionLog returns the most recent audit entries.
func (h *LandlordHandler) ActionLog(w http.ResponseWriter, r *http.Request) {
	logs, err := h.ledger.ActionLogs().ListRecent(100)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if logs == nil {
		logs = []model.ActionLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
