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

type TenantHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewTenantHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{ledger: l, hub: hub, logger: logger}
}

type tenantRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	NID     string `json:"nid"`
	Members int    `json:"members"`
}

func (t tenantRequest) input() ledger.TenantInput {
	return ledger.TenantInput{
		Name:    strings.TrimSpace(t.Name),
		Phone:   t.Phone,
		Email:   t.Email,
		NID:     t.NID,
		Members: t.Members,
	}
}

// Register handles tenant self-registration with a landlord's invite code,
// optionally claiming a vacant unit in the same request.
func (h *TenantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		tenantRequest
		InviteCode string `json:"invite_code"`
		UnitID     string `json:"unit_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	tenant, err := h.ledger.RegisterTenant(auth.UserID(r.Context()), req.InviteCode, req.UnitID, req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(tenant.LandlordID, ws.NewMessage("tenant", "registered", tenant.ID, nil))
	writeJSON(w, http.StatusCreated, tenant)
}

// Create adds a tenant on behalf of the authenticated landlord.
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		tenantRequest
		UnitID     string `json:"unit_id"`
		Rent       int64  `json:"rent"`
		MoveInDate string `json:"move_in_date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	landlordID := auth.UserID(r.Context())
	tenant, err := h.ledger.AddManualTenant(landlordID, req.UnitID, req.Rent, req.MoveInDate, req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(landlordID, ws.NewMessage("tenant", "created", tenant.ID, nil))
	writeJSON(w, http.StatusCreated, tenant)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.ledger.Tenants().GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if tenant == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tenant not found"})
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.ledger.Tenants().ListByLandlord(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if tenants == nil {
		tenants = []model.Tenant{}
	}
	writeJSON(w, http.StatusOK, tenants)
}

func (h *TenantHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitID     string `json:"unit_id"`
		Rent       int64  `json:"rent"`
		Advance    int64  `json:"advance"`
		MoveInDate string `json:"move_in_date"`
		Notes      string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	tenant, err := h.ledger.Assign(r.PathValue("id"), req.UnitID, req.Rent, req.Advance, req.MoveInDate, req.Notes)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(tenant.LandlordID, ws.NewMessage("tenant", "assigned", tenant.ID,
		map[string]any{"unit_id": req.UnitID}))
	writeJSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.ledger.Unassign(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(tenant.LandlordID, ws.NewMessage("tenant", "unassigned", tenant.ID, nil))
	writeJSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) ChangeRent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rent   int64  `json:"rent"`
		Reason string `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	tenant, err := h.ledger.ChangeRent(r.PathValue("id"), req.Rent, req.Reason)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(tenant.LandlordID, ws.NewMessage("tenant", "rent_changed", tenant.ID,
		map[string]any{"rent": req.Rent}))
	writeJSON(w, http.StatusOK, tenant)
}

func (h *TenantHandler) RentHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.ledger.Tenants().RentHistory(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if history == nil {
		history = []model.RentChange{}
	}
	writeJSON(w, http.StatusOK, history)
}
