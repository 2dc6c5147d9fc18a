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

type PropertyHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewPropertyHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{ledger: l, hub: hub, logger: logger}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Address       string `json:"address"`
		Color         string `json:"color"`
		Floors        int    `json:"floors"`
		UnitsPerFloor int    `json:"units_per_floor"`
		UnitType      string `json:"unit_type"`
		DefaultRent   int64  `json:"default_rent"`
		Bedrooms      int    `json:"bedrooms"`
		Bathrooms     int    `json:"bathrooms"`
		Conditions    string `json:"conditions"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	landlordID := auth.UserID(r.Context())
	property, err := h.ledger.AddProperty(landlordID, ledger.PropertyInput{
		Name:          strings.TrimSpace(req.Name),
		Address:       req.Address,
		Color:         req.Color,
		Floors:        req.Floors,
		UnitsPerFloor: req.UnitsPerFloor,
		UnitType:      req.UnitType,
		DefaultRent:   req.DefaultRent,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Conditions:    req.Conditions,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(landlordID, ws.NewMessage("property", "created", property.ID, nil))
	writeJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	properties, err := h.ledger.Properties().ListByLandlord(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if properties == nil {
		properties = []model.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	property, err := h.ledger.Properties().GetByID(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if property == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.ledger.Units().ListByProperty(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if units == nil {
		units = []model.Unit{}
	}
	writeJSON(w, http.StatusOK, units)
}

// VacantUnits lists every vacant unit across the landlord's portfolio, used
// during tenant onboarding and assignment.
func (h *PropertyHandler) VacantUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.ledger.Units().ListVacantByLandlord(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if units == nil {
		units = []model.Unit{}
	}
	writeJSON(w, http.StatusOK, units)
}
