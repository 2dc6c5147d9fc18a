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

type NoticeHandler struct {
	ledger *ledger.Ledger
	hub    *ws.Hub
	logger *slog.Logger
}

func NewNoticeHandler(l *ledger.Ledger, hub *ws.Hub, logger *slog.Logger) *NoticeHandler {
	return &NoticeHandler{ledger: l, hub: hub, logger: logger}
}

func (h *NoticeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LandlordID string `json:"landlord_id"`
		ToID       string `json:"to_id"`
		Subject    string `json:"subject"`
		Message    string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	fromID := auth.UserID(r.Context())
	landlordID := req.LandlordID
	if landlordID == "" && auth.IsLandlord(r.Context()) {
		landlordID = fromID
	}

	notice, err := h.ledger.SendNotice(landlordID, fromID, req.ToID, strings.TrimSpace(req.Subject), req.Message)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(notice.LandlordID, ws.NewMessage("notice", "created", notice.ID,
		map[string]any{"to_id": notice.ToID}))
	writeJSON(w, http.StatusCreated, notice)
}

// Broadcast fans a notice out to every tenant of the authenticated landlord.
func (h *NoticeHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	landlordID := auth.UserID(r.Context())
	notices, err := h.ledger.BroadcastNotice(landlordID, strings.TrimSpace(req.Subject), req.Message)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(landlordID, ws.NewMessage("notice", "broadcast", "",
		map[string]any{"count": len(notices)}))
	writeJSON(w, http.StatusCreated, notices)
}

func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		notices []model.Notice
		err     error
	)
	if auth.IsLandlord(r.Context()) {
		notices, err = h.ledger.Notices().ListByLandlord(auth.UserID(r.Context()))
	} else {
		notices, err = h.ledger.Notices().ListByParticipant(auth.UserID(r.Context()))
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if notices == nil {
		notices = []model.Notice{}
	}
	writeJSON(w, http.StatusOK, notices)
}

func (h *NoticeHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	notice, err := h.ledger.UpdateNoticeStatus(r.PathValue("id"), req.Status, req.Note, auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.hub.Broadcast(notice.LandlordID, ws.NewMessage("notice", notice.Status, notice.ID, nil))
	writeJSON(w, http.StatusOK, notice)
}

func (h *NoticeHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notice, err := h.ledger.MarkNoticeRead(r.PathValue("id"), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, notice)
}

func (h *NoticeHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.ledger.Notices().StatusHistory(r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if history == nil {
		history = []model.NoticeStatusChange{}
	}
	writeJSON(w, http.StatusOK, history)
}
