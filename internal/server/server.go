package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/munsiapp/munsi/internal/auth"
	"github.com/munsiapp/munsi/internal/handler"
	"github.com/munsiapp/munsi/internal/ledger"
	"github.com/munsiapp/munsi/internal/middleware"
	"github.com/munsiapp/munsi/internal/snapshot"
	ws "github.com/munsiapp/munsi/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	ledger      *ledger.Ledger
	landlordH   *handler.LandlordHandler
	tenantH     *handler.TenantHandler
	propertyH   *handler.PropertyHandler
	paymentH    *handler.PaymentHandler
	noticeH     *handler.NoticeHandler
	agreementH  *handler.AgreementHandler
	expenseH    *handler.ExpenseHandler
	reportH     *handler.ReportHandler
	snapshotH   *handler.SnapshotHandler
	snapshotMgr *snapshot.Manager
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, snapshotMgr *snapshot.Manager, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	l := ledger.New(db, logger.With("component", "ledger"))

	return &Server{
		db:          db,
		hub:         hub,
		ledger:      l,
		landlordH:   handler.NewLandlordHandler(l, hub, logger.With("component", "landlord")),
		tenantH:     handler.NewTenantHandler(l, hub, logger.With("component", "tenant")),
		propertyH:   handler.NewPropertyHandler(l, hub, logger.With("component", "property")),
		paymentH:    handler.NewPaymentHandler(l, hub, logger.With("component", "payment")),
		noticeH:     handler.NewNoticeHandler(l, hub, logger.With("component", "notice")),
		agreementH:  handler.NewAgreementHandler(l, hub, logger.With("component", "agreement")),
		expenseH:    handler.NewExpenseHandler(l, hub, logger.With("component", "expense")),
		reportH:     handler.NewReportHandler(l, hub, logger.With("component", "report")),
		snapshotH:   handler.NewSnapshotHandler(snapshotMgr, logger.With("component", "snapshot")),
		snapshotMgr: snapshotMgr,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Ledger exposes the core for cleanup and maintenance tasks.
func (s *Server) Ledger() *ledger.Ledger {
	return s.ledger
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Everything else requires the identity headers stamped by the edge proxy
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)
	outerMux.Handle("/", middleware.RequireIdentity(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) landlordOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.RequireLandlord(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Registration is rate limited: it mints invite codes and account rows
	mux.HandleFunc("POST /api/landlords", s.rateLimitedHandler(s.landlordH.Register))
	mux.HandleFunc("POST /api/tenants/register", s.rateLimitedHandler(s.tenantH.Register))

	// Landlord profile and discovery
	mux.HandleFunc("GET /api/landlords/me", s.landlordH.Me)
	mux.HandleFunc("PUT /api/landlords/me/contact", s.landlordH.UpdateContact)
	mux.HandleFunc("GET /api/landlords/lookup", s.landlordH.Lookup)
	mux.HandleFunc("GET /api/action-log", s.landlordOnly(s.landlordH.ActionLog))

	// Properties and units
	mux.HandleFunc("POST /api/properties", s.landlordOnly(s.propertyH.Create))
	mux.HandleFunc("GET /api/properties", s.landlordOnly(s.propertyH.List))
	mux.HandleFunc("GET /api/properties/{id}", s.propertyH.Get)
	mux.HandleFunc("GET /api/properties/{id}/units", s.propertyH.ListUnits)
	mux.HandleFunc("GET /api/units/vacant", s.landlordOnly(s.propertyH.VacantUnits))

	// Tenants and occupancy
	mux.HandleFunc("POST /api/tenants", s.landlordOnly(s.tenantH.Create))
	mux.HandleFunc("GET /api/tenants", s.landlordOnly(s.tenantH.List))
	mux.HandleFunc("GET /api/tenants/{id}", s.tenantH.Get)
	mux.HandleFunc("POST /api/tenants/{id}/assign", s.landlordOnly(s.tenantH.Assign))
	mux.HandleFunc("POST /api/tenants/{id}/unassign", s.landlordOnly(s.tenantH.Unassign))
	mux.HandleFunc("POST /api/tenants/{id}/rent", s.landlordOnly(s.tenantH.ChangeRent))
	mux.HandleFunc("GET /api/tenants/{id}/rent-history", s.tenantH.RentHistory)

	// Payments
	mux.HandleFunc("POST /api/payments", s.paymentH.Create)
	mux.HandleFunc("PUT /api/payments/{id}", s.landlordOnly(s.paymentH.Update))
	mux.HandleFunc("DELETE /api/payments/{id}", s.landlordOnly(s.paymentH.Delete))
	mux.HandleFunc("GET /api/tenants/{id}/payments", s.paymentH.ListByTenant)
	mux.HandleFunc("GET /api/payments/month/{month}", s.landlordOnly(s.paymentH.ListByMonth))

	// Notices
	mux.HandleFunc("POST /api/notices", s.noticeH.Create)
	mux.HandleFunc("POST /api/notices/broadcast", s.landlordOnly(s.noticeH.Broadcast))
	mux.HandleFunc("GET /api/notices", s.noticeH.List)
	mux.HandleFunc("PUT /api/notices/{id}/status", s.noticeH.UpdateStatus)
	mux.HandleFunc("POST /api/notices/{id}/read", s.noticeH.MarkRead)
	mux.HandleFunc("GET /api/notices/{id}/history", s.noticeH.StatusHistory)

	// Agreements
	mux.HandleFunc("POST /api/agreements", s.landlordOnly(s.agreementH.Create))
	mux.HandleFunc("POST /api/agreements/{id}/end", s.landlordOnly(s.agreementH.End))
	mux.HandleFunc("GET /api/agreements", s.agreementH.List)

	// Expenses
	mux.HandleFunc("POST /api/expenses", s.landlordOnly(s.expenseH.Create))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.landlordOnly(s.expenseH.Delete))
	mux.HandleFunc("GET /api/expenses", s.landlordOnly(s.expenseH.List))

	// Reports
	mux.HandleFunc("GET /api/reports/{month}/dashboard", s.landlordOnly(s.reportH.Dashboard))
	mux.HandleFunc("GET /api/reports/{month}/due", s.landlordOnly(s.reportH.DueList))
	mux.HandleFunc("GET /api/reports/{month}/totals", s.landlordOnly(s.reportH.MonthTotals))
	mux.HandleFunc("GET /api/reports/{month}/trend", s.landlordOnly(s.reportH.Trend))
	mux.HandleFunc("GET /api/reports/occupancy", s.landlordOnly(s.reportH.Occupancy))
	mux.HandleFunc("GET /api/reports/audit", s.landlordOnly(s.reportH.Audit))
	mux.HandleFunc("POST /api/reports/reconcile", s.landlordOnly(s.reportH.Reconcile))

	// Snapshots (operator only)
	mux.HandleFunc("POST /api/snapshots", s.landlordOnly(s.snapshotH.RunNow))
	mux.HandleFunc("GET /api/snapshots", s.landlordOnly(s.snapshotH.History))

	// Live change feed: landlords watch their own account, tenants the
	// account they belong to
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.resolveWatchAccount))
}

func (s *Server) resolveWatchAccount(r *http.Request) (string, error) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		return "", fmt.Errorf("no identity")
	}
	if auth.IsLandlord(r.Context()) || auth.IsAdmin(r.Context()) {
		return userID, nil
	}
	tenant, err := s.ledger.Tenants().GetByID(userID)
	if err != nil {
		return "", err
	}
	if tenant == nil {
		return "", fmt.Errorf("tenant %s not registered", userID)
	}
	return tenant.LandlordID, nil
}
