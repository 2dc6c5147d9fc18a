package ledger

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/munsiapp/munsi/internal/database"
	"github.com/munsiapp/munsi/internal/model"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedLandlord(t *testing.T, l *Ledger) *model.Landlord {
	t.Helper()
	landlord, err := l.RegisterLandlord("landlord-1", LandlordInput{
		Name:  "Rahim Uddin",
		Phone: "+8801712345678",
	})
	if err != nil {
		t.Fatalf("failed to register landlord: %v", err)
	}
	return landlord
}

func seedProperty(t *testing.T, l *Ledger, landlordID string) (*model.Property, []model.Unit) {
	t.Helper()
	prop, err := l.AddProperty(landlordID, PropertyInput{
		Name:          "Green Villa",
		Address:       "12 Lake Road, Dhaka",
		Floors:        2,
		UnitsPerFloor: 2,
		UnitType:      UnitTypeFlat,
		DefaultRent:   5000,
	})
	if err != nil {
		t.Fatalf("failed to add property: %v", err)
	}
	units, err := l.Units().ListByProperty(prop.ID)
	if err != nil {
		t.Fatalf("failed to list units: %v", err)
	}
	return prop, units
}

func seedTenant(t *testing.T, l *Ledger, landlordID string) *model.Tenant {
	t.Helper()
	tenant, err := l.AddManualTenant(landlordID, "", 0, "", TenantInput{
		Name:  "Karim Mia",
		Phone: "+8801898765432",
	})
	if err != nil {
		t.Fatalf("failed to add tenant: %v", err)
	}
	return tenant
}

func TestAddPropertyGeneratesUnits(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)

	if len(units) != 4 {
		t.Fatalf("expected 4 units, got %d", len(units))
	}
	labels := make(map[string]bool)
	for _, u := range units {
		labels[u.UnitNo] = true
		if !u.IsVacant {
			t.Errorf("new unit %s should be vacant", u.UnitNo)
		}
		if u.DefaultRent != 5000 {
			t.Errorf("unit %s default rent = %d, want 5000", u.UnitNo, u.DefaultRent)
		}
	}
	for _, want := range []string{"1A", "1B", "2A", "2B"} {
		if !labels[want] {
			t.Errorf("missing unit label %s", want)
		}
	}
}

func TestUnitLabel(t *testing.T) {
	tests := []struct {
		unitType string
		floor    int
		pos      int
		want     string
	}{
		{UnitTypeFlat, 1, 1, "1A"},
		{UnitTypeFlat, 3, 2, "3B"},
		{UnitTypeRoom, 1, 1, "101"},
		{UnitTypeRoom, 2, 12, "212"},
	}
	for _, tt := range tests {
		if got := UnitLabel(tt.unitType, tt.floor, tt.pos); got != tt.want {
			t.Errorf("UnitLabel(%s, %d, %d) = %s, want %s", tt.unitType, tt.floor, tt.pos, got, tt.want)
		}
	}
}

func TestRegisterTenantByInvite(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)

	tenant, err := l.RegisterTenant("tenant-1", landlord.InviteCode, units[0].ID, TenantInput{
		Name:  "Karim Mia",
		Phone: "+8801898765432",
	})
	if err != nil {
		t.Fatalf("failed to register tenant: %v", err)
	}
	if tenant.LandlordID != landlord.ID {
		t.Errorf("tenant landlord = %s, want %s", tenant.LandlordID, landlord.ID)
	}
	if tenant.UnitID == nil || *tenant.UnitID != units[0].ID {
		t.Fatal("tenant should be assigned to the selected unit")
	}
	if tenant.Rent != 5000 {
		t.Errorf("tenant rent = %d, want unit default 5000", tenant.Rent)
	}

	unit, err := l.Units().GetByID(units[0].ID)
	if err != nil {
		t.Fatalf("failed to get unit: %v", err)
	}
	if unit.IsVacant {
		t.Error("selected unit should be occupied after registration")
	}

	if _, err := l.RegisterTenant("tenant-2", "MN-XXXX", "", TenantInput{Name: "Nobody"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown invite code: got %v, want ErrNotFound", err)
	}
}

func TestAssignAndUnassign(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)

	assigned, err := l.Assign(tenant.ID, units[0].ID, 6000, 12000, "2026-01-01", "")
	if err != nil {
		t.Fatalf("failed to assign: %v", err)
	}
	if assigned.UnitID == nil || *assigned.UnitID != units[0].ID {
		t.Fatal("tenant should reference the assigned unit")
	}
	if assigned.Rent != 6000 || assigned.Advance != 12000 {
		t.Errorf("tenancy terms = (%d, %d), want (6000, 12000)", assigned.Rent, assigned.Advance)
	}

	unit, _ := l.Units().GetByID(units[0].ID)
	if unit.IsVacant {
		t.Error("assigned unit should be occupied")
	}

	history, err := l.Tenants().RentHistory(tenant.ID)
	if err != nil {
		t.Fatalf("failed to read rent history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 rent history entry, got %d", len(history))
	}
	if history[0].Reason != "initial" || history[0].PrevRent != nil {
		t.Errorf("initial entry = (%s, %v), want (initial, nil)", history[0].Reason, history[0].PrevRent)
	}

	// Retrying the identical assign must not double-append the audit trail.
	if _, err := l.Assign(tenant.ID, units[0].ID, 6000, 12000, "2026-01-01", ""); err != nil {
		t.Fatalf("identical assign should be a no-op, got %v", err)
	}
	history, _ = l.Tenants().RentHistory(tenant.ID)
	if len(history) != 1 {
		t.Errorf("idempotent re-assign appended history, got %d entries", len(history))
	}

	released, err := l.Unassign(tenant.ID)
	if err != nil {
		t.Fatalf("failed to unassign: %v", err)
	}
	if released.UnitID != nil || released.Rent != 0 || released.Advance != 0 {
		t.Error("unassign should clear unit reference and tenancy terms")
	}
	unit, _ = l.Units().GetByID(units[0].ID)
	if !unit.IsVacant {
		t.Error("released unit should be vacant")
	}

	history, _ = l.Tenants().RentHistory(tenant.ID)
	if len(history) != 1 {
		t.Errorf("rent history should survive unassignment, got %d entries", len(history))
	}

	if _, err := l.Unassign(tenant.ID); err != nil {
		t.Errorf("repeat unassign should be a no-op, got %v", err)
	}
}

func TestAssignRejectsOccupiedUnit(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	first := seedTenant(t, l, landlord.ID)
	second, err := l.AddManualTenant(landlord.ID, "", 0, "", TenantInput{Name: "Salma Begum"})
	if err != nil {
		t.Fatalf("failed to add second tenant: %v", err)
	}

	if _, err := l.Assign(first.ID, units[0].ID, 6000, 0, "", ""); err != nil {
		t.Fatalf("failed to assign first tenant: %v", err)
	}
	if _, err := l.Assign(second.ID, units[0].ID, 6000, 0, "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("assign to occupied unit: got %v, want ErrValidation", err)
	}
	if _, err := l.Assign(first.ID, units[1].ID, 6000, 0, "", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("assign already-assigned tenant elsewhere: got %v, want ErrValidation", err)
	}
}

func TestChangeRentAuditTrail(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)
	if _, err := l.Assign(tenant.ID, units[0].ID, 5000, 0, "", ""); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}

	updated, err := l.ChangeRent(tenant.ID, 5500, "yearly increase")
	if err != nil {
		t.Fatalf("failed to change rent: %v", err)
	}
	if updated.Rent != 5500 {
		t.Errorf("tenant rent = %d, want 5500", updated.Rent)
	}

	history, err := l.Tenants().RentHistory(tenant.ID)
	if err != nil {
		t.Fatalf("failed to read rent history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	last := history[len(history)-1]
	if last.Rent != 5500 || last.PrevRent == nil || *last.PrevRent != 5000 {
		t.Errorf("latest entry = (%d, %v), want (5500, 5000)", last.Rent, last.PrevRent)
	}
	if last.Reason != "yearly increase" {
		t.Errorf("latest reason = %s, want yearly increase", last.Reason)
	}

	// Current rent must always agree with the history tail.
	if updated.Rent != last.Rent {
		t.Error("current rent disagrees with history tail")
	}

	if _, err := l.ChangeRent(tenant.ID, 5500, "same again"); err != nil {
		t.Fatalf("same-value change should be a no-op, got %v", err)
	}
	history, _ = l.Tenants().RentHistory(tenant.ID)
	if len(history) != 2 {
		t.Errorf("no-op change appended history, got %d entries", len(history))
	}

	if _, err := l.Unassign(tenant.ID); err != nil {
		t.Fatalf("failed to unassign: %v", err)
	}
	if _, err := l.ChangeRent(tenant.ID, 6000, "after move-out"); !errors.Is(err, ErrValidation) {
		t.Errorf("rent change without tenancy: got %v, want ErrValidation", err)
	}
}

func TestPaymentAggregation(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)
	if _, err := l.Assign(tenant.ID, units[0].ID, 3000, 0, "", ""); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}

	pay := func(amount int64, ptype string) {
		t.Helper()
		_, err := l.RecordPayment(PaymentInput{
			TenantID: tenant.ID,
			Amount:   amount,
			Method:   model.MethodBkash,
			MonthKey: "2026-08",
			Type:     ptype,
		})
		if err != nil {
			t.Fatalf("failed to record payment: %v", err)
		}
	}

	pay(2000, model.TypeRent)

	assigned, _ := l.Tenants().GetByID(tenant.ID)
	paid, err := l.RentPaid(tenant.ID, "2026-08")
	if err != nil {
		t.Fatalf("failed to sum rent: %v", err)
	}
	if paid != 2000 {
		t.Errorf("rent paid = %d, want 2000", paid)
	}
	full, _ := l.IsFullyPaid(assigned, "2026-08")
	if full {
		t.Error("2000 of 3000 should not be fully paid")
	}

	due, err := l.DueTenants(landlord.ID, "2026-08")
	if err != nil {
		t.Fatalf("failed to list due tenants: %v", err)
	}
	if len(due) != 1 || due[0].Remaining != 1000 {
		t.Fatalf("due list = %+v, want one entry with 1000 remaining", due)
	}

	pay(1000, model.TypeRent)
	full, _ = l.IsFullyPaid(assigned, "2026-08")
	if !full {
		t.Error("2000 + 1000 should fully cover rent of 3000")
	}
	due, _ = l.DueTenants(landlord.ID, "2026-08")
	if len(due) != 0 {
		t.Errorf("due list should be empty after full payment, got %d", len(due))
	}

	// Overpayment is accepted and reported as-is, never clamped.
	pay(500, model.TypeRent)
	paid, _ = l.RentPaid(tenant.ID, "2026-08")
	if paid != 3500 {
		t.Errorf("rent paid after overpayment = %d, want 3500", paid)
	}

	// Utility payments stay out of the rent sum.
	pay(800, model.TypeElectricity)
	paid, _ = l.RentPaid(tenant.ID, "2026-08")
	if paid != 3500 {
		t.Errorf("rent paid = %d, utility must not count toward rent", paid)
	}
	utility, _ := l.UtilityPaid(tenant.ID, "2026-08", "")
	if utility != 800 {
		t.Errorf("utility paid = %d, want 800", utility)
	}

	if _, err := l.RecordPayment(PaymentInput{
		TenantID: tenant.ID, Amount: -5, Method: model.MethodCash, MonthKey: "2026-08",
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative amount: got %v, want ErrValidation", err)
	}
	if _, err := l.RecordPayment(PaymentInput{
		TenantID: tenant.ID, Amount: 100, Method: "paypal", MonthKey: "2026-08",
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown method: got %v, want ErrValidation", err)
	}
}

func TestMonthlyTotalsAndTrend(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)
	if _, err := l.Assign(tenant.ID, units[0].ID, 3000, 0, "", ""); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}

	for _, p := range []struct {
		amount int64
		month  string
		ptype  string
	}{
		{3000, "2026-07", model.TypeRent},
		{3000, "2026-08", model.TypeRent},
		{700, "2026-08", model.TypeGas},
	} {
		if _, err := l.RecordPayment(PaymentInput{
			TenantID: tenant.ID, Amount: p.amount, Method: model.MethodCash,
			MonthKey: p.month, Type: p.ptype,
		}); err != nil {
			t.Fatalf("failed to record payment: %v", err)
		}
	}
	if _, err := l.AddExpense(landlord.ID, ExpenseInput{
		Category: "repair", Amount: 1200, Date: "2026-08-15",
	}); err != nil {
		t.Fatalf("failed to add expense: %v", err)
	}

	totals, err := l.MonthlyTotals(landlord.ID, "2026-08")
	if err != nil {
		t.Fatalf("failed to compute totals: %v", err)
	}
	if totals.RentCollected != 3000 || totals.UtilityCollected != 700 {
		t.Errorf("collected = (%d, %d), want (3000, 700)", totals.RentCollected, totals.UtilityCollected)
	}
	if totals.Expenses != 1200 {
		t.Errorf("expenses = %d, want 1200", totals.Expenses)
	}
	if totals.NetProfit != 2500 {
		t.Errorf("net profit = %d, want 2500", totals.NetProfit)
	}

	trend, err := l.Trend(landlord.ID, "2026-08", 3)
	if err != nil {
		t.Fatalf("failed to compute trend: %v", err)
	}
	if len(trend) != 3 {
		t.Fatalf("expected 3 trend entries, got %d", len(trend))
	}
	if trend[0].MonthKey != "2026-06" || trend[2].MonthKey != "2026-08" {
		t.Errorf("trend keys = %s..%s, want 2026-06..2026-08 oldest first", trend[0].MonthKey, trend[2].MonthKey)
	}
	if trend[1].RentCollected != 3000 || trend[2].NetProfit != 2500 {
		t.Error("trend entries should repeat the monthly aggregation")
	}
}

func TestNoticeLifecycle(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	tenant := seedTenant(t, l, landlord.ID)

	n, err := l.SendNotice(landlord.ID, tenant.ID, landlord.ID, "Water leak", "Bathroom pipe leaking")
	if err != nil {
		t.Fatalf("failed to send notice: %v", err)
	}
	if n.Status != "open" || n.Read {
		t.Errorf("new notice = (%s, read=%v), want (open, false)", n.Status, n.Read)
	}

	history, err := l.Notices().StatusHistory(n.ID)
	if err != nil {
		t.Fatalf("failed to read status history: %v", err)
	}
	if len(history) != 1 || history[0].Status != "open" || history[0].ChangedBy != tenant.ID {
		t.Fatalf("initial history = %+v, want one open entry by sender", history)
	}

	n, err = l.UpdateNoticeStatus(n.ID, "in_progress", "plumber booked", landlord.ID)
	if err != nil {
		t.Fatalf("failed to update status: %v", err)
	}
	if n.Status != "in_progress" || n.StatusNote != "plumber booked" {
		t.Errorf("notice = (%s, %s), want (in_progress, plumber booked)", n.Status, n.StatusNote)
	}
	n, err = l.UpdateNoticeStatus(n.ID, "resolved", "fixed", landlord.ID)
	if err != nil {
		t.Fatalf("failed to resolve: %v", err)
	}

	history, _ = l.Notices().StatusHistory(n.ID)
	if len(history) != 3 {
		t.Fatalf("expected one history entry per transition, got %d", len(history))
	}

	// Resolved is terminal.
	if _, err := l.UpdateNoticeStatus(n.ID, "open", "", landlord.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("reopen resolved: got %v, want ErrValidation", err)
	}
	if _, err := l.UpdateNoticeStatus(n.ID, "in_progress", "", landlord.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("resolved -> in_progress: got %v, want ErrValidation", err)
	}
}

func TestMarkNoticeRead(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	tenant := seedTenant(t, l, landlord.ID)

	n, err := l.SendNotice(landlord.ID, landlord.ID, tenant.ID, "Rent reminder", "Rent due for August")
	if err != nil {
		t.Fatalf("failed to send notice: %v", err)
	}

	// Sender viewing its own ticket does not mark it read.
	n2, err := l.MarkNoticeRead(n.ID, landlord.ID)
	if err != nil {
		t.Fatalf("sender view failed: %v", err)
	}
	if n2.Read {
		t.Error("sender view should not mark the notice read")
	}

	n2, err = l.MarkNoticeRead(n.ID, tenant.ID)
	if err != nil {
		t.Fatalf("recipient view failed: %v", err)
	}
	if !n2.Read {
		t.Error("recipient view should mark the notice read")
	}
	if _, err := l.MarkNoticeRead(n.ID, tenant.ID); err != nil {
		t.Errorf("re-marking should be a no-op, got %v", err)
	}

	if _, err := l.MarkNoticeRead(n.ID, "stranger"); !errors.Is(err, ErrValidation) {
		t.Errorf("non-participant view: got %v, want ErrValidation", err)
	}
}

func TestBroadcastNotice(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	first := seedTenant(t, l, landlord.ID)
	second, err := l.AddManualTenant(landlord.ID, "", 0, "", TenantInput{Name: "Salma Begum"})
	if err != nil {
		t.Fatalf("failed to add second tenant: %v", err)
	}

	created, err := l.BroadcastNotice(landlord.ID, "Maintenance", "Water off Friday morning")
	if err != nil {
		t.Fatalf("failed to broadcast: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(created))
	}

	recipients := map[string]bool{}
	for _, n := range created {
		recipients[n.ToID] = true
		if n.Status != "open" {
			t.Errorf("broadcast ticket status = %s, want open", n.Status)
		}
		history, _ := l.Notices().StatusHistory(n.ID)
		if len(history) != 1 {
			t.Errorf("ticket %s history = %d entries, want 1", n.ID, len(history))
		}
	}
	if !recipients[first.ID] || !recipients[second.ID] {
		t.Error("each tenant should receive its own ticket")
	}

	// Each ticket has independent status.
	if _, err := l.UpdateNoticeStatus(created[0].ID, "resolved", "done", landlord.ID); err != nil {
		t.Fatalf("failed to resolve first ticket: %v", err)
	}
	other, _ := l.Notices().GetByID(created[1].ID)
	if other.Status != "open" {
		t.Error("resolving one broadcast ticket must not touch the others")
	}
}

func TestAuditAndReconcile(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)
	if _, err := l.Assign(tenant.ID, units[0].ID, 5000, 0, "", ""); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}

	findings, err := l.Audit(landlord.ID)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("clean state should audit clean, got %+v", findings)
	}

	// Corrupt both directions of the occupancy invariant directly.
	if err := l.Units().SetVacant(units[0].ID, true); err != nil {
		t.Fatalf("failed to corrupt occupied unit: %v", err)
	}
	if err := l.Units().SetVacant(units[1].ID, false); err != nil {
		t.Fatalf("failed to corrupt vacant unit: %v", err)
	}

	findings, err = l.Audit(landlord.ID)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", findings)
	}

	repaired, err := l.Reconcile(landlord.ID)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(repaired) != 2 {
		t.Fatalf("expected 2 repairs, got %d", len(repaired))
	}

	// Tenant side is authoritative: the referenced unit is occupied again,
	// the unreferenced one is vacant again.
	u0, _ := l.Units().GetByID(units[0].ID)
	u1, _ := l.Units().GetByID(units[1].ID)
	if u0.IsVacant {
		t.Error("referenced unit should be occupied after reconcile")
	}
	if !u1.IsVacant {
		t.Error("unreferenced unit should be vacant after reconcile")
	}

	findings, _ = l.Audit(landlord.ID)
	if len(findings) != 0 {
		t.Errorf("post-reconcile audit should be clean, got %+v", findings)
	}
}

func TestAgreementSnapshot(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)
	if _, err := l.Assign(tenant.ID, units[0].ID, 5000, 10000, "2026-01-01", ""); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}

	a, err := l.CreateAgreement(landlord.ID, AgreementInput{
		TenantID:       tenant.ID,
		StartDate:      "2026-01-01",
		DurationMonths: 12,
		Terms:          "No subletting",
	})
	if err != nil {
		t.Fatalf("failed to create agreement: %v", err)
	}
	if a.Rent != 5000 || a.Advance != 10000 || a.UnitID != units[0].ID {
		t.Errorf("snapshot = (%d, %d, %s), want current tenancy terms", a.Rent, a.Advance, a.UnitID)
	}
	if a.Status != "active" {
		t.Errorf("new agreement status = %s, want active", a.Status)
	}

	// Later rent changes never rewrite the snapshot.
	if _, err := l.ChangeRent(tenant.ID, 6000, "increase"); err != nil {
		t.Fatalf("failed to change rent: %v", err)
	}
	a2, _ := l.Agreements().GetByID(a.ID)
	if a2.Rent != 5000 {
		t.Errorf("agreement rent after change = %d, want frozen 5000", a2.Rent)
	}

	ended, err := l.EndAgreement(a.ID)
	if err != nil {
		t.Fatalf("failed to end agreement: %v", err)
	}
	if ended.Status != "ended" {
		t.Errorf("status = %s, want ended", ended.Status)
	}
	if _, err := l.EndAgreement(a.ID); err != nil {
		t.Errorf("re-ending should be a no-op, got %v", err)
	}

	unassigned := seedTenant(t, l, landlord.ID)
	if _, err := l.CreateAgreement(landlord.ID, AgreementInput{
		TenantID: unassigned.ID, StartDate: "2026-02-01", DurationMonths: 6,
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("agreement for unassigned tenant: got %v, want ErrValidation", err)
	}
}

func TestDashboard(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)
	if _, err := l.Assign(tenant.ID, units[0].ID, 4000, 0, "", ""); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}
	if _, err := l.RecordPayment(PaymentInput{
		TenantID: tenant.ID, Amount: 2500, Method: model.MethodNagad, MonthKey: "2026-08",
	}); err != nil {
		t.Fatalf("failed to record payment: %v", err)
	}

	summary, err := l.Dashboard(landlord.ID, "2026-08")
	if err != nil {
		t.Fatalf("failed to build dashboard: %v", err)
	}
	if summary.Properties != 1 || summary.Units != 4 || summary.OccupiedUnits != 1 {
		t.Errorf("portfolio counts = (%d, %d, %d), want (1, 4, 1)",
			summary.Properties, summary.Units, summary.OccupiedUnits)
	}
	if summary.RentCollected != 2500 {
		t.Errorf("rent collected = %d, want 2500", summary.RentCollected)
	}
	if summary.DueCount != 1 || summary.DueAmount != 1500 {
		t.Errorf("due = (%d, %d), want (1, 1500)", summary.DueCount, summary.DueAmount)
	}

	occ, err := l.OccupancyByProperty(landlord.ID)
	if err != nil {
		t.Fatalf("failed to build occupancy report: %v", err)
	}
	if len(occ) != 1 || occ[0].Occupied != 1 || occ[0].Vacant != 3 {
		t.Errorf("occupancy = %+v, want 1 occupied / 3 vacant", occ)
	}
}

func TestActionLogRecordsOperations(t *testing.T) {
	l := newTestLedger(t)
	landlord := seedLandlord(t, l)
	_, units := seedProperty(t, l, landlord.ID)
	tenant := seedTenant(t, l, landlord.ID)
	if _, err := l.Assign(tenant.ID, units[0].ID, 5000, 0, "", ""); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}

	logs, err := l.ActionLogs().ListRecent(10)
	if err != nil {
		t.Fatalf("failed to list action logs: %v", err)
	}
	actions := map[string]bool{}
	for _, entry := range logs {
		actions[entry.Action] = true
	}
	for _, want := range []string{"register", "add_property", "add_tenant", "assign"} {
		if !actions[want] {
			t.Errorf("missing action log entry %q", want)
		}
	}
}
