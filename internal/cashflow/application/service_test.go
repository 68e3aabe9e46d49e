package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	cashflow "financeiro-cloud/internal/cashflow/domain"
)

type fakeSnapshotReader struct {
	snapshots []cashflow.BankAccountSnapshot
	err       error
}

func (f *fakeSnapshotReader) ListSnapshots(_ context.Context, _ string) ([]cashflow.BankAccountSnapshot, error) {
	return f.snapshots, f.err
}

type fakeMovementSource struct {
	receivables []cashflow.SourceRow
	payables    []cashflow.SourceRow
	err         error
}

func (f *fakeMovementSource) ListReceivables(_ context.Context, _ string) ([]cashflow.SourceRow, error) {
	return f.receivables, f.err
}

func (f *fakeMovementSource) ListPayables(_ context.Context, _ string) ([]cashflow.SourceRow, error) {
	return f.payables, f.err
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return value
}

func TestFluxoServiceCompute(t *testing.T) {
	snapshots := &fakeSnapshotReader{snapshots: []cashflow.BankAccountSnapshot{
		{ID: "acc-1", InitialBalance: dec(t, "1000")},
	}}
	movements := &fakeMovementSource{
		receivables: []cashflow.SourceRow{
			{Amount: dec(t, "500"), DueDate: "2026-03-03", SettlementDate: "2026-03-03", Status: cashflow.StatusRealized, BankAccountID: "acc-1"},
		},
		payables: []cashflow.SourceRow{
			{Amount: dec(t, "200"), DueDate: "2026-03-05", Status: cashflow.StatusPending, BankAccountID: "acc-1"},
		},
	}
	clock := fixedClock{now: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)}

	svc, err := NewFluxoService(snapshots, movements, clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Compute(context.Background(), "tenant-a", Query{
		Start: "2026-03-01",
		End:   "2026-03-07",
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(result.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(result.Days))
	}
	if !result.OpeningBalance.Equal(dec(t, "1000")) {
		t.Fatalf("opening balance = %s", result.OpeningBalance)
	}
	if !result.ClosingRealizedBalance.Equal(dec(t, "1500")) {
		t.Fatalf("closing realized = %s", result.ClosingRealizedBalance)
	}
	if !result.ClosingProjectedBalance.Equal(dec(t, "1300")) {
		t.Fatalf("closing projected = %s", result.ClosingProjectedBalance)
	}
}

func TestFluxoServiceOverdueExcluded(t *testing.T) {
	snapshots := &fakeSnapshotReader{snapshots: []cashflow.BankAccountSnapshot{
		{ID: "acc-1", InitialBalance: dec(t, "1000")},
	}}
	movements := &fakeMovementSource{
		receivables: []cashflow.SourceRow{
			{Amount: dec(t, "500"), DueDate: "2026-03-03", SettlementDate: "2026-03-03", Status: cashflow.StatusRealized, BankAccountID: "acc-1"},
		},
		payables: []cashflow.SourceRow{
			{Amount: dec(t, "200"), DueDate: "2026-03-05", Status: cashflow.StatusOverdue, BankAccountID: "acc-1"},
		},
	}
	clock := fixedClock{now: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}

	svc, err := NewFluxoService(snapshots, movements, clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Compute(context.Background(), "tenant-a", Query{
		Start: "2026-03-01",
		End:   "2026-03-07",
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !result.ClosingRealizedBalance.Equal(dec(t, "1500")) {
		t.Fatalf("closing realized = %s", result.ClosingRealizedBalance)
	}
	if !result.ClosingProjectedBalance.Equal(dec(t, "1500")) {
		t.Fatalf("closing projected = %s", result.ClosingProjectedBalance)
	}
	if !result.Totals.ProjectedOutflow.IsZero() {
		t.Fatalf("projected outflow = %s, want zero", result.Totals.ProjectedOutflow)
	}
}

func TestFluxoServiceAccountSelection(t *testing.T) {
	snapshots := &fakeSnapshotReader{snapshots: []cashflow.BankAccountSnapshot{
		{ID: "acc-1", InitialBalance: dec(t, "100")},
		{ID: "acc-2", InitialBalance: dec(t, "900")},
	}}
	movements := &fakeMovementSource{
		receivables: []cashflow.SourceRow{
			{Amount: dec(t, "50"), DueDate: "2026-03-02", SettlementDate: "2026-03-02", Status: cashflow.StatusRealized, BankAccountID: "acc-1"},
			{Amount: dec(t, "70"), DueDate: "2026-03-02", SettlementDate: "2026-03-02", Status: cashflow.StatusRealized, BankAccountID: "acc-2"},
		},
	}
	clock := fixedClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

	svc, err := NewFluxoService(snapshots, movements, clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Compute(context.Background(), "tenant-a", Query{
		Start:      "2026-03-01",
		End:        "2026-03-03",
		AccountIDs: []string{"acc-1"},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !result.OpeningBalance.Equal(dec(t, "100")) {
		t.Fatalf("opening balance = %s", result.OpeningBalance)
	}
	if !result.ClosingRealizedBalance.Equal(dec(t, "150")) {
		t.Fatalf("closing realized = %s", result.ClosingRealizedBalance)
	}
}

func TestFluxoServiceBadDates(t *testing.T) {
	svc, err := NewFluxoService(&fakeSnapshotReader{}, &fakeMovementSource{}, fixedClock{now: time.Now()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Compute(context.Background(), "tenant-a", Query{Start: "not-a-date", End: "2026-03-07"})
	if !errors.Is(err, cashflow.ErrUnparseableDate) {
		t.Fatalf("expected ErrUnparseableDate, got %v", err)
	}

	_, err = svc.Compute(context.Background(), "tenant-a", Query{Start: "2026-03-07", End: "2026-03-01"})
	if !errors.Is(err, cashflow.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestFluxoServiceReaderError(t *testing.T) {
	readFailure := errors.New("boom")
	svc, err := NewFluxoService(&fakeSnapshotReader{err: readFailure}, &fakeMovementSource{}, fixedClock{now: time.Now()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Compute(context.Background(), "tenant-a", Query{Start: "2026-03-01", End: "2026-03-07"})
	if !errors.Is(err, readFailure) {
		t.Fatalf("expected reader error, got %v", err)
	}
}
