package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"financeiro-cloud/internal/auth"
	cashflowapp "financeiro-cloud/internal/cashflow/application"
	cashflow "financeiro-cloud/internal/cashflow/domain"
)

type stubSnapshots struct {
	snapshots []cashflow.BankAccountSnapshot
}

func (s stubSnapshots) ListSnapshots(_ context.Context, _ string) ([]cashflow.BankAccountSnapshot, error) {
	return s.snapshots, nil
}

type stubMovements struct {
	receivables []cashflow.SourceRow
	payables    []cashflow.SourceRow
}

func (s stubMovements) ListReceivables(_ context.Context, _ string) ([]cashflow.SourceRow, error) {
	return s.receivables, nil
}

func (s stubMovements) ListPayables(_ context.Context, _ string) ([]cashflow.SourceRow, error) {
	return s.payables, nil
}

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	snapshots := stubSnapshots{snapshots: []cashflow.BankAccountSnapshot{
		{ID: "acc-1", InitialBalance: decimal.NewFromInt(1000)},
	}}
	movements := stubMovements{
		receivables: []cashflow.SourceRow{
			{Amount: decimal.NewFromInt(500), DueDate: "2026-03-03", SettlementDate: "2026-03-03", Status: cashflow.StatusRealized, BankAccountID: "acc-1"},
		},
		payables: []cashflow.SourceRow{
			{Amount: decimal.NewFromInt(200), DueDate: "2026-03-05", Status: cashflow.StatusPending, BankAccountID: "acc-1"},
		},
	}
	svc, err := cashflowapp.NewFluxoService(snapshots, movements, stubClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(svc)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func doRequest(handler *Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), "tenant-a", auth.RoleViewer, "user-1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestCashflowHandlerCompute(t *testing.T) {
	handler := newTestHandler(t)

	resp := doRequest(handler, "/api/v1/cashflow?start=2026-03-01&end=2026-03-07")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result cashflow.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(result.Days))
	}
	if !result.ClosingRealizedBalance.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("closing realized = %s", result.ClosingRealizedBalance)
	}
	if !result.ClosingProjectedBalance.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("closing projected = %s", result.ClosingProjectedBalance)
	}
}

func TestCashflowHandlerBadRange(t *testing.T) {
	handler := newTestHandler(t)

	resp := doRequest(handler, "/api/v1/cashflow?start=2026-03-07&end=2026-03-01")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = doRequest(handler, "/api/v1/cashflow?start=bogus&end=2026-03-01")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCashflowHandlerExportXLSX(t *testing.T) {
	handler := newTestHandler(t)

	resp := doRequest(handler, "/api/v1/cashflow/export.xlsx?start=2026-03-01&end=2026-03-07")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type = %q", got)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("empty xlsx body")
	}
}

func TestCashflowHandlerExportPDF(t *testing.T) {
	handler := newTestHandler(t)

	resp := doRequest(handler, "/api/v1/cashflow/export.pdf?start=2026-03-01&end=2026-03-07")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("content type = %q", got)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("empty pdf body")
	}
}

func TestCashflowHandlerMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cashflow", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestCashflowHandlerAccountsParam(t *testing.T) {
	handler := newTestHandler(t)

	resp := doRequest(handler, "/api/v1/cashflow?start=2026-03-01&end=2026-03-07&accounts=acc-other")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var result cashflow.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !result.OpeningBalance.IsZero() {
		t.Fatalf("opening = %s, want zero for unknown account", result.OpeningBalance)
	}
}
