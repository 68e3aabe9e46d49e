package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	billing "financeiro-cloud/internal/billing/domain"
	"financeiro-cloud/internal/billing/infrastructure/memory"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, fixedClock) {
	t.Helper()
	clock := fixedClock{now: time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)}
	svc, err := NewService(memory.NewTituloRepository(), clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, clock
}

func validTitulo() billing.Titulo {
	return billing.Titulo{
		TenantID:    "tenant-a",
		Kind:        billing.KindReceivable,
		Description: "NF 1234",
		Amount:      decimal.NewFromInt(250),
		DueDate:     time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateTitulo(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validTitulo())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Status != billing.StatusOpen {
		t.Fatalf("status = %s, want open", created.Status)
	}
	if !created.CreatedAt.Equal(clock.now) {
		t.Fatalf("created_at = %s", created.CreatedAt)
	}
}

func TestCreateTituloValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*billing.Titulo)
		want   error
	}{
		{"empty tenant", func(ti *billing.Titulo) { ti.TenantID = "" }, billing.ErrEmptyTenant},
		{"bad kind", func(ti *billing.Titulo) { ti.Kind = "loan" }, billing.ErrInvalidKind},
		{"zero amount", func(ti *billing.Titulo) { ti.Amount = decimal.Zero }, billing.ErrInvalidAmount},
		{"negative amount", func(ti *billing.Titulo) { ti.Amount = decimal.NewFromInt(-5) }, billing.ErrInvalidAmount},
		{"no due date", func(ti *billing.Titulo) { ti.DueDate = time.Time{} }, billing.ErrMissingDueDate},
	}
	for _, tc := range cases {
		titulo := validTitulo()
		tc.mutate(&titulo)
		if _, err := svc.Create(ctx, titulo); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestSettleTitulo(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validTitulo())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	settled, err := svc.Settle(ctx, "tenant-a", created.ID, time.Time{})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if settled.Status != billing.StatusSettled {
		t.Fatalf("status = %s", settled.Status)
	}
	if !settled.SettlementDate.Equal(clock.now) {
		t.Fatalf("settlement date = %s, want clock now", settled.SettlementDate)
	}

	if _, err := svc.Settle(ctx, "tenant-a", created.ID, time.Time{}); !errors.Is(err, billing.ErrAlreadySettled) {
		t.Fatalf("double settle: got %v", err)
	}
}

func TestSettleOverdueTitulo(t *testing.T) {
	repo := memory.NewTituloRepository()
	clock := fixedClock{now: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)}
	svc, err := NewService(repo, clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	created, err := svc.Create(ctx, validTitulo())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.MarkOverdue(ctx, "tenant-a", []string{created.ID}, clock.now); err != nil {
		t.Fatalf("mark overdue: %v", err)
	}

	// Overdue títulos accept late payment.
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	settled, err := svc.Settle(ctx, "tenant-a", created.ID, date)
	if err != nil {
		t.Fatalf("settle overdue: %v", err)
	}
	if settled.Status != billing.StatusSettled {
		t.Fatalf("status = %s", settled.Status)
	}
	if !settled.SettlementDate.Equal(date) {
		t.Fatalf("settlement date = %s, want %s", settled.SettlementDate, date)
	}
}

func TestCancelTitulo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validTitulo())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	canceled, err := svc.Cancel(ctx, "tenant-a", created.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if canceled.Status != billing.StatusCanceled {
		t.Fatalf("status = %s", canceled.Status)
	}

	if _, err := svc.Settle(ctx, "tenant-a", created.ID, time.Time{}); !errors.Is(err, billing.ErrCanceled) {
		t.Fatalf("settle canceled: got %v", err)
	}
}

func TestGetAndListTitulos(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validTitulo())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	payable := validTitulo()
	payable.Kind = billing.KindPayable
	if _, err := svc.Create(ctx, payable); err != nil {
		t.Fatalf("create payable: %v", err)
	}

	if _, err := svc.Get(ctx, "tenant-a", "tit-missing"); !errors.Is(err, billing.ErrNotFound) {
		t.Fatalf("missing get: got %v", err)
	}
	if _, err := svc.Get(ctx, "tenant-b", first.ID); !errors.Is(err, billing.ErrNotFound) {
		t.Fatalf("cross-tenant get: got %v", err)
	}

	receivables, err := svc.List(ctx, "tenant-a", billing.ListFilter{Kind: billing.KindReceivable})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(receivables) != 1 {
		t.Fatalf("expected 1 receivable, got %d", len(receivables))
	}

	all, err := svc.List(ctx, "tenant-a", billing.ListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 títulos, got %d", len(all))
	}
}
