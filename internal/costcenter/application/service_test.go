package application

import (
	"context"
	"errors"
	"testing"
	"time"

	costcenter "financeiro-cloud/internal/costcenter/domain"
	"financeiro-cloud/internal/costcenter/infrastructure/memory"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestCostCenterLifecycle(t *testing.T) {
	svc, err := NewService(memory.NewCostCenterRepository(), fixedClock{now: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.Create(ctx, costcenter.CostCenter{TenantID: "tenant-a", Name: "Operações"}); !errors.Is(err, costcenter.ErrEmptyCode) {
		t.Fatalf("codeless create: got %v", err)
	}
	if _, err := svc.Create(ctx, costcenter.CostCenter{TenantID: "tenant-a", Code: "OPS"}); !errors.Is(err, costcenter.ErrEmptyName) {
		t.Fatalf("nameless create: got %v", err)
	}

	created, err := svc.Create(ctx, costcenter.CostCenter{TenantID: "tenant-a", Code: "OPS", Name: "Operações"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || !created.Active {
		t.Fatalf("created = %+v", created)
	}

	got, err := svc.Get(ctx, "tenant-a", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "OPS" {
		t.Fatalf("code = %s", got.Code)
	}

	if err := svc.Deactivate(ctx, "tenant-a", created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := svc.List(ctx, "tenant-a", true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active centers, got %d", len(active))
	}

	if _, err := svc.Get(ctx, "tenant-b", created.ID); !errors.Is(err, costcenter.ErrNotFound) {
		t.Fatalf("cross-tenant get: got %v", err)
	}
}
