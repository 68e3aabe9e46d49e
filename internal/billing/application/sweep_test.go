package application

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	billing "financeiro-cloud/internal/billing/domain"
	"financeiro-cloud/internal/billing/infrastructure/memory"
)

type recordingChannel struct {
	sent []string
}

func (c *recordingChannel) Send(_ context.Context, content string) error {
	c.sent = append(c.sent, content)
	return nil
}

func seedTitulo(t *testing.T, repo *memory.TituloRepository, id string, dueDate time.Time, status billing.Status) {
	t.Helper()
	titulo := billing.Titulo{
		ID:       id,
		TenantID: "tenant-a",
		Kind:     billing.KindReceivable,
		Amount:   decimal.NewFromInt(100),
		DueDate:  dueDate,
		Status:   status,
	}
	if err := repo.Create(context.Background(), &titulo); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestSweepMarksLapsedTitulos(t *testing.T) {
	repo := memory.NewTituloRepository()
	channel := &recordingChannel{}
	logger := log.New(os.Stdout, "", 0)

	now := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	seedTitulo(t, repo, "tit-lapsed", time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), billing.StatusOpen)
	seedTitulo(t, repo, "tit-future", time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), billing.StatusOpen)
	seedTitulo(t, repo, "tit-settled", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), billing.StatusSettled)

	sweeper, err := NewSweeper(repo, SweepConfig{}, channel, "tenant-a", logger)
	if err != nil {
		t.Fatalf("new sweeper: %v", err)
	}

	marked, err := sweeper.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if marked != 1 {
		t.Fatalf("marked = %d, want 1", marked)
	}

	lapsed, err := repo.GetByID(context.Background(), "tenant-a", "tit-lapsed")
	if err != nil {
		t.Fatalf("get lapsed: %v", err)
	}
	if lapsed.Status != billing.StatusOverdue {
		t.Fatalf("lapsed status = %s", lapsed.Status)
	}
	future, err := repo.GetByID(context.Background(), "tenant-a", "tit-future")
	if err != nil {
		t.Fatalf("get future: %v", err)
	}
	if future.Status != billing.StatusOpen {
		t.Fatalf("future status = %s", future.Status)
	}

	if len(channel.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(channel.sent))
	}
	if !strings.Contains(channel.sent[0], "tit-lapsed") {
		t.Fatalf("notification = %q", channel.sent[0])
	}
}

func TestSweepHonorsGraceDays(t *testing.T) {
	repo := memory.NewTituloRepository()
	logger := log.New(os.Stdout, "", 0)

	now := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	seedTitulo(t, repo, "tit-recent", time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC), billing.StatusOpen)

	sweeper, err := NewSweeper(repo, SweepConfig{GraceDays: 5}, nil, "tenant-a", logger)
	if err != nil {
		t.Fatalf("new sweeper: %v", err)
	}

	marked, err := sweeper.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if marked != 0 {
		t.Fatalf("marked = %d, want 0 inside grace window", marked)
	}
}

func TestSweepNoChannel(t *testing.T) {
	repo := memory.NewTituloRepository()
	logger := log.New(os.Stdout, "", 0)

	seedTitulo(t, repo, "tit-lapsed", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), billing.StatusOpen)

	sweeper, err := NewSweeper(repo, SweepConfig{}, nil, "tenant-a", logger)
	if err != nil {
		t.Fatalf("new sweeper: %v", err)
	}
	marked, err := sweeper.Run(context.Background(), time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if marked != 1 {
		t.Fatalf("marked = %d, want 1", marked)
	}
}
