package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"financeiro-cloud/internal/auth"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type config struct {
	dsn          string
	tenantID     string
	accountCount int
	tituloCount  int
	startDate    string
	days         int
}

func main() {
	cfg := parseConfig()
	if cfg.dsn == "" {
		log.Fatal("PG_DSN or DATABASE_URL is required")
	}
	if cfg.accountCount <= 0 {
		log.Fatal("account-count must be > 0")
	}
	if cfg.tituloCount <= 0 {
		log.Fatal("titulo-count must be > 0")
	}
	if cfg.days <= 0 {
		log.Fatal("days must be > 0")
	}

	start, err := parseStartDate(cfg.startDate)
	if err != nil {
		log.Fatalf("invalid start-date: %v", err)
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	accountIDs, err := seedAccounts(ctx, db, cfg.tenantID, cfg.accountCount, start)
	if err != nil {
		log.Fatalf("seed accounts: %v", err)
	}
	log.Printf("seeded bank_accounts: tenant=%s count=%d", cfg.tenantID, len(accountIDs))

	centerID, err := seedCostCenter(ctx, db, cfg.tenantID)
	if err != nil {
		log.Fatalf("seed cost center: %v", err)
	}

	contractID, err := seedContract(ctx, db, cfg.tenantID, centerID, accountIDs[0], start)
	if err != nil {
		log.Fatalf("seed contract: %v", err)
	}

	count, err := seedTitulos(ctx, db, cfg.tenantID, accountIDs, centerID, contractID, start, cfg.days, cfg.tituloCount)
	if err != nil {
		log.Fatalf("seed titulos: %v", err)
	}
	log.Printf("seeded titulos: tenant=%s count=%d window=%s+%dd", cfg.tenantID, count, start.Format("2006-01-02"), cfg.days)

	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		token, err := auth.IssueJWT([]byte(secret), cfg.tenantID, auth.RoleAdmin, "seed", 24*time.Hour)
		if err != nil {
			log.Fatalf("issue demo token: %v", err)
		}
		fmt.Printf("demo admin token (24h): %s\n", token)
	}

	log.Printf("seed completed")
}

func parseConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.dsn, "pg-dsn", envOrDefault("PG_DSN", envOrDefault("DATABASE_URL", "")), "Postgres DSN")
	flag.StringVar(&cfg.tenantID, "tenant-id", envOrDefault("TENANT_ID", "tenant-demo"), "tenant id to seed")
	flag.IntVar(&cfg.accountCount, "account-count", envOrInt("ACCOUNT_COUNT", 3), "number of bank accounts")
	flag.IntVar(&cfg.tituloCount, "titulo-count", envOrInt("TITULO_COUNT", 40), "number of titulos")
	flag.StringVar(&cfg.startDate, "start-date", envOrDefault("START_DATE", ""), "start date (YYYY-MM-DD)")
	flag.IntVar(&cfg.days, "days", envOrInt("DAYS", 30), "due date window in days")
	flag.Parse()
	return cfg
}

func parseStartDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -7), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func seedAccounts(ctx context.Context, db *sql.DB, tenantID string, count int, start time.Time) ([]string, error) {
	now := time.Now().UTC()
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("acc-seed-%03d", i+1)
		balance := fmt.Sprintf("%d.00", 1000*(i+1))
		_, err := db.ExecContext(ctx, `
INSERT INTO bank_accounts (id, tenant_id, name, bank_code, branch, number,
	initial_balance, initial_balance_date, active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,true,$9,$9)
ON CONFLICT (id) DO NOTHING`,
			id, tenantID, fmt.Sprintf("Conta Corrente %d", i+1), "001", "1234",
			fmt.Sprintf("%05d-%d", 10000+i, i%10), balance, start, now)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedCostCenter(ctx context.Context, db *sql.DB, tenantID string) (string, error) {
	id := "cc-seed-001"
	now := time.Now().UTC()
	_, err := db.ExecContext(ctx, `
INSERT INTO cost_centers (id, tenant_id, code, name, active, created_at, updated_at)
VALUES ($1,$2,$3,$4,true,$5,$5)
ON CONFLICT (id) DO NOTHING`,
		id, tenantID, "ADM", "Administrativo", now)
	return id, err
}

func seedContract(ctx context.Context, db *sql.DB, tenantID, centerID, accountID string, start time.Time) (string, error) {
	id := "ctr-seed-001"
	now := time.Now().UTC()
	_, err := db.ExecContext(ctx, `
INSERT INTO contracts (id, tenant_id, number, counterparty, counterparty_cnpj, side,
	total_amount, start_date, end_date, readjustment_index, cost_center_id,
	bank_account_id, active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,true,$13,$13)
ON CONFLICT (id) DO NOTHING`,
		id, tenantID, "CT-SEED-001", "Fornecedora Demo Ltda", "12.345.678/0001-90",
		"payable", "12000.00", start, start.AddDate(1, 0, 0), "IPCA",
		centerID, accountID, now)
	return id, err
}

func seedTitulos(ctx context.Context, db *sql.DB, tenantID string, accountIDs []string, centerID, contractID string, start time.Time, days, count int) (int, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	seeded := 0
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("tit-seed-%04d", i+1)
		kind := "receivable"
		if i%3 == 0 {
			kind = "payable"
		}
		dueDate := start.AddDate(0, 0, i%days)
		amount := fmt.Sprintf("%d.50", 100+10*(i%25))
		accountID := accountIDs[i%len(accountIDs)]

		status := "open"
		var settlement any
		if dueDate.Before(today) {
			// Past-due rows alternate between paid and lapsed so the ledger
			// has both realized history and excluded overdue amounts.
			if i%2 == 0 {
				status = "settled"
				settlement = dueDate
			} else {
				status = "overdue"
			}
		}

		var contractRef any
		if i%5 == 0 {
			contractRef = contractID
		}

		_, err := db.ExecContext(ctx, `
INSERT INTO titulos (id, tenant_id, kind, description, contract_id, cost_center_id,
	bank_account_id, amount, due_date, settlement_date, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$12)
ON CONFLICT (id) DO NOTHING`,
			id, tenantID, kind, fmt.Sprintf("Titulo demo %04d", i+1), contractRef, centerID,
			accountID, amount, dueDate, settlement, status, now)
		if err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
