package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	accountsapp "financeiro-cloud/internal/accounts/application"
	accountsrepo "financeiro-cloud/internal/accounts/infrastructure/postgres"
	accountshttp "financeiro-cloud/internal/accounts/interfaces/http"
	apihttp "financeiro-cloud/internal/api/http"
	"financeiro-cloud/internal/audit"
	"financeiro-cloud/internal/auth"
	billingapp "financeiro-cloud/internal/billing/application"
	billingrepo "financeiro-cloud/internal/billing/infrastructure/postgres"
	billinghttp "financeiro-cloud/internal/billing/interfaces/http"
	cashflowadapters "financeiro-cloud/internal/cashflow/adapters/postgres"
	cashflowapp "financeiro-cloud/internal/cashflow/application"
	cashflowhttp "financeiro-cloud/internal/cashflow/interfaces/http"
	contractsapp "financeiro-cloud/internal/contracts/application"
	contractsrepo "financeiro-cloud/internal/contracts/infrastructure/postgres"
	contractshttp "financeiro-cloud/internal/contracts/interfaces/http"
	costcenterapp "financeiro-cloud/internal/costcenter/application"
	costcenterrepo "financeiro-cloud/internal/costcenter/infrastructure/postgres"
	costcenterhttp "financeiro-cloud/internal/costcenter/interfaces/http"
	"financeiro-cloud/internal/notify"
	"financeiro-cloud/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	accountRepo := accountsrepo.NewAccountRepository(db)
	accountService, err := accountsapp.NewService(accountRepo, systemClock{})
	if err != nil {
		logger.Fatalf("accounts service error: %v", err)
	}
	accountHandler, err := accountshttp.NewHandler(accountService, auditRepo)
	if err != nil {
		logger.Fatalf("accounts handler error: %v", err)
	}

	tituloRepo := billingrepo.NewTituloRepository(db)
	billingService, err := billingapp.NewService(tituloRepo, systemClock{})
	if err != nil {
		logger.Fatalf("billing service error: %v", err)
	}
	accountChecker := auth.NewAccountChecker(db)
	billingHandler, err := billinghttp.NewHandler(billingService, accountChecker, auditRepo)
	if err != nil {
		logger.Fatalf("billing handler error: %v", err)
	}

	sweepCfg, err := billingapp.LoadSweepConfig()
	if err != nil {
		logger.Fatalf("sweep config error: %v", err)
	}
	var sweepChannel notify.Channel
	if sweepCfg.WebhookURL != "" {
		channel, err := notify.NewWebhookChannel(sweepCfg.WebhookURL)
		if err != nil {
			logger.Fatalf("sweep webhook error: %v", err)
		}
		sweepChannel = channel
	}
	sweeper, err := billingapp.NewSweeper(tituloRepo, sweepCfg, sweepChannel, cfg.TenantID, logger)
	if err != nil {
		logger.Fatalf("sweeper error: %v", err)
	}
	go sweeper.Start(context.Background(), sweepCfg.Interval)

	contractRepo := contractsrepo.NewContractRepository(db)
	contractService, err := contractsapp.NewService(contractRepo, billingService, systemClock{})
	if err != nil {
		logger.Fatalf("contracts service error: %v", err)
	}
	contractHandler, err := contractshttp.NewHandler(contractService, auditRepo)
	if err != nil {
		logger.Fatalf("contracts handler error: %v", err)
	}

	centerRepo := costcenterrepo.NewCostCenterRepository(db)
	centerService, err := costcenterapp.NewService(centerRepo, systemClock{})
	if err != nil {
		logger.Fatalf("costcenter service error: %v", err)
	}
	centerHandler, err := costcenterhttp.NewHandler(centerService, auditRepo)
	if err != nil {
		logger.Fatalf("costcenter handler error: %v", err)
	}

	fluxoService, err := cashflowapp.NewFluxoService(
		cashflowadapters.NewSnapshotReader(db),
		cashflowadapters.NewTituloMovementReader(db),
		systemClock{},
	)
	if err != nil {
		logger.Fatalf("cashflow service error: %v", err)
	}
	cashflowHandler, err := cashflowhttp.NewHandler(fluxoService)
	if err != nil {
		logger.Fatalf("cashflow handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/cashflow", cashflowHandler)
	mux.Handle("/api/v1/cashflow/", cashflowHandler)
	mux.Handle("/api/v1/accounts", accountHandler)
	mux.Handle("/api/v1/accounts/", accountHandler)
	mux.Handle("/api/v1/titulos", billingHandler)
	mux.Handle("/api/v1/titulos/", billingHandler)
	mux.Handle("/api/v1/contracts", contractHandler)
	mux.Handle("/api/v1/contracts/", contractHandler)
	mux.Handle("/api/v1/costcenters", centerHandler)
	mux.Handle("/api/v1/costcenters/", centerHandler)
	mux.Handle("/api/v1/summary", apihttp.NewSummaryHandler(db))
	mux.Handle("/api/v1/exports/titulos.csv", apihttp.NewExportTitulosCSVHandler(db))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	TenantID    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		TenantID:    getenvDefault("TENANT_ID", "tenant-demo"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		metrics.ObserveHTTP(r.Method, statusClass(resp.status), time.Since(start))
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
