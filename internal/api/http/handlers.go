package apihttp

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"financeiro-cloud/internal/auth"
)

const dateLayout = "2006-01-02"

// SummaryHandler serves aggregated título counts and totals per kind and
// status, straight from the database. These are reporting views; the
// cash-flow engine is not involved.
type SummaryHandler struct {
	db *sql.DB
}

// NewSummaryHandler constructs a SummaryHandler.
func NewSummaryHandler(db *sql.DB) *SummaryHandler {
	return &SummaryHandler{db: db}
}

type summaryRow struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Count  int    `json:"count"`
	Total  string `json:"total"`
}

// ServeHTTP handles GET /api/v1/summary.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.db == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	tenantID := auth.TenantIDFromContext(r.Context())
	if tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	rows, err := querySummary(r.Context(), h.db, tenantID)
	if err != nil {
		http.Error(w, "query summary error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []summaryRow{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

// ExportTitulosCSVHandler serves título CSV exports.
type ExportTitulosCSVHandler struct {
	db *sql.DB
}

// NewExportTitulosCSVHandler constructs a ExportTitulosCSVHandler.
func NewExportTitulosCSVHandler(db *sql.DB) *ExportTitulosCSVHandler {
	return &ExportTitulosCSVHandler{db: db}
}

// ServeHTTP handles GET /api/v1/exports/titulos.csv.
func (h *ExportTitulosCSVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.db == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	tenantID := auth.TenantIDFromContext(r.Context())
	if tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	from, err := parseDateQuery(r, "due_from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	until, err := parseDateQuery(r, "due_until")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := queryTitulos(r.Context(), h.db, tenantID, r.URL.Query().Get("kind"),
		r.URL.Query().Get("status"), from, until)
	if err != nil {
		http.Error(w, "query titulos error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="titulos.csv"`)
	writer := csv.NewWriter(w)
	_ = writer.Write([]string{
		"id",
		"kind",
		"description",
		"contract_id",
		"cost_center_id",
		"bank_account_id",
		"amount",
		"due_date",
		"settlement_date",
		"status",
	})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.ID,
			row.Kind,
			row.Description,
			row.ContractID,
			row.CostCenterID,
			row.BankAccountID,
			row.Amount,
			row.DueDate,
			row.SettlementDate,
			row.Status,
		})
	}
	writer.Flush()
}

type tituloRow struct {
	ID             string
	Kind           string
	Description    string
	ContractID     string
	CostCenterID   string
	BankAccountID  string
	Amount         string
	DueDate        string
	SettlementDate string
	Status         string
}

func querySummary(ctx context.Context, db *sql.DB, tenantID string) ([]summaryRow, error) {
	rows, err := db.QueryContext(ctx, `
SELECT kind, status, COUNT(*), COALESCE(SUM(amount), 0)::text
FROM titulos
WHERE tenant_id = $1
GROUP BY kind, status
ORDER BY kind, status`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []summaryRow
	for rows.Next() {
		var row summaryRow
		if err := rows.Scan(&row.Kind, &row.Status, &row.Count, &row.Total); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func queryTitulos(ctx context.Context, db *sql.DB, tenantID, kind, status string, from, until time.Time) ([]tituloRow, error) {
	query := `
SELECT id, kind, description, COALESCE(contract_id, ''), COALESCE(cost_center_id, ''),
	COALESCE(bank_account_id, ''), amount::text, due_date::text,
	COALESCE(settlement_date::text, ''), status
FROM titulos
WHERE tenant_id = $1`
	args := []any{tenantID}
	if kind != "" {
		args = append(args, kind)
		query += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if !from.IsZero() {
		args = append(args, from)
		query += ` AND due_date >= $` + strconv.Itoa(len(args))
	}
	if !until.IsZero() {
		args = append(args, until)
		query += ` AND due_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY due_date, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []tituloRow
	for rows.Next() {
		var row tituloRow
		if err := rows.Scan(&row.ID, &row.Kind, &row.Description, &row.ContractID,
			&row.CostCenterID, &row.BankAccountID, &row.Amount, &row.DueDate,
			&row.SettlementDate, &row.Status); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, errors.New(key + " must be YYYY-MM-DD")
	}
	return parsed.UTC(), nil
}
