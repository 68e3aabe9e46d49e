package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"financeiro-cloud/internal/auth"
	cashflowapp "financeiro-cloud/internal/cashflow/application"
	cashflow "financeiro-cloud/internal/cashflow/domain"
	"financeiro-cloud/internal/cashflow/interfaces"
	"financeiro-cloud/internal/observability/metrics"
)

// Handler serves cash-flow endpoints under /api/v1/cashflow.
type Handler struct {
	service *cashflowapp.FluxoService
}

// NewHandler constructs a handler.
func NewHandler(service *cashflowapp.FluxoService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("cashflow handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP routes cash-flow requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/cashflow":
		h.handleCompute(w, r)
	case "/api/v1/cashflow/export.xlsx":
		h.handleExport(w, r, "xlsx")
	case "/api/v1/cashflow/export.pdf":
		h.handleExport(w, r, "pdf")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	query := parseQuery(r)
	result, err := h.service.Compute(r.Context(), auth.TenantIDFromContext(r.Context()), query)
	if err != nil {
		respondComputeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	start := time.Now()
	outcome := metrics.ResultSuccess
	defer func() {
		metrics.ObserveCashflowExport(format, outcome, time.Since(start))
	}()

	query := parseQuery(r)
	result, err := h.service.Compute(r.Context(), auth.TenantIDFromContext(r.Context()), query)
	if err != nil {
		outcome = metrics.ResultError
		respondComputeError(w, err)
		return
	}

	var payload []byte
	var contentType, filename string
	switch format {
	case "xlsx":
		payload, err = interfaces.BuildFluxoXLSX(result, query.Start, query.End)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "fluxo-de-caixa.xlsx"
	case "pdf":
		payload, err = interfaces.BuildFluxoPDF(result, query.Start, query.End)
		contentType = "application/pdf"
		filename = "fluxo-de-caixa.pdf"
	}
	if err != nil {
		outcome = metrics.ResultError
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}

// parseQuery extracts the period and optional account selection. Accounts may
// repeat or arrive comma-separated; both forms combine.
func parseQuery(r *http.Request) cashflowapp.Query {
	values := r.URL.Query()
	query := cashflowapp.Query{
		Start: values.Get("start"),
		End:   values.Get("end"),
	}
	for _, raw := range values["accounts"] {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				query.AccountIDs = append(query.AccountIDs, id)
			}
		}
	}
	return query
}

func respondComputeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cashflow.ErrUnparseableDate), errors.Is(err, cashflow.ErrInvalidRange),
		errors.Is(err, cashflow.ErrMissingDueDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
