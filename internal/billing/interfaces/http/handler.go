package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"financeiro-cloud/internal/audit"
	"financeiro-cloud/internal/auth"
	billingapp "financeiro-cloud/internal/billing/application"
	billing "financeiro-cloud/internal/billing/domain"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Handler serves título endpoints under /api/v1/titulos.
type Handler struct {
	service     *billingapp.Service
	accounts    auth.AccountTenantChecker
	auditLogger audit.Logger
}

// NewHandler constructs a handler. The account checker may be nil; account
// ownership is then not validated on create.
func NewHandler(service *billingapp.Service, accounts auth.AccountTenantChecker, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("billing handler: nil service")
	}
	return &Handler{service: service, accounts: accounts, auditLogger: auditLogger}, nil
}

// ServeHTTP routes título requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/titulos" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if strings.HasPrefix(path, "/api/v1/titulos/") {
		rest := strings.TrimPrefix(path, "/api/v1/titulos/")
		if strings.HasSuffix(rest, "/settle") && r.Method == http.MethodPost {
			h.handleSettle(w, r, strings.TrimSuffix(rest, "/settle"))
			return
		}
		if strings.Contains(rest, "/") || rest == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, rest)
		case http.MethodDelete:
			h.handleCancel(w, r, rest)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind          string `json:"kind"`
		Description   string `json:"description"`
		ContractID    string `json:"contract_id"`
		CostCenterID  string `json:"cost_center_id"`
		BankAccountID string `json:"bank_account_id"`
		Amount        string `json:"amount"`
		DueDate       string `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		http.Error(w, "due_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	tenantID := auth.TenantIDFromContext(r.Context())
	if h.accounts != nil && req.BankAccountID != "" {
		switch err := h.accounts.EnsureAccountTenant(r.Context(), tenantID, req.BankAccountID); {
		case errors.Is(err, auth.ErrNotFound):
			http.Error(w, "bank account not found", http.StatusNotFound)
			return
		case errors.Is(err, auth.ErrTenantMismatch):
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		case err != nil:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	titulo := billing.Titulo{
		TenantID:      tenantID,
		Kind:          billing.Kind(req.Kind),
		Description:   req.Description,
		ContractID:    req.ContractID,
		CostCenterID:  req.CostCenterID,
		BankAccountID: req.BankAccountID,
		Amount:        amount,
		DueDate:       dueDate.UTC(),
	}
	created, err := h.service.Create(r.Context(), titulo)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, created)
	h.logAudit(r, "titulo.create", created.ID)
}

func (h *Handler) handleSettle(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		SettlementDate string `json:"settlement_date"`
	}
	// An empty body settles on the current date.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	var settlementDate time.Time
	if req.SettlementDate != "" {
		parsed, err := time.Parse(dateLayout, req.SettlementDate)
		if err != nil {
			http.Error(w, "settlement_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		settlementDate = parsed.UTC()
	}
	tenantID := auth.TenantIDFromContext(r.Context())
	settled, err := h.service.Settle(r.Context(), tenantID, id, settlementDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, settled)
	h.logAudit(r, "titulo.settle", id)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request, id string) {
	tenantID := auth.TenantIDFromContext(r.Context())
	if _, err := h.service.Cancel(r.Context(), tenantID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "titulo.cancel", id)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	tenantID := auth.TenantIDFromContext(r.Context())
	titulo, err := h.service.Get(r.Context(), tenantID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, titulo)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.TenantIDFromContext(r.Context())
	filter := billing.ListFilter{
		Kind:   billing.Kind(r.URL.Query().Get("kind")),
		Status: billing.Status(r.URL.Query().Get("status")),
	}
	if from := r.URL.Query().Get("due_from"); from != "" {
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			http.Error(w, "due_from must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DueFrom = parsed.UTC()
	}
	if until := r.URL.Query().Get("due_until"); until != "" {
		parsed, err := time.Parse(dateLayout, until)
		if err != nil {
			http.Error(w, "due_until must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.DueUntil = parsed.UTC()
	}
	list, err := h.service.List(r.Context(), tenantID, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if list == nil {
		list = []billing.Titulo{}
	}
	writeJSON(w, list)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, billing.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, billing.ErrAlreadySettled), errors.Is(err, billing.ErrCanceled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, billing.ErrInvalidKind), errors.Is(err, billing.ErrInvalidAmount),
		errors.Is(err, billing.ErrMissingDueDate), errors.Is(err, billing.ErrEmptyTenant):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func (h *Handler) logAudit(r *http.Request, action, resourceID string) {
	if h.auditLogger == nil {
		return
	}
	entry := audit.Entry{
		TenantID:     auth.TenantIDFromContext(r.Context()),
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "titulo",
		ResourceID:   resourceID,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}
