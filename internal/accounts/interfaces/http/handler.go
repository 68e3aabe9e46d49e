package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	accountsapp "financeiro-cloud/internal/accounts/application"
	accounts "financeiro-cloud/internal/accounts/domain"
	"financeiro-cloud/internal/audit"
	"financeiro-cloud/internal/auth"

	"github.com/shopspring/decimal"
)

// Handler serves bank account registry endpoints under /api/v1/accounts.
type Handler struct {
	service     *accountsapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *accountsapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("accounts handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

type accountRequest struct {
	Name               string `json:"name"`
	BankCode           string `json:"bank_code"`
	Branch             string `json:"branch"`
	Number             string `json:"number"`
	InitialBalance     string `json:"initial_balance"`
	InitialBalanceDate string `json:"initial_balance_date"`
}

// ServeHTTP routes account requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/accounts" {
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
	if strings.HasPrefix(path, "/api/v1/accounts/") {
		id := strings.TrimPrefix(path, "/api/v1/accounts/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodPut:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDeactivate(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tenantID := auth.TenantIDFromContext(r.Context())
	activeOnly := r.URL.Query().Get("active") == "true"
	list, err := h.service.List(r.Context(), tenantID, activeOnly)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if list == nil {
		list = []accounts.BankAccount{}
	}
	writeJSON(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	account, err := accountFromRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	account.TenantID = auth.TenantIDFromContext(r.Context())
	created, err := h.service.Create(r.Context(), account)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, created)
	h.logAudit(r, "account.create", created.ID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	tenantID := auth.TenantIDFromContext(r.Context())
	account, err := h.service.Get(r.Context(), tenantID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, account)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	account, err := accountFromRequest(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	account.ID = id
	account.TenantID = auth.TenantIDFromContext(r.Context())
	updated, err := h.service.Update(r.Context(), account)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, updated)
	h.logAudit(r, "account.update", id)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request, id string) {
	tenantID := auth.TenantIDFromContext(r.Context())
	if err := h.service.Deactivate(r.Context(), tenantID, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "account.deactivate", id)
}

func accountFromRequest(req accountRequest) (accounts.BankAccount, error) {
	account := accounts.BankAccount{
		Name:     req.Name,
		BankCode: req.BankCode,
		Branch:   req.Branch,
		Number:   req.Number,
	}
	if req.InitialBalance != "" {
		balance, err := decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return accounts.BankAccount{}, errors.New("invalid initial_balance")
		}
		account.InitialBalance = balance
	}
	if req.InitialBalanceDate != "" {
		parsed, err := time.Parse("2006-01-02", req.InitialBalanceDate)
		if err != nil {
			return accounts.BankAccount{}, errors.New("initial_balance_date must be YYYY-MM-DD")
		}
		account.InitialBalanceDate = parsed.UTC()
	}
	return account, nil
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounts.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, accounts.ErrEmptyName), errors.Is(err, accounts.ErrEmptyTenant):
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
		ResourceType: "bank_account",
		ResourceID:   resourceID,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}
