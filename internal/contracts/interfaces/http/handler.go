package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"financeiro-cloud/internal/audit"
	"financeiro-cloud/internal/auth"
	contractsapp "financeiro-cloud/internal/contracts/application"
	contracts "financeiro-cloud/internal/contracts/domain"
)

const dateLayout = "2006-01-02"

// Handler serves contract endpoints under /api/v1/contracts.
type Handler struct {
	service     *contractsapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *contractsapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("contracts handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes contract requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/contracts" {
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
	if strings.HasPrefix(path, "/api/v1/contracts/") {
		rest := strings.TrimPrefix(path, "/api/v1/contracts/")
		if strings.HasSuffix(rest, "/installments") && r.Method == http.MethodPost {
			h.handleInstallments(w, r, strings.TrimSuffix(rest, "/installments"))
			return
		}
		if strings.Contains(rest, "/") || rest == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, rest)
		case http.MethodPut:
			h.handleUpdate(w, r, rest)
		case http.MethodDelete:
			h.handleDeactivate(w, r, rest)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

type contractRequest struct {
	Number            string `json:"number"`
	Counterparty      string `json:"counterparty"`
	CounterpartyCNPJ  string `json:"counterparty_cnpj"`
	Side              string `json:"side"`
	TotalAmount       string `json:"total_amount"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	ReadjustmentIndex string `json:"readjustment_index"`
	CostCenterID      string `json:"cost_center_id"`
	BankAccountID     string `json:"bank_account_id"`
}

func (req contractRequest) toDomain(tenantID string) (contracts.Contract, error) {
	amount, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return contracts.Contract{}, errors.New("invalid total_amount")
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return contracts.Contract{}, errors.New("start_date must be YYYY-MM-DD")
	}
	var endDate time.Time
	if req.EndDate != "" {
		endDate, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return contracts.Contract{}, errors.New("end_date must be YYYY-MM-DD")
		}
	}
	return contracts.Contract{
		TenantID:          tenantID,
		Number:            req.Number,
		Counterparty:      req.Counterparty,
		CounterpartyCNPJ:  req.CounterpartyCNPJ,
		Side:              contracts.Side(req.Side),
		TotalAmount:       amount,
		StartDate:         startDate.UTC(),
		EndDate:           endDate.UTC(),
		ReadjustmentIndex: req.ReadjustmentIndex,
		CostCenterID:      req.CostCenterID,
		BankAccountID:     req.BankAccountID,
	}, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	contract, err := req.toDomain(auth.TenantIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), contract)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, created)
	h.logAudit(r, "contract.create", created.ID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	contract, err := req.toDomain(auth.TenantIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	contract.ID = id
	updated, err := h.service.Update(r.Context(), contract)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, updated)
	h.logAudit(r, "contract.update", id)
}

func (h *Handler) handleInstallments(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Count        int    `json:"count"`
		FirstDueDate string `json:"first_due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	var firstDueDate time.Time
	if req.FirstDueDate != "" {
		parsed, err := time.Parse(dateLayout, req.FirstDueDate)
		if err != nil {
			http.Error(w, "first_due_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		firstDueDate = parsed.UTC()
	}
	tenantID := auth.TenantIDFromContext(r.Context())
	created, err := h.service.GenerateInstallments(r.Context(), tenantID, id, req.Count, firstDueDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, created)
	h.logAudit(r, "contract.installments", id)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	contract, err := h.service.Get(r.Context(), auth.TenantIDFromContext(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, contract)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	list, err := h.service.List(r.Context(), auth.TenantIDFromContext(r.Context()), activeOnly)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if list == nil {
		list = []contracts.Contract{}
	}
	writeJSON(w, list)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Deactivate(r.Context(), auth.TenantIDFromContext(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "contract.deactivate", id)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, contracts.ErrInactive):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, contracts.ErrEmptyTenant), errors.Is(err, contracts.ErrEmptyNumber),
		errors.Is(err, contracts.ErrInvalidSide), errors.Is(err, contracts.ErrInvalidAmount),
		errors.Is(err, contracts.ErrInvalidValidity), errors.Is(err, contracts.ErrBadInstallments):
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
		ResourceType: "contract",
		ResourceID:   resourceID,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}
