package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"financeiro-cloud/internal/audit"
	"financeiro-cloud/internal/auth"
	costcenterapp "financeiro-cloud/internal/costcenter/application"
	costcenter "financeiro-cloud/internal/costcenter/domain"
)

// Handler serves cost center endpoints under /api/v1/costcenters.
type Handler struct {
	service     *costcenterapp.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *costcenterapp.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("costcenter handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes cost center requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/costcenters" {
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
	if strings.HasPrefix(path, "/api/v1/costcenters/") {
		id := strings.TrimPrefix(path, "/api/v1/costcenters/")
		if strings.Contains(id, "/") || id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodDelete:
			h.handleDeactivate(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	center := costcenter.CostCenter{
		TenantID: auth.TenantIDFromContext(r.Context()),
		Code:     req.Code,
		Name:     req.Name,
	}
	created, err := h.service.Create(r.Context(), center)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, created)
	h.logAudit(r, "costcenter.create", created.ID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	center, err := h.service.Get(r.Context(), auth.TenantIDFromContext(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, center)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	list, err := h.service.List(r.Context(), auth.TenantIDFromContext(r.Context()), activeOnly)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if list == nil {
		list = []costcenter.CostCenter{}
	}
	writeJSON(w, list)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Deactivate(r.Context(), auth.TenantIDFromContext(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, "costcenter.deactivate", id)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, costcenter.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, costcenter.ErrEmptyTenant), errors.Is(err, costcenter.ErrEmptyCode),
		errors.Is(err, costcenter.ErrEmptyName):
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
		ResourceType: "cost_center",
		ResourceID:   resourceID,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}
