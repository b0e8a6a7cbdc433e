package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studlink-api/internal/application/community"
	"github.com/studlink-api/internal/domain"
	"github.com/studlink-api/internal/pkg/validate"
	"github.com/studlink-api/internal/transport/http/middleware"
)

// CommunityHandler handles community endpoints.
type CommunityHandler struct {
	svc community.Service
}

func NewCommunityHandler(svc community.Service) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	communities, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if communities == nil {
		communities = []domain.Community{}
	}
	writeJSON(w, http.StatusOK, struct {
		Communities []domain.Community `json:"communities"`
	}{Communities: communities})
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Message   string            `json:"message"`
		Community *domain.Community `json:"community"`
	}{Message: "Community created successfully", Community: c})
}

func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "community deleted"})
}
