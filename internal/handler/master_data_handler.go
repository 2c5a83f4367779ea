package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/leora/backend/internal/model"
	"github.com/leora/backend/internal/service"
)

// MasterDataHandler はパネル・配送料金・見積係数マスタの HTTP ハンドラ
type MasterDataHandler struct {
	svc service.MasterDataService
}

// NewMasterDataHandler は MasterDataHandler を生成する
func NewMasterDataHandler(svc service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{svc: svc}
}

// ListPanels handles GET /api/panels.
func (h *MasterDataHandler) ListPanels(w http.ResponseWriter, r *http.Request) {
	panels, err := h.svc.ListPanels(r.Context())
	if err != nil {
		writeServiceError(w, "panel list", err)
		return
	}
	if panels == nil {
		panels = []*model.Panel{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"panels": panels})
}

// CreatePanel handles POST /api/panels.
func (h *MasterDataHandler) CreatePanel(w http.ResponseWriter, r *http.Request) {
	var panel model.Panel
	if !decodeJSON(w, r, &panel) {
		return
	}
	if err := h.svc.CreatePanel(r.Context(), &panel); err != nil {
		writeServiceError(w, "panel create", err)
		return
	}
	writeJSON(w, http.StatusCreated, panel)
}

// UpdatePanel handles PUT /api/panels/{id}.
func (h *MasterDataHandler) UpdatePanel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	var panel model.Panel
	if !decodeJSON(w, r, &panel) {
		return
	}
	panel.ID = id
	if err := h.svc.UpdatePanel(r.Context(), &panel); err != nil {
		writeServiceError(w, "panel update", err)
		return
	}
	writeJSON(w, http.StatusOK, panel)
}

// DeletePanel handles DELETE /api/panels/{id}.
// Documents that reference the panel are kept; their live estimate simply
// omits it.
func (h *MasterDataHandler) DeletePanel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err := h.svc.DeletePanel(r.Context(), id); err != nil {
		writeServiceError(w, "panel delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListShippingRates handles GET /api/shipping-rates.
func (h *MasterDataHandler) ListShippingRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.svc.ListShippingRates(r.Context())
	if err != nil {
		writeServiceError(w, "shipping rate list", err)
		return
	}
	if rates == nil {
		rates = []*model.ShippingRate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": rates})
}

// SaveShippingRate handles PUT /api/shipping-rates.
// The body carries either destinationKey or province (+ optional regency).
func (h *MasterDataHandler) SaveShippingRate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DestinationKey string `json:"destinationKey"`
		Province       string `json:"province"`
		Regency        string `json:"regency"`
		Cost           int64  `json:"cost"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	rate := model.ShippingRate{DestinationKey: req.DestinationKey, Cost: req.Cost}
	if rate.DestinationKey == "" {
		rate.DestinationKey = model.DestinationKey(req.Province, req.Regency)
	}
	if err := h.svc.SaveShippingRate(r.Context(), &rate); err != nil {
		writeServiceError(w, "shipping rate save", err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

// DeleteShippingRate handles DELETE /api/shipping-rates?destination=KEY.
func (h *MasterDataHandler) DeleteShippingRate(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("destination")
	if key == "" {
		writeError(w, http.StatusBadRequest, "destination_required")
		return
	}
	if err := h.svc.DeleteShippingRate(r.Context(), key); err != nil {
		writeServiceError(w, "shipping rate delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetParameters handles GET /api/parameters.
func (h *MasterDataHandler) GetParameters(w http.ResponseWriter, r *http.Request) {
	params, err := h.svc.GetParameters(r.Context())
	if err != nil {
		writeServiceError(w, "parameters get", err)
		return
	}
	writeJSON(w, http.StatusOK, params)
}

// SaveParameters handles PUT /api/parameters.
func (h *MasterDataHandler) SaveParameters(w http.ResponseWriter, r *http.Request) {
	var params model.Parameters
	if !decodeJSON(w, r, &params) {
		return
	}
	if err := h.svc.SaveParameters(r.Context(), &params); err != nil {
		writeServiceError(w, "parameters save", err)
		return
	}
	writeJSON(w, http.StatusOK, params)
}
