package handler

import (
	"net/http"

	"github.com/leora/backend/internal/model"
	"github.com/leora/backend/internal/service"
)

// EstimateHandler はライブ見積 (プレビュー) の HTTP ハンドラ
type EstimateHandler struct {
	svc service.EstimateService
}

// NewEstimateHandler は EstimateHandler を生成する
func NewEstimateHandler(svc service.EstimateService) *EstimateHandler {
	return &EstimateHandler{svc: svc}
}

type estimateRequest struct {
	model.EstimateInput
	Province string `json:"province"`
	Regency  string `json:"regency"`
}

// Preview handles POST /api/estimate.
// The destination may be given as destinationKey or as province/regency.
func (h *EstimateHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := req.EstimateInput
	if in.DestinationKey == "" && req.Province != "" {
		in.DestinationKey = model.DestinationKey(req.Province, req.Regency)
	}

	res, err := h.svc.Preview(r.Context(), in)
	if err != nil {
		writeServiceError(w, "estimate preview", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
