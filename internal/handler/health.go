package handler

import (
	"net/http"

	"github.com/leora/backend/internal/estimate"
)

type healthResponse struct {
	Status   string            `json:"status"`
	Message  string            `json:"message"`
	Catalog  *estimate.Catalog `json:"catalog,omitempty"`
	Formulas *estimate.Config  `json:"formulas,omitempty"`
}

// Health は DB 疎通とマスタの充足状況を返す。
// マスタが不足していても見積自体は動くため 200 の "degraded" とする
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Message: err.Error()})
		return
	}

	md, err := h.master.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Message: "master data: " + err.Error()})
		return
	}

	catalog := md.Catalog()
	resp := healthResponse{
		Status:   "ok",
		Message:  "LEORA RAB API",
		Catalog:  &catalog,
		Formulas: &h.formulas,
	}
	if !catalog.Complete() {
		resp.Status = "degraded"
		resp.Message = "catalog incomplete: some estimates will be partial"
	}
	writeJSON(w, http.StatusOK, resp)
}
