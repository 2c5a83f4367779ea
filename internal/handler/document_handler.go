package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/leora/backend/internal/export"
	"github.com/leora/backend/internal/model"
	"github.com/leora/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DocumentHandler は見積書 (RAB) の HTTP ハンドラ
type DocumentHandler struct {
	svc service.DocumentService
}

// NewDocumentHandler は DocumentHandler を生成する
func NewDocumentHandler(svc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// documentID returns the {id} path value, answering 404 when it is not a
// UUID so malformed ids never reach the database.
func documentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if uuid.Validate(id) != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return "", false
	}
	return id, true
}

// List handles GET /api/documents?limit=N&offset=M.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	docs, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, "document list", err)
		return
	}
	if docs == nil {
		docs = []*model.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs, "limit": limit, "offset": offset})
}

// Get handles GET /api/documents/{id}.
// The response carries the totals to display: frozen for sent and approved
// documents, recomputed for drafts.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.View(r.Context(), id)
	if err != nil {
		writeServiceError(w, "document get", err)
		return
	}
	view.Estimate.Items = view.Estimate.NonZeroItems()
	writeJSON(w, http.StatusOK, view)
}

// Create handles POST /api/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.DocumentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	doc, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, "document create", err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// Update handles PUT /api/documents/{id}.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	var in model.DocumentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	doc, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, "document update", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// PatchStatus handles PATCH /api/documents/{id}/status.
// Approval is irreversible and must be requested with "confirm": true.
func (h *DocumentHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	var req struct {
		Status  model.Status `json:"status"`
		Confirm bool         `json:"confirm"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	doc, err := h.svc.Transition(r.Context(), id, req.Status, req.Confirm)
	if err != nil {
		writeServiceError(w, "document status", err)
		return
	}
	slog.Info("document status changed", "document_id", doc.ID, "reference", doc.ReferenceNumber, "status", doc.Status)
	writeJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /api/documents/{id}. The row is soft-deleted.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, "document delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Export handles GET /api/documents/{id}/export.xlsx.
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.View(r.Context(), id)
	if err != nil {
		writeServiceError(w, "document export", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteQuotation(&buf, view.Document, view.Estimate); err != nil {
		slog.Error("document export failed", "error", err, "document_id", id)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(view.Document)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

// AuditGet handles GET /api/admin/documents/{id}; soft-deleted documents
// are returned as well.
func (h *DocumentHandler) AuditGet(w http.ResponseWriter, r *http.Request) {
	id, ok := documentID(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.GetForAudit(r.Context(), id)
	if err != nil {
		writeServiceError(w, "document audit", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
