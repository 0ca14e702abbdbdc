package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"linkcast/internal/core/port"
)

// handleListCampaigns returns every campaign as a JSON array.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, records)
}

// handleCreateCampaign decodes the campaign input, creates the campaign and
// answers 201 with the created record including its derived slug. Missing
// required fields produce HTTP 400, a duplicate name HTTP 409.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in port.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	rec, err := h.svc.CreateCampaign(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

// handleUpdateCampaign replaces the mutable fields of the campaign bound by
// the {id} path parameter.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	var in port.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	rec, err := h.svc.UpdateCampaign(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// handleSetActive toggles only the activity flag. The body must carry an
// explicit {"active": bool} so an empty request cannot silently deactivate
// a campaign.
func (h *Handler) handleSetActive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	var body struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Active == nil {
		http.Error(w, "body must be {\"active\": bool}", http.StatusBadRequest)
		return
	}
	rec, err := h.svc.SetActive(r.Context(), id, *body.Active)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// handleDeleteCampaign removes the campaign and its artifacts. Deleting an
// unknown id answers 404, never a silent success.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCampaign(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) campaignID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
