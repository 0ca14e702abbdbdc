package httpadapter

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleScript serves a campaign's redirect script by slug. The content
// type is forced to application/javascript so nosniff browsers execute the
// file. The script stays fetchable for deactivated campaigns; the encoded
// flag makes it a no-op at execution time. Unknown slugs answer 404.
func (h *Handler) handleScript(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	text, err := h.svc.ResolveScript(r.Context(), slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	_, _ = w.Write([]byte(text))
}

// handlePage serves a campaign's generated landing page straight from the
// artifact directory.
func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if strings.ContainsAny(slug, "/\\") || strings.Contains(slug, "..") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.store.PagePath(slug))
}
