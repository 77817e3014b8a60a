package httptransport

import (
	"net/http"
	"strconv"

	"userdir/pkg/platform/httputil"
)

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			// Values below 1 get page-1 semantics inside the service.
			page = parsed
		}
	}

	result, err := h.audit.ListPage(ctx, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "list logs failed", "page", page, "error", err)
		writeErr(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromPage(result))
}

func (h *Handler) handleGetLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.audit.GetByID(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromEntryDetail(entry))
}
