package httptransport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"userdir/internal/audit"
	"userdir/internal/domain"
	dErrors "userdir/pkg/domain-errors"
	"userdir/pkg/platform/httputil"
)

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		users []*domain.User
		err   error
	)
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "active must be true or false"))
			return
		}
		users, err = h.directory.FilterByActive(ctx, active)
	} else {
		users, err = h.directory.GetAll(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list users failed", "error", err)
		writeErr(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromUsers(users))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.directory.GetUserByID(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromUserDetail(user))
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UserRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	user := &domain.User{}
	req.Apply(user)

	if err := h.directory.Add(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "create user failed", "email", req.Email, "error", err)
		writeErr(w, err)
		return
	}
	if err := h.audit.RecordCreate(ctx, actingUser(r), user); err != nil {
		writeErr(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, fromUser(user))
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UserRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	// The pre-mutation snapshot drives both the diff and the audit entry;
	// capture it before anything commits.
	before, err := h.directory.GetUserByID(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	after := before.Clone()
	req.Apply(after)

	changes := audit.ComputeChanges(before, after)
	if err := h.audit.RecordUpdate(ctx, actingUser(r), changes, after); err != nil {
		writeErr(w, err)
		return
	}
	if err := h.directory.Update(ctx, after); err != nil {
		h.logger.ErrorContext(ctx, "update user failed", "user_id", id, "error", err)
		writeErr(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromUser(after))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.directory.GetUserByID(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.audit.RecordDelete(ctx, actingUser(r), user.ID, user.Email); err != nil {
		writeErr(w, err)
		return
	}
	if err := h.directory.Delete(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "delete user failed", "user_id", id, "error", err)
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}
