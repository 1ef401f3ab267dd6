package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/trigger/internal/dashboard/service"
	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
)

// SubmissionsHandler handles GET /v1/submissions
//
//	@Summary		Recent Uploads
//	@Description	Lists recent CSV submissions and their outcome, newest first.
//	@Tags			Refresh
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int						false	"Maximum entries (default 20, max 100)"
//	@Success		200		{object}	SubmissionListResponse	"submissions"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/v1/submissions [get].
func SubmissionsHandler(svc *service.RemediationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "limit must be an integer")
				return
			}
			limit = n
		}

		subs, err := svc.ListSubmissions(ctx, limit)
		if err != nil {
			slogx.FromContext(ctx).Error("failed to list submissions", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list submissions")
			return
		}

		resp := SubmissionListResponse{Submissions: make([]SubmissionResponse, 0, len(subs))}
		for _, s := range subs {
			resp.Submissions = append(resp.Submissions, newSubmissionResponse(s))
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}
