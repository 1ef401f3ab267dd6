package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/trigger/internal/dashboard/service"
	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
)

// multipartMemory is how much of a form is buffered in memory before
// spilling to temporary files.
const multipartMemory = 1 << 20

// RefreshHandler accepts CSV uploads that add or stop refresh triggers.
type RefreshHandler struct {
	RemediationService *service.RemediationService
}

// HandleAdd handles POST /v1/refresh/add
//
//	@Summary		Add Refresh Triggers
//	@Description	Uploads a CSV to the remediation endpoint with processType ADD_REFRESH_TRIGGER.
//	@Description	A token is generated first if none is held or it is about to expire.
//	@Tags			Refresh
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file		formData	file				true	"CSV file"
//	@Param			marketCode	formData	string				false	"Market code (default 036)"
//	@Success		200			{object}	RemediationResponse	"status, message, id"
//	@Failure		400			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		413			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		429			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		502			{object}	httpx.ErrorResponse	"error, error_description, upstream_status"
//	@Router			/v1/refresh/add [post].
func (h *RefreshHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, triggersdk.ProcessAddRefreshTrigger)
}

// HandleStop handles POST /v1/refresh/stop
//
//	@Summary		Stop Refresh Triggers
//	@Description	Uploads a CSV to the remediation endpoint with processType STOP_REFRESH.
//	@Tags			Refresh
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			file		formData	file				true	"CSV file"
//	@Param			marketCode	formData	string				false	"Market code (default 036)"
//	@Success		200			{object}	RemediationResponse	"status, message, id"
//	@Failure		400			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		413			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		429			{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		502			{object}	httpx.ErrorResponse	"error, error_description, upstream_status"
//	@Router			/v1/refresh/stop [post].
func (h *RefreshHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, triggersdk.ProcessStopRefresh)
}

func (h *RefreshHandler) handle(w http.ResponseWriter, r *http.Request, processType triggersdk.ProcessType) {
	file, ok := readUpload(w, r)
	if !ok {
		return
	}

	res, err := h.RemediationService.Submit(r.Context(), processType, file, r.FormValue("marketCode"))
	if err != nil {
		writeClientError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RemediationResponse{
		Status:  res.Status,
		Message: res.Message,
		ID:      res.ID,
	})
}

// readUpload parses the multipart form and loads the "file" part. A missing
// part yields a nil file so validation reports it. It writes the error
// response itself when ok is false.
func readUpload(w http.ResponseWriter, r *http.Request) (*triggersdk.File, bool) {
	var maxErr *http.MaxBytesError

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.As(err, &maxErr) {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, "file_too_large",
				"Upload exceeds "+strconv.FormatInt(maxErr.Limit, 10)+" bytes")
			return nil, false
		}
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Expected a multipart/form-data body")
		return nil, false
	}

	f, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unreadable file part")
		return nil, false
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unreadable file part")
		return nil, false
	}

	return &triggersdk.File{Name: header.Filename, Content: content}, true
}
