package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/umangsailor/bucket-gateway/internal/response"
	"github.com/umangsailor/bucket-gateway/internal/storage"
)

// Handler holds HTTP handlers for file endpoints.
type Handler struct {
	svc    *Service
	limits FormLimits
}

// NewHandler creates a new file Handler. limits.MaxFiles applies to bulk
// uploads; replace always accepts a single file.
func NewHandler(svc *Service, limits FormLimits) *Handler {
	return &Handler{svc: svc, limits: limits}
}

type uploadResponse struct {
	Message       string         `json:"message" example:"Files uploaded successfully"`
	Files         []UploadResult `json:"files"`
	Errors        []ItemError    `json:"errors,omitempty"`
	Warning       string         `json:"warning,omitempty" example:"3 file(s) exceeded the limit and were not uploaded"`
	TotalReceived int            `json:"totalReceived,omitempty" example:"23"`
	Uploaded      int            `json:"uploaded,omitempty" example:"20"`
	Discarded     int            `json:"discarded,omitempty" example:"3"`
}

type replaceResponse struct {
	Message string `json:"message" example:"File replaced successfully"`
	URL     string `json:"url" example:"https://bucket.example.com/storage/testing/report.pdf"`
}

type listResponse struct {
	Count int     `json:"count" example:"1"`
	Files []Entry `json:"files"`
}

type deleteRequest struct {
	Bucket string   `json:"bucket" example:"testing"`
	Folder string   `json:"folder" example:"invoices"`
	Names  []string `json:"names"  example:"report.pdf"`
}

type deleteResponse struct {
	Message string      `json:"message" example:"Delete operation completed"`
	Deleted []string    `json:"deleted"`
	Errors  []ItemError `json:"errors"`
}

// Upload godoc
//
//	@Summary		Upload files
//	@Description	Upload up to MAX_UPLOAD_FILES files (20 by default). Extra files are discarded and reported. With randomName (default true) each stored name is prefixed with an epoch-millisecond timestamp.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			bucket		formData	string	false	"Target bucket (defaults to BUCKET_NAME)"
//	@Param			folder		formData	string	false	"Key prefix"
//	@Param			randomName	formData	string	false	"Set to false to keep original names"
//	@Param			files		formData	file	true	"Files to upload"
//	@Success		200			{object}	uploadResponse
//	@Failure		400			{object}	response.ErrorBody
//	@Failure		413			{object}	response.ErrorBody
//	@Failure		500			{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	form, err := ReadForm(r, "files", h.limits)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.svc.Upload(r.Context(), UploadRequest{
		Bucket:     form.Value("bucket"),
		Folder:     form.Value("folder"),
		RandomName: form.Value("randomName") != "false",
		Parts:      form.Files,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := uploadResponse{
		Message: "Files uploaded successfully",
		Files:   out.Files,
		Errors:  out.Errors,
	}
	var notes []string
	if lim := out.Limit; lim != nil {
		capacity := h.svc.MaxUploadFiles()
		notes = append(notes, fmt.Sprintf("Only first %d files uploaded due to max upload limit of %d", capacity, capacity))
		resp.Warning = fmt.Sprintf("%d file(s) exceeded the limit and were not uploaded", lim.Discarded)
		resp.TotalReceived = lim.TotalReceived
		resp.Uploaded = lim.Uploaded
		resp.Discarded = lim.Discarded
	}
	if len(out.Errors) > 0 {
		notes = append(notes, fmt.Sprintf("%d of %d file(s) failed to upload", len(out.Errors), len(out.Errors)+len(out.Files)))
	}
	if len(notes) > 0 {
		resp.Message = strings.Join(notes, "; ")
	}
	response.OK(w, resp)
}

// Replace godoc
//
//	@Summary		Replace a file
//	@Description	Overwrite (or create) the object folder/name with the uploaded file. Last writer wins.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			bucket	formData	string	false	"Bucket (defaults to BUCKET_NAME)"
//	@Param			folder	formData	string	false	"Key prefix"
//	@Param			name	formData	string	true	"Object name to write"
//	@Param			file	formData	file	true	"Replacement content"
//	@Success		200		{object}	replaceResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		413		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/upload [put]
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	form, err := ReadForm(r, "file", FormLimits{MaxFileSize: h.limits.MaxFileSize, MaxFiles: 1})
	if err != nil {
		writeError(w, err)
		return
	}

	req := ReplaceRequest{
		Bucket: form.Value("bucket"),
		Folder: form.Value("folder"),
		Name:   form.Value("name"),
	}
	if len(form.Files) > 0 {
		req.Part = &form.Files[0]
	}

	u, err := h.svc.Replace(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.OK(w, replaceResponse{Message: "File replaced successfully", URL: u})
}

// List godoc
//
//	@Summary		List files
//	@Description	List every object in the bucket whose key starts with folder.
//	@Tags			files
//	@Produce		json
//	@Param			bucket	query		string	false	"Bucket (defaults to BUCKET_NAME)"
//	@Param			folder	query		string	false	"Key prefix filter"
//	@Success		200		{object}	listResponse
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.svc.List(r.Context(), q.Get("bucket"), q.Get("folder"))
	if err != nil {
		slog.Error("list files failed", "bucket", q.Get("bucket"), "folder", q.Get("folder"), "err", err)
		response.InternalError(w, err.Error())
		return
	}
	response.OK(w, listResponse{Count: len(entries), Files: entries})
}

// Preview godoc
//
//	@Summary		Retrieve a file
//	@Description	Stream an object inline. The name may contain "/" for virtual folders.
//	@Tags			files
//	@Produce		octet-stream
//	@Param			bucket	path		string	true	"Bucket"
//	@Param			name	path		string	true	"Object key, URL-encoded"
//	@Success		200		{file}		binary
//	@Failure		404		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/storage/{bucket}/{name} [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	bucket := routeParam(r, "bucket")
	name := routeParam(r, "*")
	if name == "" {
		response.NotFound(w, "File not found")
		return
	}

	obj, err := h.svc.Open(r.Context(), bucket, name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrBucketNotFound):
			response.NotFound(w, "Bucket not found")
			return
		case errors.Is(err, storage.ErrObjectNotFound):
			response.NotFound(w, "File not found")
			return
		}
		slog.Error("open object failed", "bucket", bucket, "key", name, "err", err)
		response.InternalError(w, "Internal server error")
		return
	}
	defer obj.Close()

	contentType := obj.Info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Info.Size, 10))
	w.Header().Set("Content-Disposition", `inline; filename="`+strings.ReplaceAll(name, `"`, `\"`)+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj); err != nil {
		slog.Warn("object stream interrupted", "bucket", bucket, "key", name, "err", err)
	}
}

// Delete godoc
//
//	@Summary		Delete files
//	@Description	Delete folder/name for every name. Each deletion succeeds or fails on its own; failures are listed in errors.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			request	body		deleteRequest	true	"Names to delete"
//	@Success		200		{object}	deleteResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Router			/files [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	out, err := h.svc.Delete(r.Context(), DeleteRequest{
		Bucket: req.Bucket,
		Folder: req.Folder,
		Names:  req.Names,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	response.OK(w, deleteResponse{
		Message: "Delete operation completed",
		Deleted: out.Deleted,
		Errors:  out.Errors,
	})
}

// routeParam returns the chi capture key as a decoded string. chi routes on
// r.URL.RawPath only when it is set (non-default escaping such as "%2F");
// otherwise the capture comes from the already-decoded r.URL.Path and must
// not be unescaped again.
func routeParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if d, err := url.PathUnescape(v); err == nil {
		return d
	}
	return v
}

// writeError maps validation errors onto 4xx codes. Anything else is an
// upstream store failure and is reported as 500 with its text.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoFiles):
		response.BadRequest(w, "No files uploaded")
	case errors.Is(err, ErrFileRequired):
		response.BadRequest(w, "No file provided")
	case errors.Is(err, ErrNameRequired):
		response.BadRequest(w, "File name is required")
	case errors.Is(err, ErrNoNames):
		response.BadRequest(w, "No files provided")
	case errors.Is(err, ErrInvalidForm):
		response.BadRequest(w, "Invalid multipart form")
	case errors.Is(err, ErrUnexpectedField):
		response.BadRequest(w, "Unexpected field")
	case errors.Is(err, ErrTooManyParts):
		response.BadRequest(w, "Too many files")
	case errors.Is(err, ErrFileTooLarge):
		response.PayloadTooLarge(w, "File too large")
	default:
		slog.Error("request failed", "err", err)
		response.InternalError(w, err.Error())
	}
}
