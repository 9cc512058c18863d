package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/talentflow/talentflow-backend/internal/extraction/domain"
	"github.com/talentflow/talentflow-backend/internal/extraction/service"
	apperrors "github.com/talentflow/talentflow-backend/pkg/errors"
	"github.com/talentflow/talentflow-backend/pkg/httputil"
	"github.com/talentflow/talentflow-backend/pkg/logger"
)

const maxUploadSize = 20 << 20 // 20MB

// Handler handles HTTP requests for profile extraction
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// NewHandler creates a new profile extraction handler
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		log:     log.WithComponent("extraction-handler"),
	}
}

// Routes mounts the extraction endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Post("/profiles/extract", h.Extract)
	r.Get("/profiles/extract/{jobId}", h.GetResult)
	r.Post("/profiles/extract/sync", h.ExtractSync)
	r.Post("/profiles/extract/text", h.ExtractText)
}

// Extract handles POST /profiles/extract
// Accepts a multipart form with:
// - file: the résumé document
// - format: one of pdf, docx, doc, rtf, odt, txt (defaults to the file extension)
// Starts an asynchronous extraction job and returns its polling handle.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	data, format, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	job, err := h.service.StartExtraction(r.Context(), data, format)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusAccepted, job)
}

// GetResult handles GET /profiles/extract/{jobId}
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobId")
	if jobID == "" {
		httputil.Error(w, apperrors.BadRequest("missing jobId parameter"))
		return
	}

	job := h.service.GetJob(jobID)
	if job == nil {
		httputil.Error(w, apperrors.NotFound("extraction job"))
		return
	}

	httputil.JSON(w, http.StatusOK, job)
}

// ExtractSync handles POST /profiles/extract/sync
// Runs the pipeline inline and returns the profile in one round trip. Meant
// for small documents and backoffice tooling; uploads go through the async
// endpoint.
func (h *Handler) ExtractSync(w http.ResponseWriter, r *http.Request) {
	data, format, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	output, err := h.service.Parse(r.Context(), data, format)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, output)
}

// ExtractTextRequest is the JSON body for pasted résumé text
type ExtractTextRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// ExtractText handles POST /profiles/extract/text
// Accepts already-plain résumé text as JSON, skipping document decoding.
func (h *Handler) ExtractText(w http.ResponseWriter, r *http.Request) {
	var req ExtractTextRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	output, err := h.service.Parse(r.Context(), []byte(req.Text), domain.FormatTXT)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, output)
}

// readUpload parses the multipart form and returns the document bytes and
// declared format. Writes the error response itself when the form is bad.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, domain.DocumentFormat, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.Error(w, apperrors.BadRequest("file too large or invalid multipart form"))
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.Error(w, apperrors.BadRequest("missing file in request"))
		return nil, "", false
	}
	defer file.Close()

	formatStr := r.FormValue("format")
	if formatStr == "" && header != nil {
		formatStr = strings.TrimPrefix(filepath.Ext(header.Filename), ".")
	}
	format := domain.DocumentFormat(strings.ToLower(formatStr))

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read uploaded file")
		httputil.Error(w, apperrors.Internal("failed to read uploaded file"))
		return nil, "", false
	}

	return data, format, true
}
