package batchapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sprasadik2010/vantage-system-sub000/internal/batch"
	"github.com/sprasadik2010/vantage-system-sub000/internal/importer"
)

type Handler struct {
	batchSvc  *batch.Service
	importSvc *importer.Service

	maxUploadBytes int64
}

func NewHandler(batchSvc *batch.Service, importSvc *importer.Service, maxUploadBytes int64) *Handler {
	return &Handler{
		batchSvc:       batchSvc,
		importSvc:      importSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
	r.Get("/{id}", h.status)
	r.Get("/{id}/errors", h.rowErrors)
	r.Post("/{id}/resume", h.resume)
}

type uploadResponse struct {
	JobID     uuid.UUID `json:"job_id"`
	TotalRows int       `json:"total_rows"`
}

type jobResponse struct {
	ID               uuid.UUID  `json:"id"`
	Filename         string     `json:"filename"`
	SubmittedBy      string     `json:"submitted_by"`
	TotalRows        int        `json:"total_rows"`
	ProcessedRows    int        `json:"processed_rows"`
	ErrorRows        int        `json:"error_rows"`
	TotalDistributed int64      `json:"total_distributed"`
	Processed        bool       `json:"processed"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

type rowErrorResponse struct {
	RowIndex    int       `json:"row_index"`
	BusinessKey string    `json:"business_key,omitempty"`
	Reason      string    `json:"reason"`
	FailedAt    time.Time `json:"failed_at"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatVantage
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	jobID, err := h.batchSvc.CreateJob(r.Context(), header.Filename, r.FormValue("submitted_by"), rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Row processing outlives the upload request.
	go func() {
		if err := h.batchSvc.Run(context.WithoutCancel(r.Context()), jobID); err != nil {
			slog.Error("batch processing failed", "job_id", jobID, "error", err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(uploadResponse{JobID: jobID, TotalRows: len(rows)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.jobID(w, r)
	if !ok {
		return
	}

	job, err := h.batchSvc.GetStatus(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, batch.ErrJobNotFound) {
			http.Error(w, "batch job not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toJobResponse(job)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) rowErrors(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.jobID(w, r)
	if !ok {
		return
	}

	rowErrs, err := h.batchSvc.RowErrors(r.Context(), jobID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	responses := make([]rowErrorResponse, 0, len(rowErrs))
	for _, re := range rowErrs {
		responses = append(responses, rowErrorResponse{
			RowIndex:    re.RowIndex,
			BusinessKey: re.BusinessKey,
			Reason:      re.Reason,
			FailedAt:    re.FailedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(responses); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) resume(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.jobID(w, r)
	if !ok {
		return
	}

	job, err := h.batchSvc.GetStatus(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, batch.ErrJobNotFound) {
			http.Error(w, "batch job not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if job.Processed {
		http.Error(w, "job already completed", http.StatusConflict)
		return
	}

	go func() {
		if err := h.batchSvc.Resume(context.WithoutCancel(r.Context()), jobID); err != nil {
			slog.Error("batch resume failed", "job_id", jobID, "error", err)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) jobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

func toJobResponse(job *batch.Job) jobResponse {
	return jobResponse{
		ID:               job.ID,
		Filename:         job.Filename,
		SubmittedBy:      job.SubmittedBy,
		TotalRows:        job.TotalRows,
		ProcessedRows:    job.ProcessedRows,
		ErrorRows:        job.ErrorRows,
		TotalDistributed: job.TotalDistributed,
		Processed:        job.Processed,
		SubmittedAt:      job.SubmittedAt,
		CompletedAt:      job.CompletedAt,
	}
}
