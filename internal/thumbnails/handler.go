package thumbnails

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/pkg/handlers"
	"github.com/JaimeStill/dataset-lab/pkg/routes"
)

// multipartOverhead allows for multipart framing around the logo itself.
const multipartOverhead = 1 << 20

// DatasetLoader loads datasets and rendered thumbnails for the HTTP surface.
type DatasetLoader interface {
	Find(ctx context.Context, id uuid.UUID) (*datasets.Dataset, error)
	ThumbnailData(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// UpdateRequest is the JSON body of a thumbnail update.
type UpdateRequest struct {
	Intent     string     `json:"intent"`
	FileID     *uuid.UUID `json:"file_id,omitempty"`
	StagingKey string     `json:"staging_key,omitempty"`
}

// StageResponse reports where an upload was staged.
type StageResponse struct {
	StagingKey string `json:"staging_key"`
}

// Handler provides HTTP endpoints for dataset thumbnails.
type Handler struct {
	sys         System
	datasets    DatasetLoader
	logger      *slog.Logger
	uploadLimit int64
}

func NewHandler(sys System, datasets DatasetLoader, logger *slog.Logger, uploadLimit int64) *Handler {
	return &Handler{
		sys:         sys,
		datasets:    datasets,
		logger:      logger.With("handler", "thumbnails"),
		uploadLimit: uploadLimit,
	}
}

// Routes returns the thumbnail endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Tags:   []string{"Thumbnails"},
		Prefix: "/datasets/{id}/thumbnail",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "GET", Pattern: "/data", Handler: h.Data, OpenAPI: Spec.Data},
			{Method: "PUT", Pattern: "", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "POST", Pattern: "/upload", Handler: h.Upload, OpenAPI: Spec.Upload},
			{Method: "POST", Pattern: "/staging", Handler: h.Stage, OpenAPI: Spec.Stage},
			{Method: "DELETE", Pattern: "", Handler: h.Remove, OpenAPI: Spec.Remove},
		},
	}
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	t, err := h.sys.Find(r.Context(), ds)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	h.respondThumbnail(w, t)
}

func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	data, err := h.datasets.ThumbnailData(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, statusFor(err), err)
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	handlers.RespondBytes(w, http.StatusOK, "image/png", data)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	intent, err := ParseIntent(req.Intent)
	if err != nil {
		intent = Intent(req.Intent)
	}

	cmd := Command{
		Dataset:    ds,
		Intent:     intent,
		FileID:     req.FileID,
		StagingKey: req.StagingKey,
	}

	h.execute(w, r, cmd)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	file, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	h.execute(w, r, Command{
		Dataset: ds,
		Intent:  IntentUseUploadedImage,
		Input:   file,
	})
}

func (h *Handler) Stage(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	file, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	key, err := h.sys.Stage(r.Context(), ds, file)
	if err != nil {
		handlers.RespondError(w, h.logger, statusFor(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, StageResponse{StagingKey: key})
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	if _, err := h.sys.Execute(r.Context(), Command{Dataset: ds, Intent: IntentRemove}); err != nil {
		handlers.RespondError(w, h.logger, statusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, cmd Command) {
	t, err := h.sys.Execute(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, statusFor(err), err)
		return
	}
	h.respondThumbnail(w, t)
}

func (h *Handler) respondThumbnail(w http.ResponseWriter, t *datasets.Thumbnail) {
	if t == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, t)
}

func (h *Handler) loadDataset(w http.ResponseWriter, r *http.Request) (*datasets.Dataset, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	ds, err := h.datasets.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, datasets.MapHTTPStatus(err), err)
		return nil, false
	}
	return ds, true
}

func (h *Handler) formFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadLimit+multipartOverhead)

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			err = fmt.Errorf("%w: limit %d bytes", ErrLimitExceeded, h.uploadLimit)
		} else {
			err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return file, true
}

// statusFor maps command errors first and falls back to dataset errors.
func statusFor(err error) int {
	if status := MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return datasets.MapHTTPStatus(err)
}
