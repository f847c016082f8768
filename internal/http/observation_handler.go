package httpapi

import (
	"errors"
	"net/http"

	"amr-data/internal/domain"
	"amr-data/internal/service"

	"go.uber.org/zap"
)

const maxObservationBody = 16 << 20 // bulk uploads can be large

// ObservationHandler resistance data listing and entry.
type ObservationHandler struct {
	observations service.ObservationService
	logger       *zap.Logger
}

func NewObservationHandler(observations service.ObservationService, logger *zap.Logger) *ObservationHandler {
	return &ObservationHandler{observations: observations, logger: logger}
}

func (h *ObservationHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.observations.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list resistance data failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch resistance data")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ObservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record domain.NewObservation
	if err := readBodyJSON(r, maxObservationBody, &record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.observations.Create(r.Context(), record)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidObservation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("create resistance data failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create resistance data")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// bulkResponse ties the stored records to their batch id.
type bulkResponse struct {
	BatchID string               `json:"batchId"`
	Records []domain.Observation `json:"records"`
}

func (h *ObservationHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var records []domain.NewObservation
	if err := readBodyJSON(r, maxObservationBody, &records); err != nil {
		writeError(w, http.StatusBadRequest, "Expected an array of resistance data")
		return
	}

	batchID, stored, err := h.observations.BulkCreate(r.Context(), records)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidObservation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("bulk create resistance data failed",
			zap.Error(err), zap.String("batch_id", batchID))
		writeError(w, http.StatusInternalServerError, "Failed to create resistance data")
		return
	}
	writeJSON(w, http.StatusCreated, bulkResponse{BatchID: batchID, Records: stored})
}
