package httpapi

import (
	"net/http"

	"amr-data/internal/domain"
	"amr-data/internal/repository"

	"go.uber.org/zap"
)

// ContentHandler alerts and resources endpoints.
type ContentHandler struct {
	alerts    repository.AlertsRepository
	resources repository.ResourcesRepository
	logger    *zap.Logger
}

func NewContentHandler(alerts repository.AlertsRepository, resources repository.ResourcesRepository, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{alerts: alerts, resources: resources, logger: logger}
}

// ---- alerts ----

func (h *ContentHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	var activeOnly *bool
	if s := r.URL.Query().Get("active"); s != "" {
		active := s == "true"
		activeOnly = &active
	}

	out, err := h.alerts.ListAlerts(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("list alerts failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch alerts")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ContentHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var a domain.NewAlert
	if err := readBodyJSON(r, maxCatalogBody, &a); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if a.Title == "" || a.Description == "" || a.Severity == "" {
		writeError(w, http.StatusBadRequest, "title, description and severity are required")
		return
	}
	created, err := h.alerts.CreateAlert(r.Context(), a)
	if err != nil {
		h.logger.Error("create alert failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create alert")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ---- resources ----

func (h *ContentHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	out, err := h.resources.ListResources(r.Context())
	if err != nil {
		h.logger.Error("list resources failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch resources")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ContentHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/resources/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}
	res, err := h.resources.GetResource(r.Context(), id)
	if err != nil {
		h.logger.Error("get resource failed", zap.Error(err), zap.Int("id", id))
		writeError(w, http.StatusInternalServerError, "Failed to fetch resource")
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ContentHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var res domain.NewResource
	if err := readBodyJSON(r, maxCatalogBody, &res); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if res.Title == "" || res.Type == "" || res.URL == "" {
		writeError(w, http.StatusBadRequest, "title, type and url are required")
		return
	}
	created, err := h.resources.CreateResource(r.Context(), res)
	if err != nil {
		h.logger.Error("create resource failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create resource")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
