package httpapi

import (
	"net/http"
	"strconv"

	"amr-data/internal/domain"
	"amr-data/internal/repository"

	"go.uber.org/zap"
)

const maxCatalogBody = 1 << 20 // 1 MiB

// CatalogHandler admin endpoints for the reference catalogs. Thin
// request/response mapping straight onto the repositories.
type CatalogHandler struct {
	bacteria    repository.BacteriaRepository
	antibiotics repository.AntibioticsRepository
	regions     repository.RegionsRepository
	facilities  repository.FacilitiesRepository
	logger      *zap.Logger
}

func NewCatalogHandler(
	bacteria repository.BacteriaRepository,
	antibiotics repository.AntibioticsRepository,
	regions repository.RegionsRepository,
	facilities repository.FacilitiesRepository,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		bacteria:    bacteria,
		antibiotics: antibiotics,
		regions:     regions,
		facilities:  facilities,
		logger:      logger,
	}
}

// ---- bacteria ----

func (h *CatalogHandler) ListBacteria(w http.ResponseWriter, r *http.Request) {
	out, err := h.bacteria.ListBacteria(r.Context())
	if err != nil {
		h.logger.Error("list bacteria failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch bacteria")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) GetBacteria(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/bacteria/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}
	b, err := h.bacteria.GetBacteria(r.Context(), id)
	if err != nil {
		h.logger.Error("get bacteria failed", zap.Error(err), zap.Int("id", id))
		writeError(w, http.StatusInternalServerError, "Failed to fetch bacteria")
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "Bacteria not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *CatalogHandler) CreateBacteria(w http.ResponseWriter, r *http.Request) {
	var b domain.Bacteria
	if err := readBodyJSON(r, maxCatalogBody, &b); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if b.Name == "" || b.ScientificName == "" {
		writeError(w, http.StatusBadRequest, "name and scientificName are required")
		return
	}
	created, err := h.bacteria.CreateBacteria(r.Context(), b)
	if err != nil {
		h.logger.Error("create bacteria failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create bacteria")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ---- antibiotics ----

func (h *CatalogHandler) ListAntibiotics(w http.ResponseWriter, r *http.Request) {
	out, err := h.antibiotics.ListAntibiotics(r.Context())
	if err != nil {
		h.logger.Error("list antibiotics failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch antibiotics")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) GetAntibiotic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/antibiotics/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}
	a, err := h.antibiotics.GetAntibiotic(r.Context(), id)
	if err != nil {
		h.logger.Error("get antibiotic failed", zap.Error(err), zap.Int("id", id))
		writeError(w, http.StatusInternalServerError, "Failed to fetch antibiotic")
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Antibiotic not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *CatalogHandler) CreateAntibiotic(w http.ResponseWriter, r *http.Request) {
	var a domain.Antibiotic
	if err := readBodyJSON(r, maxCatalogBody, &a); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if a.Name == "" || a.Class == "" {
		writeError(w, http.StatusBadRequest, "name and class are required")
		return
	}
	created, err := h.antibiotics.CreateAntibiotic(r.Context(), a)
	if err != nil {
		h.logger.Error("create antibiotic failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create antibiotic")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ---- regions ----

func (h *CatalogHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	out, err := h.regions.ListRegions(r.Context())
	if err != nil {
		h.logger.Error("list regions failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch regions")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) GetRegion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r.URL.Path, "/api/regions/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}
	region, err := h.regions.GetRegion(r.Context(), id)
	if err != nil {
		h.logger.Error("get region failed", zap.Error(err), zap.Int("id", id))
		writeError(w, http.StatusInternalServerError, "Failed to fetch region")
		return
	}
	if region == nil {
		writeError(w, http.StatusNotFound, "Region not found")
		return
	}
	writeJSON(w, http.StatusOK, region)
}

func (h *CatalogHandler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var region domain.Region
	if err := readBodyJSON(r, maxCatalogBody, &region); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if region.Name == "" || region.Code == "" {
		writeError(w, http.StatusBadRequest, "name and code are required")
		return
	}
	created, err := h.regions.CreateRegion(r.Context(), region)
	if err != nil {
		h.logger.Error("create region failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create region")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ---- facilities ----

func (h *CatalogHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	var (
		out []domain.Facility
		err error
	)
	if s := r.URL.Query().Get("regionId"); s != "" {
		regionID, convErr := strconv.Atoi(s)
		if convErr != nil {
			writeError(w, http.StatusBadRequest, "Invalid regionId")
			return
		}
		out, err = h.facilities.ListFacilitiesByRegion(r.Context(), regionID)
	} else {
		out, err = h.facilities.ListFacilities(r.Context())
	}
	if err != nil {
		h.logger.Error("list facilities failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch facilities")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CatalogHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	var f domain.Facility
	if err := readBodyJSON(r, maxCatalogBody, &f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if f.Name == "" || f.Type == "" || f.RegionID <= 0 {
		writeError(w, http.StatusBadRequest, "name, type and regionId are required")
		return
	}
	created, err := h.facilities.CreateFacility(r.Context(), f)
	if err != nil {
		h.logger.Error("create facility failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create facility")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
