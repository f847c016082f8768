package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router thin wrapper over the standard library http.ServeMux.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterDashboardRoutes the three aggregation views, all sharing the
// same filter query params.
func (r *Router) RegisterDashboardRoutes(h *DashboardHandler) {
	r.Handle("/api/dashboard/summary", getOnly(h.GetSummary))
	r.Handle("/api/dashboard/trends", getOnly(h.GetTrends))
	r.Handle("/api/dashboard/effectiveness", getOnly(h.GetEffectiveness))
}

// RegisterCatalogRoutes bacteria / antibiotics / regions / facilities
func (r *Router) RegisterCatalogRoutes(h *CatalogHandler) {
	r.Handle("/api/bacteria", listOrCreate(h.ListBacteria, h.CreateBacteria))
	r.Handle("/api/bacteria/", getOnly(h.GetBacteria))

	r.Handle("/api/antibiotics", listOrCreate(h.ListAntibiotics, h.CreateAntibiotic))
	r.Handle("/api/antibiotics/", getOnly(h.GetAntibiotic))

	r.Handle("/api/regions", listOrCreate(h.ListRegions, h.CreateRegion))
	r.Handle("/api/regions/", getOnly(h.GetRegion))

	r.Handle("/api/facilities", listOrCreate(h.ListFacilities, h.CreateFacility))
}

// RegisterObservationRoutes resistance data entry, listing and Excel
// import/export.
func (r *Router) RegisterObservationRoutes(h *ObservationHandler) {
	r.Handle("/api/resistance-data", listOrCreate(h.List, h.Create))
	r.Handle("/api/resistance-data/bulk", postOnly(h.BulkCreate))
	r.Handle("/api/resistance-data/template", getOnly(h.DownloadTemplate))
	r.Handle("/api/resistance-data/export", getOnly(h.Export))
	r.Handle("/api/resistance-data/import", postOnly(h.Import))
}

// RegisterContentRoutes alerts and resources
func (r *Router) RegisterContentRoutes(h *ContentHandler) {
	r.Handle("/api/alerts", listOrCreate(h.ListAlerts, h.CreateAlert))
	r.Handle("/api/resources", listOrCreate(h.ListResources, h.CreateResource))
	r.Handle("/api/resources/", getOnly(h.GetResource))
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

func listOrCreate(list, create http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			list(w, req)
		case http.MethodPost:
			create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}
