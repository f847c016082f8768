package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"amr-data/internal/domain"
	"amr-data/internal/repository"
	"amr-data/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAPI(t *testing.T) (*Router, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	logger := zap.NewNop()

	router := NewRouter(logger)
	router.RegisterDashboardRoutes(NewDashboardHandler(
		service.NewDashboardService(store, store, store, store, logger), logger))
	router.RegisterCatalogRoutes(NewCatalogHandler(store, store, store, store, logger))
	router.RegisterObservationRoutes(NewObservationHandler(
		service.NewObservationService(store, nil, logger), logger))
	router.RegisterContentRoutes(NewContentHandler(store, store, logger))

	return router, store
}

func doJSON(t *testing.T, router *Router, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// recentDate keeps test observations inside the default twelve-month
// window the handlers resolve against the real clock.
func recentDate() time.Time {
	return time.Now().UTC().AddDate(0, -1, 0).Truncate(24 * time.Hour)
}

func seedObservation(t *testing.T, store *repository.MemoryStore, bacteriaID, antibioticID, regionID, total, resistant int) {
	t.Helper()
	_, err := store.Insert(context.Background(), domain.NewObservation{
		BacteriaID:       bacteriaID,
		AntibioticID:     antibioticID,
		RegionID:         regionID,
		SampleDate:       recentDate(),
		TotalSamples:     total,
		ResistantSamples: resistant,
	})
	require.NoError(t, err)
}

// ---- dashboard ----

func TestDashboardSummaryEndpoint(t *testing.T) {
	router, store := newTestAPI(t)
	seedObservation(t, store, 1, 1, 1, 100, 20)
	seedObservation(t, store, 1, 2, 1, 200, 40)

	rec := doJSON(t, router, http.MethodGet, "/api/dashboard/summary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	summary := decodeBody[domain.ResistanceSummary](t, rec)
	assert.Equal(t, 300, summary.TotalSamples)
	assert.Equal(t, 60, summary.ResistantIsolates)
	assert.Equal(t, 20.0, summary.ResistanceRate)
}

func TestDashboardTrendsEndpoint(t *testing.T) {
	router, store := newTestAPI(t)
	_, err := store.CreateBacteria(context.Background(), domain.Bacteria{Name: "E. coli"})
	require.NoError(t, err)
	seedObservation(t, store, 1, 1, 1, 100, 25)

	rec := doJSON(t, router, http.MethodGet, "/api/dashboard/trends", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	trends := decodeBody[[]domain.ResistanceTrend](t, rec)
	require.Len(t, trends, 1)
	assert.Equal(t, "E. coli", trends[0].BacteriaName)
	assert.Equal(t, 25.0, trends[0].ResistanceRate)
}

func TestDashboardEffectivenessEndpoint(t *testing.T) {
	router, store := newTestAPI(t)
	_, err := store.CreateAntibiotic(context.Background(), domain.Antibiotic{Name: "Amoxicillin"})
	require.NoError(t, err)
	seedObservation(t, store, 1, 1, 1, 100, 30)

	rec := doJSON(t, router, http.MethodGet, "/api/dashboard/effectiveness", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	ranking := decodeBody[[]domain.AntibioticEffectiveness](t, rec)
	require.Len(t, ranking, 1)
	assert.Equal(t, "Amoxicillin", ranking[0].Name)
	assert.Equal(t, 70.0, ranking[0].Effectiveness)
}

func TestDashboardRejectsMalformedFilters(t *testing.T) {
	router, _ := newTestAPI(t)

	for _, target := range []string{
		"/api/dashboard/summary?bacteriaId=abc",
		"/api/dashboard/trends?fromDate=01-05-2024",
		"/api/dashboard/effectiveness?regionId=1.5",
	} {
		rec := doJSON(t, router, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestDashboardMethodNotAllowed(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/dashboard/summary", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ---- catalogs ----

func TestBacteriaCRUDEndpoints(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/bacteria",
		domain.Bacteria{Name: "E. coli", ScientificName: "Escherichia coli"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[domain.Bacteria](t, rec)
	assert.Equal(t, 1, created.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/bacteria", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]domain.Bacteria](t, rec)
	require.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/bacteria/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Bacteria](t, rec)
	assert.Equal(t, "E. coli", got.Name)

	rec = doJSON(t, router, http.MethodGet, "/api/bacteria/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bacteria/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFacilitiesByRegionEndpoint(t *testing.T) {
	router, store := newTestAPI(t)
	ctx := context.Background()

	_, err := store.CreateFacility(ctx, domain.Facility{Name: "Central Hospital", RegionID: 1})
	require.NoError(t, err)
	_, err = store.CreateFacility(ctx, domain.Facility{Name: "Eastern Clinic", RegionID: 2})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/facilities?regionId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]domain.Facility](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Central Hospital", list[0].Name)
}

// ---- observations ----

func TestCreateObservationEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	record := domain.NewObservation{
		BacteriaID: 1, AntibioticID: 1, RegionID: 1,
		SampleDate: recentDate(), TotalSamples: 100, ResistantSamples: 20,
	}

	rec := doJSON(t, router, http.MethodPost, "/api/resistance-data", record)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[domain.Observation](t, rec)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.UploadedAt.IsZero())
}

func TestCreateObservationValidation(t *testing.T) {
	router, _ := newTestAPI(t)

	record := domain.NewObservation{
		BacteriaID: 1, AntibioticID: 1, RegionID: 1,
		SampleDate: recentDate(), TotalSamples: 10, ResistantSamples: 20,
	}

	rec := doJSON(t, router, http.MethodPost, "/api/resistance-data", record)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/resistance-data", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty body")
}

func TestBulkCreateEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	records := []domain.NewObservation{
		{BacteriaID: 1, AntibioticID: 1, RegionID: 1, SampleDate: recentDate(), TotalSamples: 100, ResistantSamples: 20},
		{BacteriaID: 2, AntibioticID: 2, RegionID: 2, SampleDate: recentDate(), TotalSamples: 50, ResistantSamples: 5},
	}

	rec := doJSON(t, router, http.MethodPost, "/api/resistance-data/bulk", records)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[bulkResponse](t, rec)
	assert.NotEmpty(t, resp.BatchID)
	assert.Len(t, resp.Records, 2)
}

func TestBulkCreateAllOrNothingEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	records := []domain.NewObservation{
		{BacteriaID: 1, AntibioticID: 1, RegionID: 1, SampleDate: recentDate(), TotalSamples: 100, ResistantSamples: 20},
		{BacteriaID: 0, AntibioticID: 1, RegionID: 1, SampleDate: recentDate(), TotalSamples: 100, ResistantSamples: 20},
	}

	rec := doJSON(t, router, http.MethodPost, "/api/resistance-data/bulk", records)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/resistance-data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]domain.Observation](t, rec))
}

// ---- excel ----

func TestDownloadTemplateEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodGet, "/api/resistance-data/template", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestImportEndpointRoundTrip(t *testing.T) {
	router, _ := newTestAPI(t)

	sampleDate := recentDate().Format("2006-01-02")
	workbook, err := generateObservationWorkbook(ObservationImportHeader, [][]any{
		{1, 1, 1, 5, sampleDate, 100, 20, "lab batch"},
		{2, 2, 2, nil, sampleDate, 50, 10, ""},
	})
	require.NoError(t, err)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "upload.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resistance-data/import", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody[bulkResponse](t, rec)
	require.Len(t, resp.Records, 2)
	require.NotNil(t, resp.Records[0].FacilityID)
	assert.Equal(t, 5, *resp.Records[0].FacilityID)
	assert.Nil(t, resp.Records[1].FacilityID)
	assert.Equal(t, "lab batch", resp.Records[0].Notes)
}

func TestImportEndpointRejectsNonMultipart(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/resistance-data/import", "not a form")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseObservationWorkbookErrors(t *testing.T) {
	sampleDate := recentDate().Format("2006-01-02")

	headerOnly, err := generateObservationWorkbook(ObservationImportHeader, nil)
	require.NoError(t, err)
	_, err = parseObservationWorkbook(bytes.NewReader(headerOnly))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data rows")

	badRow, err := generateObservationWorkbook(ObservationImportHeader, [][]any{
		{1, 1, 1, nil, sampleDate, 100, 20, ""},
		{"x", 1, 1, nil, sampleDate, 100, 20, ""},
	})
	require.NoError(t, err)
	_, err = parseObservationWorkbook(bytes.NewReader(badRow))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestExportEndpoint(t *testing.T) {
	router, store := newTestAPI(t)
	seedObservation(t, store, 1, 1, 1, 100, 20)

	rec := doJSON(t, router, http.MethodGet, "/api/resistance-data/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "resistance-data.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

// ---- content ----

func TestAlertsEndpoints(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/alerts", domain.NewAlert{
		Title:       "Carbapenem resistance spike",
		Description: "Meropenem resistance above 20% in two regions",
		Severity:    domain.SeverityCritical,
		IsActive:    true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/alerts", domain.NewAlert{
		Title:       "Resolved outbreak",
		Description: "MRSA cluster contained",
		Severity:    domain.SeverityInfo,
		IsActive:    false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.Alert](t, rec), 2)

	rec = doJSON(t, router, http.MethodGet, "/api/alerts?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	active := decodeBody[[]domain.Alert](t, rec)
	require.Len(t, active, 1)
	assert.Equal(t, "Carbapenem resistance spike", active[0].Title)
}

func TestResourcesEndpoints(t *testing.T) {
	router, _ := newTestAPI(t)

	rec := doJSON(t, router, http.MethodPost, "/api/resources", domain.NewResource{
		Title: "WHO GLASS report", Type: "report", URL: "https://example.org/glass",
		PublishedAt: recentDate(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[domain.Resource](t, rec)

	rec = doJSON(t, router, http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.Resource](t, rec), 1)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/resources/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/resources/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
