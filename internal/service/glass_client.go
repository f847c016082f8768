package service

import (
	"context"
	"fmt"
	"time"

	"amr-data/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// GlassClient client for a GLASS-style national surveillance feed that
// publishes aggregated resistance records. Records come back in the same
// shape as manual entry and flow through the normal bulk-insert path.
type GlassClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// glassExportResponse feed payload for /v1/exports/resistance
type glassExportResponse struct {
	Records []glassRecord `json:"records"`
}

type glassRecord struct {
	BacteriaID       int    `json:"bacteriaId"`
	AntibioticID     int    `json:"antibioticId"`
	RegionID         int    `json:"regionId"`
	FacilityID       *int   `json:"facilityId,omitempty"`
	SampleDate       string `json:"sampleDate"` // YYYY-MM-DD
	TotalSamples     int    `json:"totalSamples"`
	ResistantSamples int    `json:"resistantSamples"`
}

func NewGlassClient(baseURL, apiKey string, logger *zap.Logger) *GlassClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "Bearer "+apiKey)
	}

	return &GlassClient{
		httpClient: client,
		logger:     logger,
	}
}

var _ feedClient = (*GlassClient)(nil)

// FetchObservations downloads resistance records published since the
// given date.
func (c *GlassClient) FetchObservations(ctx context.Context, since time.Time) ([]domain.NewObservation, error) {
	c.logger.Info("fetching surveillance feed export",
		zap.Time("since", since))

	var response glassExportResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("since", since.Format("2006-01-02")).
		SetResult(&response).
		Get("/v1/exports/resistance")
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed request failed: status %d", resp.StatusCode())
	}

	records := make([]domain.NewObservation, 0, len(response.Records))
	for i, r := range response.Records {
		sampleDate, err := time.Parse("2006-01-02", r.SampleDate)
		if err != nil {
			return nil, fmt.Errorf("feed record %d: bad sampleDate %q: %w", i, r.SampleDate, err)
		}
		records = append(records, domain.NewObservation{
			BacteriaID:       r.BacteriaID,
			AntibioticID:     r.AntibioticID,
			RegionID:         r.RegionID,
			FacilityID:       r.FacilityID,
			SampleDate:       sampleDate,
			TotalSamples:     r.TotalSamples,
			ResistantSamples: r.ResistantSamples,
		})
	}

	c.logger.Info("surveillance feed export downloaded",
		zap.Int("records", len(records)))
	return records, nil
}
