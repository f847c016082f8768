package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"amr-data/internal/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	return json.Unmarshal(body, out)
}

// parseFilters builds a FilterSpec from dashboard/listing query params.
// Malformed ids or dates are rejected here, before anything reaches the
// aggregation layer.
func parseFilters(query url.Values) (domain.FilterSpec, error) {
	var filter domain.FilterSpec

	var err error
	if filter.BacteriaID, err = optionalIntParam(query, "bacteriaId"); err != nil {
		return domain.FilterSpec{}, err
	}
	if filter.AntibioticID, err = optionalIntParam(query, "antibioticId"); err != nil {
		return domain.FilterSpec{}, err
	}
	if filter.RegionID, err = optionalIntParam(query, "regionId"); err != nil {
		return domain.FilterSpec{}, err
	}
	if filter.FromDate, err = optionalDateParam(query, "fromDate"); err != nil {
		return domain.FilterSpec{}, err
	}
	if filter.ToDate, err = optionalDateParam(query, "toDate"); err != nil {
		return domain.FilterSpec{}, err
	}
	filter.TimePeriod = domain.TimePeriod(query.Get("timePeriod"))

	return filter, nil
}

func optionalIntParam(query url.Values, name string) (*int, error) {
	s := query.Get(name)
	if s == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, s)
	}
	return &i, nil
}

func optionalDateParam(query url.Values, name string) (*time.Time, error) {
	s := query.Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q (want YYYY-MM-DD)", name, s)
	}
	return &t, nil
}

// pathID extracts the trailing integer id from e.g. /api/bacteria/17.
func pathID(path, prefix string) (int, error) {
	s := path[len(prefix):]
	if s == "" {
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %q", s)
	}
	return id, nil
}
