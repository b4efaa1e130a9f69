package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"morning-macro/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const fredBaseURL = "https://api.stlouisfed.org"

// observationLimit is how many points each query asks for. The briefing only
// needs the latest two; the wider window costs nothing and keeps the response
// useful for the ops preview endpoint.
const observationLimit = 10

// FredProvider fetches series observations from the FRED API.
type FredProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
}

func NewFredProvider(apiKey string, tracer trace.Tracer) *FredProvider {
	return &FredProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: fredBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
	}
}

// FetchObservations returns the observations for one series, newest first,
// exactly as FRED orders them with sort_order=desc.
func (p *FredProvider) FetchObservations(ctx context.Context, seriesID string) ([]domain.Observation, error) {
	_, span := p.tracer.Start(ctx, "fred.fetch-observations")
	defer span.End()

	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", p.apiKey)
	q.Set("file_type", "json")
	q.Set("limit", fmt.Sprintf("%d", observationLimit))
	q.Set("sort_order", "desc")

	reqURL := fmt.Sprintf("%s/fred/series/observations?%s", p.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch observations for %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("FRED API error %d for %s: %s", resp.StatusCode, seriesID, string(body))
	}

	var payload struct {
		Observations []struct {
			Date  string `json:"date"`
			Value string `json:"value"`
		} `json:"observations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode observations for %s: %w", seriesID, err)
	}

	observations := make([]domain.Observation, 0, len(payload.Observations))
	for _, o := range payload.Observations {
		observations = append(observations, domain.Observation{
			Date:  o.Date,
			Value: domain.ParseValue(o.Value),
		})
	}

	return observations, nil
}
