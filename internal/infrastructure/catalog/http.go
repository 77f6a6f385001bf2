package catalog

import (
	"context"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"dealdrop/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// HTTPSource pulls the catalog from an upstream deal feed.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, httpClient *http.Client) *HTTPSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPSource{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (s *HTTPSource) FetchDeals(ctx context.Context) ([]entity.Deal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/deals", nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deal feed: unexpected status %d", resp.StatusCode)
	}

	var deals []entity.Deal
	if err := json.NewDecoder(resp.Body).Decode(&deals); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return deals, nil
}
