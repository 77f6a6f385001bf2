package checkout

import (
	"context"
	"fmt"
	"net/http"
)

const DefaultScriptURL = "https://checkout.razorpay.com/v1/checkout.js"

// ScriptLoader fetches the third-party checkout script the payment dialog
// depends on.
type ScriptLoader interface {
	Load(ctx context.Context) error
}

// HTTPScriptLoader loads the checkout script over HTTP. The widget caches a
// successful load for the rest of the process lifetime.
type HTTPScriptLoader struct {
	url        string
	httpClient *http.Client
}

func NewHTTPScriptLoader(url string, httpClient *http.Client) HTTPScriptLoader {
	if url == "" {
		url = DefaultScriptURL
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return HTTPScriptLoader{
		url:        url,
		httpClient: httpClient,
	}
}

func (l HTTPScriptLoader) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch checkout script: unexpected status %d", resp.StatusCode)
	}

	return nil
}
