package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// get performs a GET and returns the body of a 200 response.
// A 404 is reported as errNoData.
func get(ctx context.Context, client *http.Client, endpoint string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNoData
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
