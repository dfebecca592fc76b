package probe

import (
	"context"
	"net/http"

	"github.com/hamed0406/edgedebug/internal/version"
)

// newClient builds a client for a single probe run. Deadlines come from the
// collector's ctx, not the client, so the caller must close idle connections
// before returning.
func newClient() (*http.Client, func()) {
	t := &http.Transport{DisableKeepAlives: false}
	return &http.Client{Transport: t}, t.CloseIdleConnections
}

func newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent)
	req.Header.Set("Accept-Language", "en-US")
	return req, nil
}
