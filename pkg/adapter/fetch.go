package adapter

import (
	"context"
	"time"

	"github.com/imroc/req"
	"github.com/m-mizutani/goerr/v2"
)

// HTTPFetcher downloads generated images from their URL
type HTTPFetcher struct {
	client *req.Req
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	r := req.New()
	if timeout > 0 {
		r.SetTimeout(timeout)
	}
	return &HTTPFetcher{client: r}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.Get(url, ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch", goerr.V("url", url))
	}

	if code := resp.Response().StatusCode; code >= 300 {
		return nil, goerr.New("unexpected status code", goerr.V("url", url), goerr.V("status", code))
	}

	return resp.Bytes(), nil
}
