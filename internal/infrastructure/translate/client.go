// Package translate converts short text to English through a
// LibreTranslate-compatible API.
package translate

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"resty.dev/v3"

	"gift-server/internal/infrastructure/metrics"
	"gift-server/internal/utils/httpclients"
	"gift-server/internal/utils/platformerrors"
)

const (
	retryCount = 3
	retryWait  = 1 * time.Second
)

type translateRequest struct {
	Query  string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Client translates text with an in-process cache and bounded retry on rate
// limits.
type Client struct {
	http   *resty.Client
	apiKey string

	mu    sync.Mutex
	cache map[string]string
}

// NewClient builds a translation client against the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	httpClient := httpclients.NewClient("TranslateClient")
	httpClient.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	httpClient.SetRetryCount(retryCount)
	httpClient.SetRetryWaitTime(retryWait)
	httpClient.AddRetryConditions(func(res *resty.Response, err error) bool {
		return err == nil && res != nil && res.StatusCode() == http.StatusTooManyRequests
	})

	return &Client{
		http:   httpClient,
		apiKey: apiKey,
		cache:  make(map[string]string),
	}
}

// Translate converts text to English. Failures return an empty string and an
// error; callers treat the empty result as "translation unavailable", never
// as fatal.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	c.mu.Lock()
	if translated, ok := c.cache[text]; ok {
		c.mu.Unlock()
		return translated, nil
	}
	c.mu.Unlock()

	var out translateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(translateRequest{
			Query:  text,
			Source: "auto",
			Target: "en",
			APIKey: c.apiKey,
		}).
		SetResult(&out).
		Post("/translate")
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("translate", "request").Inc()
		return "", platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "translate request failed")
	}
	if !resp.IsSuccess() {
		metrics.ProviderErrorsTotal.WithLabelValues("translate", "status").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"translate returned "+resp.Status(), nil, "5b8e04a3-2c67-4fd1-9e85-74d0c1f2b839")
	}

	translated := strings.TrimSpace(out.TranslatedText)
	if translated != "" {
		c.mu.Lock()
		c.cache[text] = translated
		c.mu.Unlock()
	}
	return translated, nil
}
