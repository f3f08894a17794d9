// Package imagesearch resolves illustrative image URLs through the Pexels
// search API.
package imagesearch

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"resty.dev/v3"

	"gift-server/internal/infrastructure/logger"
	"gift-server/internal/infrastructure/metrics"
	"gift-server/internal/utils/httpclients"
	"gift-server/internal/utils/platformerrors"
)

const (
	genericQuery   = "gift present"
	retryCount     = 3
	retryWait      = 2 * time.Second
	perPageDefault = "1"
	perPageDiverse = "15"
)

// diversifiers widen repeated generic searches so AI gifts do not all end up
// with the same stock photo.
var diversifiers = []string{"colorful", "beautiful", "modern", "elegant", "creative", "unique", "special"}

type photo struct {
	Src struct {
		Medium string `json:"medium"`
	} `json:"src"`
}

type searchResponse struct {
	Photos []photo `json:"photos"`
}

// Client looks up image URLs with an in-process query cache and bounded
// retry on provider rate limits.
type Client struct {
	http   *resty.Client
	apiKey string

	mu    sync.Mutex
	cache map[string]string
}

// NewClient builds a Pexels client against the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	httpClient := httpclients.NewClient("PexelsClient")
	httpClient.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	httpClient.SetHeader("Authorization", apiKey)
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

// FindImage resolves a text query to an image URL. Lookup order: exact query,
// first word of a multi-word query, then a diversified generic gift search.
// The result is cached per query. Failures return an empty URL and an error;
// callers treat the empty URL as "no image", never as fatal.
func (c *Client) FindImage(ctx context.Context, query string, english bool) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("imagesearch: empty query")
	}

	c.mu.Lock()
	if url, ok := c.cache[query]; ok {
		c.mu.Unlock()
		log := logger.GetLogger()
		log.Debug().Str("query", query).Msg("image cache hit")
		return url, nil
	}
	c.mu.Unlock()

	url, err := c.search(ctx, query, perPageDefault, "")
	if err != nil {
		return "", err
	}

	if url == "" && strings.Contains(query, " ") {
		firstWord := strings.Fields(query)[0]
		url, err = c.search(ctx, firstWord, perPageDefault, "")
		if err != nil {
			return "", err
		}
	}

	if url == "" {
		url, err = c.diversifiedGenericSearch(ctx)
		if err != nil {
			return "", err
		}
	}

	if url == "" {
		return "", errors.New("imagesearch: no images found")
	}

	c.mu.Lock()
	c.cache[query] = url
	c.mu.Unlock()
	return url, nil
}

// diversifiedGenericSearch pulls a random photo from a random page of a
// "<diversifier> gift" search, so consecutive fallbacks differ.
func (c *Client) diversifiedGenericSearch(ctx context.Context) (string, error) {
	diversifier := diversifiers[rand.Intn(len(diversifiers))]
	page := strconv.Itoa(rand.Intn(5) + 1)

	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":       diversifier + " " + genericQuery,
			"per_page":    perPageDiverse,
			"page":        page,
			"orientation": "square",
		}).
		SetResult(&out).
		Get("/search")
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("pexels", "request").Inc()
		return "", platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "pexels diversified search failed")
	}
	if !resp.IsSuccess() {
		metrics.ProviderErrorsTotal.WithLabelValues("pexels", "status").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"pexels diversified search returned "+resp.Status(), nil, "c2f481d6-0b3a-47e9-88d2-5a914c7e3f60")
	}

	if len(out.Photos) == 0 {
		return "", nil
	}
	pick := out.Photos[rand.Intn(len(out.Photos))]
	return pick.Src.Medium, nil
}

func (c *Client) search(ctx context.Context, query, perPage, page string) (string, error) {
	params := map[string]string{
		"query":       query,
		"per_page":    perPage,
		"orientation": "square",
	}
	if page != "" {
		params["page"] = page
	}

	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		Get("/search")
	if err != nil {
		metrics.ProviderErrorsTotal.WithLabelValues("pexels", "request").Inc()
		return "", platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "pexels search failed")
	}
	if !resp.IsSuccess() {
		metrics.ProviderErrorsTotal.WithLabelValues("pexels", "status").Inc()
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"pexels search returned "+resp.Status(), nil, "9e7d2c30-4a8f-4b61-b0e5-6f1c83d92a47")
	}

	if len(out.Photos) == 0 {
		return "", nil
	}
	return out.Photos[0].Src.Medium, nil
}
