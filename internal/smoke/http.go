package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	service "github.com/okian/teammate/internal/app"
	"github.com/okian/teammate/pkg/logger"
)

const workerChannelMultiplier = 2

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// decode reads a JSON body into v when the status matches want.
func decode(resp *http.Response, want int, v any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%w: status %d: %s", ErrUnexpected, resp.StatusCode, bytes.TrimSpace(body))
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(body, v)
}

type submitResult int

const (
	submitOK submitResult = iota
	submitConflict
	submitFailed
)

// submitSurveys registers every survey using a pool of workers.
func submitSurveys(ctx context.Context, cfg *Config, log logger.Logger, surveys []service.SurveyInput, stats *Stats) {
	log.Info(ctx, "submitting surveys", logger.Int("count", len(surveys)), logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/participants"

	var registered, conflicts, failed, submitted int64

	ch := make(chan service.SurveyInput, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range ch {
				atomic.AddInt64(&submitted, 1)
				switch submitOne(ctx, client, url, in) {
				case submitOK:
					atomic.AddInt64(&registered, 1)
				case submitConflict:
					atomic.AddInt64(&conflicts, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(ch)
		for _, in := range surveys {
			select {
			case <-ctx.Done():
				return
			case ch <- in:
			}
		}
	}()
	wg.Wait()

	stats.Submitted = int(submitted)
	stats.Registered = int(registered)
	stats.Conflicts = int(conflicts)
	stats.Failed = int(failed)

	log.Info(ctx, "survey submission completed",
		logger.Int("registered", stats.Registered),
		logger.Int("conflicts", stats.Conflicts),
		logger.Int("failed", stats.Failed))
}

func submitOne(ctx context.Context, client *HTTPClient, url string, in service.SurveyInput) submitResult {
	resp, err := client.Post(ctx, url, in)
	if err != nil {
		return submitFailed
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusCreated:
		return submitOK
	case http.StatusConflict:
		return submitConflict
	default:
		return submitFailed
	}
}
