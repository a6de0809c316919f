package simulate

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

	"github.com/okian/teamforge/pkg/logger"
)

// HTTPClient wraps http.Client with a base URL and JSON helpers.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Get performs a GET request and decodes a 200 response into out.
func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	status, body, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, status)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// Post performs a POST request with a JSON body and returns the status and
// raw response body.
func (c *HTTPClient) Post(ctx context.Context, path string, payload any) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (int, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// submitGestures fans gestures out to config.Workers concurrent submitters.
func submitGestures(ctx context.Context, config *Config, client *HTTPClient, gestures []Gesture, stats *Stats) {
	logger.Get().Info(ctx, "submitting gestures",
		logger.Int("gestures", len(gestures)),
		logger.Int("workers", config.Workers))

	var (
		sent      atomic.Int64
		committed atomic.Int64
		duplicate atomic.Int64
		conflict  atomic.Int64
		rejected  atomic.Int64
		failed    atomic.Int64
	)

	gestureChan := make(chan Gesture, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range gestureChan {
				if ctx.Err() != nil {
					return
				}
				for _, outcome := range submitGesture(ctx, client, g) {
					sent.Add(1)
					switch outcome {
					case outcomeCommitted:
						committed.Add(1)
					case outcomeDuplicate:
						duplicate.Add(1)
					case outcomeConflict:
						conflict.Add(1)
					case outcomeRejected:
						rejected.Add(1)
					default:
						failed.Add(1)
					}
				}
				if config.Verbose {
					logger.Get().Debug(ctx, "gesture submitted",
						logger.String("kind", string(g.Kind)),
						logger.String("id", g.ID))
				}
			}
		}()
	}

	go func() {
		defer close(gestureChan)
		for _, g := range gestures {
			select {
			case <-ctx.Done():
				return
			case gestureChan <- g:
			}
		}
	}()

	wg.Wait()

	stats.RequestsSent = int(sent.Load())
	stats.Committed = int(committed.Load())
	stats.Duplicates = int(duplicate.Load())
	stats.Conflicts = int(conflict.Load())
	stats.Rejected = int(rejected.Load())
	stats.Failed = int(failed.Load())
}

// submitGesture sends the requests that make up g and classifies each.
func submitGesture(ctx context.Context, client *HTTPClient, g Gesture) []string {
	switch g.Kind {
	case KindDrag:
		outcomes := make([]string, 0, 3)
		start := map[string]any{"id": g.ID, "source": g.Source, "index": g.Index}
		outcomes = append(outcomes, post(ctx, client, "/drag/start", start))
		over := map[string]any{"over_id": g.OverID, "over_collection": g.OverCollection}
		outcomes = append(outcomes, post(ctx, client, "/drag/over", over))
		return append(outcomes, post(ctx, client, "/drag/end", map[string]any{"event_id": g.EventID}))
	case KindAdd:
		return []string{post(ctx, client, "/team/add", moveBody(g))}
	case KindMove:
		return []string{post(ctx, client, "/team/move", moveBody(g))}
	case KindRemove:
		return []string{post(ctx, client, "/team/remove", map[string]any{"event_id": g.EventID, "id": g.ID})}
	case KindToggle:
		return []string{post(ctx, client, "/selector/toggle", nil)}
	case KindPointer:
		return []string{post(ctx, client, "/pointer", nil)}
	case KindChoose:
		return []string{post(ctx, client, "/selector/choose", map[string]any{"team_id": g.TeamID})}
	case KindSaveTeam:
		return []string{post(ctx, client, "/teams", map[string]any{"name": g.ID})}
	default:
		return []string{outcomeFailed}
	}
}

func moveBody(g Gesture) map[string]any {
	return map[string]any{"event_id": g.EventID, "id": g.ID, "index": g.Index}
}

func post(ctx context.Context, client *HTTPClient, path string, payload any) string {
	status, body, err := client.Post(ctx, path, payload)
	if err != nil {
		return outcomeFailed
	}
	return classify(status, body)
}

// classify maps a response to an outcome label.
func classify(status int, body []byte) string {
	switch {
	case status == http.StatusConflict:
		return outcomeConflict
	case status >= http.StatusInternalServerError:
		return outcomeFailed
	case status >= http.StatusBadRequest:
		return outcomeRejected
	}
	var resp GestureResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return outcomeCommitted
	}
	switch {
	case resp.Duplicate:
		return outcomeDuplicate
	case resp.Status == "ignored":
		return outcomeConflict
	default:
		return outcomeCommitted
	}
}
