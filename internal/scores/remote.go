package scores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const remoteTimeout = 4 * time.Second

// Remote talks to a score server: GET /scores?limit=n and POST /scores,
// authenticated with an optional X-Api-Key header.
type Remote struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRemote(baseURL, apiKey string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  &http.Client{Timeout: remoteTimeout},
	}
}

func (r *Remote) BaseURL() string { return r.baseURL }

func (r *Remote) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = MaxEntries
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/scores?limit=%d", r.baseURL, n), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return entries, nil
}

func (r *Remote) Record(ctx context.Context, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/scores", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (r *Remote) do(req *http.Request) (*http.Response, error) {
	if r.apiKey != "" {
		req.Header.Set("X-Api-Key", r.apiKey)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, StatusError(resp.StatusCode)
	}
	return resp, nil
}

// StatusError is a non-2xx answer from the score server.
type StatusError int

func (s StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", int(s), http.StatusText(int(s)))
}
