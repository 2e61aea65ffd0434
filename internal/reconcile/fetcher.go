package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nibchat/nibchat-server/internal/user"
)

// ErrUserNotFound indicates the sync endpoint has no projection for the id.
var ErrUserNotFound = errors.New("user not found")

// HTTPFetcher reads user state from the server's session-sync endpoint.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher builds a fetcher against baseURL (e.g. "https://api.example.com").
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchUser issues the single-user fetch against /api/v1/user/sync.
func (f *HTTPFetcher) FetchUser(ctx context.Context, id string) (user.User, error) {
	endpoint := f.BaseURL + "/api/v1/user/sync?id=" + url.QueryEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return user.User{}, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return user.User{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return user.User{}, ErrUserNotFound
	default:
		return user.User{}, fmt.Errorf("sync fetch: unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return user.User{}, err
	}

	var u user.User
	if err := json.Unmarshal(payload, &u); err != nil {
		return user.User{}, fmt.Errorf("decode sync payload: %w", err)
	}
	return u, nil
}
