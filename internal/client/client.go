// Package client holds the HTTP clients for the collaborator services
// (catalog/sitter directory, pet registry, payment service). Every call goes
// through a single fallback policy: an ordered list of base URLs tried
// first-success-wins, with one timeout per attempt.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

var (
	// ErrUnavailable means no base URL answered within policy.
	ErrUnavailable = errors.New("service unavailable")
	// ErrNotFound means the collaborator answered 404 for the resource.
	ErrNotFound = errors.New("resource not found")
)

const defaultTimeout = 5 * time.Second

// Caller issues authenticated GETs against an ordered list of base URLs.
type Caller struct {
	bases []string
	http  *http.Client
	token string
}

func NewCaller(bases []string, timeout time.Duration) *Caller {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Caller{
		bases: bases,
		http:  &http.Client{Timeout: timeout},
	}
}

// WithToken returns a shallow copy carrying a bearer token for the call.
func (c *Caller) WithToken(token string) *Caller {
	cp := *c
	cp.token = token
	return &cp
}

// GetJSON tries each base URL in order and decodes the first successful
// response into out. A 404 from any base short-circuits with ErrNotFound;
// connection failures and 5xx responses move on to the next base.
func (c *Caller) GetJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for _, base := range c.bases {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
		if err != nil {
			return err
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.Printf("[client] %s%s unreachable: %v", base, path, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound
		case resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("%s%s: status %d", base, path, resp.StatusCode)
			continue
		case resp.StatusCode >= 400:
			resp.Body.Close()
			return fmt.Errorf("%s%s: status %d", base, path, resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return ErrUnavailable
}
