// Package rest implements the remote data gateway against a hosted
// backend-as-a-service: PostgREST-style tables, a token-based auth
// endpoint and an object storage API, all behind one base URL.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"union-site-backend/internal/gateway"
)

// Options control the hosted-backend client.
type Options struct {
	// AnonKey authenticates anonymous reads.
	AnonKey string
	// ServiceKey authenticates privileged writes. Optional; when empty the
	// caller's session token is the only write credential.
	ServiceKey string
	HTTPClient *http.Client
}

// Client talks to the hosted backend. One instance is shared by all
// entity gateways.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	client     *http.Client
}

func NewClient(baseURL string, opts Options) (*Client, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("hosted backend base url is required")
	}
	if strings.TrimSpace(opts.AnonKey) == "" {
		return nil, errors.New("hosted backend anon key is required")
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL:    trimmed,
		anonKey:    strings.TrimSpace(opts.AnonKey),
		serviceKey: strings.TrimSpace(opts.ServiceKey),
		client:     client,
	}, nil
}

// Gateway assembles the full persistence surface over this client. Storage
// uploads land in the given bucket.
func (c *Client) Gateway(bucket string) *gateway.Gateway {
	return &gateway.Gateway{
		News:          &newsGateway{c},
		Events:        &eventGateway{c},
		Journal:       &journalGateway{c},
		Members:       &memberGateway{c},
		Tags:          &tagGateway{c},
		Registrations: &registrationGateway{c},
		Contacts:      &contactGateway{c},
		Auth:          &authGateway{c},
		Storage:       &storageGateway{client: c, bucket: bucket},
	}
}

// apiError carries the backend's status and message for non-2xx replies.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hosted backend: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("hosted backend: %s (status %d)", e.Message, e.Status)
}

func (c *Client) writeKey() string {
	if c.serviceKey != "" {
		return c.serviceKey
	}
	return c.anonKey
}

// do issues one request and decodes the JSON reply into out (when out is
// non-nil). 404 and empty result sets are normalized to gateway.ErrNotFound
// by the callers that care.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("hosted backend: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("hosted backend: build request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("hosted backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return gateway.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apiError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("hosted backend: decode response: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error_description"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Msg != "":
		return payload.Msg
	default:
		return payload.Error
	}
}
