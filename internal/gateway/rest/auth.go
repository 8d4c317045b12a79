package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"union-site-backend/internal/models"
)

type authGateway struct {
	client *Client
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         models.User `json:"user"`
}

func (r tokenResponse) session() *models.Session {
	return &models.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(r.ExpiresIn) * time.Second),
		User:         r.User,
	}
}

func (g *authGateway) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	query := url.Values{}
	query.Set("grant_type", "password")

	payload := map[string]string{"email": email, "password": password}
	var reply tokenResponse
	if err := g.client.do(ctx, http.MethodPost, "/auth/v1/token", query, g.client.anonKey, payload, &reply); err != nil {
		return nil, err
	}
	return reply.session(), nil
}

func (g *authGateway) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	query := url.Values{}
	query.Set("grant_type", "refresh_token")

	payload := map[string]string{"refresh_token": refreshToken}
	var reply tokenResponse
	if err := g.client.do(ctx, http.MethodPost, "/auth/v1/token", query, g.client.anonKey, payload, &reply); err != nil {
		return nil, err
	}
	return reply.session(), nil
}

func (g *authGateway) SignOut(ctx context.Context, accessToken string) error {
	return g.client.do(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken, nil, nil)
}

type storageGateway struct {
	client *Client
	bucket string
}

func (g *storageGateway) objectPath(bucket, path string) string {
	if bucket == "" {
		bucket = g.bucket
	}
	return "/storage/v1/object/" + bucket + "/" + strings.TrimPrefix(path, "/")
}

// Upload stores an object and returns its public URL.
func (g *storageGateway) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	endpoint := g.client.baseURL + g.objectPath(bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("hosted backend: build upload request: %w", err)
	}
	req.Header.Set("apikey", g.client.anonKey)
	req.Header.Set("Authorization", "Bearer "+g.client.writeKey())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Re-uploading under the same path replaces the object.
	req.Header.Set("x-upsert", "true")

	resp, err := g.client.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hosted backend: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &apiError{Status: resp.StatusCode}
	}

	if bucket == "" {
		bucket = g.bucket
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", g.client.baseURL, bucket, strings.TrimPrefix(path, "/")), nil
}

func (g *storageGateway) Delete(ctx context.Context, bucket, path string) error {
	return g.client.do(ctx, http.MethodDelete, g.objectPath(bucket, path), nil, g.client.writeKey(), nil, nil)
}

func (g *storageGateway) Move(ctx context.Context, bucket, from, to string) error {
	if bucket == "" {
		bucket = g.bucket
	}
	payload := map[string]string{
		"bucketId":       bucket,
		"sourceKey":      strings.TrimPrefix(from, "/"),
		"destinationKey": strings.TrimPrefix(to, "/"),
	}
	return g.client.do(ctx, http.MethodPost, "/storage/v1/object/move", nil, g.client.writeKey(), payload, nil)
}
