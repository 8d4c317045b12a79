package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, Options{AnonKey: "anon-key", ServiceKey: "service-key"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", Options{AnonKey: "k"}); err == nil {
		t.Error("empty base url accepted")
	}
	if _, err := NewClient("https://example.test", Options{}); err == nil {
		t.Error("missing anon key accepted")
	}
}

func TestNewsListSendsCredentialsAndQuery(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth, gotOrder string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		gotOrder = r.URL.Query().Get("order")
		w.Write([]byte(`[{"id":1,"title":"First"}]`))
	})

	items, err := client.Gateway("media").News.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Title != "First" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if gotPath != "/rest/v1/news" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAPIKey != "anon-key" || gotAuth != "Bearer anon-key" {
		t.Errorf("credentials = %q / %q", gotAPIKey, gotAuth)
	}
	if gotOrder != "created_at.desc" {
		t.Errorf("order = %q", gotOrder)
	}
}

func TestGetByIDEmptyResultIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.Gateway("media").News.GetByID(context.Background(), 7)
	if !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateUsesServiceKeyAndCopiesRepresentation(t *testing.T) {
	var gotAuth, gotPrefer string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPrefer = r.Header.Get("Prefer")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":12,"title":"Open Day"}]`))
	})

	item := models.Event{Title: "Open Day"}
	if err := client.Gateway("media").Events.Create(context.Background(), &item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID != 12 {
		t.Errorf("ID = %d, want 12 from the returned representation", item.ID)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPrefer != "return=representation" {
		t.Errorf("Prefer = %q", gotPrefer)
	}
}

func TestErrorReplyCarriesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"permission denied"}`))
	})

	err := client.Gateway("media").News.Delete(context.Background(), 3)
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("err = %v, want the backend message surfaced", err)
	}
}

func TestSignIn(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request %s %s", r.URL.Path, r.URL.RawQuery)
		}
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"user":{"id":"u1","email":"admin@union.test","role":"admin"}}`))
	})

	session, err := client.Gateway("media").Auth.SignIn(context.Background(), "admin@union.test", "secret")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if session.AccessToken != "at" || session.User.Role != "admin" {
		t.Errorf("unexpected session: %+v", session)
	}
	if !session.Valid() {
		t.Error("fresh session should be valid")
	}
	if until := time.Until(session.ExpiresAt); until < 59*time.Minute || until > 61*time.Minute {
		t.Errorf("expiry %v away, want about an hour", until)
	}
}

func TestUploadReturnsPublicURL(t *testing.T) {
	var gotPath, gotUpsert string
	var srvURL string
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUpsert = r.Header.Get("x-upsert")
		w.Write([]byte(`{"Key":"media/covers/1.jpg"}`))
	})
	srvURL = srv.URL

	url, err := client.Gateway("media").Storage.Upload(context.Background(), "", "covers/1.jpg", []byte("jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotPath != "/storage/v1/object/media/covers/1.jpg" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUpsert != "true" {
		t.Errorf("x-upsert = %q", gotUpsert)
	}
	if want := srvURL + "/storage/v1/object/public/media/covers/1.jpg"; url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}
