package helpers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetch(t *testing.T) {
	// Create a test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check that headers are set
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("Accept-Language"))

		// Send a response
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>Hello, World!</body></html>"))
	}))
	defer server.Close()

	// Fetch the page
	reader, err := Fetch(NewClient(), server.URL)
	assert.NoError(t, err)

	// Read the response
	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Hello, World!")
}

func TestFetchNonUTF8(t *testing.T) {
	// Create a test server that returns a non-UTF8 response
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.WriteHeader(http.StatusOK)
		// This is "Hello, World!" in ISO-8859-1 encoding
		w.Write([]byte("<html><body>Hello, World!</body></html>"))
	}))
	defer server.Close()

	reader, err := Fetch(NewClient(), server.URL)
	assert.NoError(t, err)

	body, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "Hello, World!")
}

func TestFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := Fetch(NewClient(), server.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := Fetch(NewClient(), server.URL)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestClientKeepsCookies(t *testing.T) {
	var gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/warmup":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
			w.WriteHeader(http.StatusOK)
		default:
			if c, err := r.Cookie("session"); err == nil {
				gotCookie = c.Value
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("<html></html>"))
		}
	}))
	defer server.Close()

	client := NewClient()
	_, err := Fetch(client, server.URL+"/warmup")
	assert.NoError(t, err)
	_, err = Fetch(client, server.URL+"/search")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", gotCookie, "warm-up cookie should carry over to the search request")
}
