package adscan

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient("http://localhost:5000")
	if c == nil {
		t.Fatal("NewHTTPClient returned nil")
	}
	if c.client == nil {
		t.Fatal("internal http.Client is nil")
	}
	if c.client.Timeout != 0 {
		t.Errorf("client timeout = %v, want none", c.client.Timeout)
	}
}

func TestHTTPClient_Post(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want %q", r.Method, http.MethodPost)
		}
		if r.URL.Path != "/analyze" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/analyze")
		}
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), userAgent)
		}

		file, header, err := r.FormFile(fileField)
		if err != nil {
			t.Fatalf("form has no %q field: %v", fileField, err)
		}
		defer func() { _ = file.Close() }()
		if header.Filename != "banner.zip" {
			t.Errorf("filename = %q, want %q", header.Filename, "banner.zip")
		}
		content, _ := io.ReadAll(file)
		if string(content) != "zip bytes" {
			t.Errorf("file content = %q, want %q", content, "zip bytes")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, `{"run_id":"abc"}`)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	body, status, err := c.Post(context.Background(), "banner.zip", strings.NewReader("zip bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = body.Close() }()

	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}
	raw, _ := io.ReadAll(body)
	if string(raw) != `{"run_id":"abc"}` {
		t.Errorf("body = %q, want %q", raw, `{"run_id":"abc"}`)
	}
}

func TestHTTPClient_Post_ErrorStatusStillReturnsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, `{"error":"Invalid ZIP"}`)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	body, status, err := c.Post(context.Background(), "banner.zip", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("an error status must not be a transport error, got: %v", err)
	}
	defer func() { _ = body.Close() }()

	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
	}
	raw, _ := io.ReadAll(body)
	if string(raw) != `{"error":"Invalid ZIP"}` {
		t.Errorf("body = %q, want the error document", raw)
	}
}

func TestHTTPClient_Post_ServerDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	c := NewHTTPClient(ts.URL)
	_, _, err := c.Post(context.Background(), "banner.zip", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}
