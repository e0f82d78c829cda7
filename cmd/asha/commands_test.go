package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			if resp == "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

// withTestClient points the commands at the test server.
func withTestClient(t *testing.T, ts *testServer) {
	t.Helper()
	orig := newAPIClient
	newAPIClient = func() (*apiClient, error) {
		return ts.client(), nil
	}
	t.Cleanup(func() { newAPIClient = orig })
}

var ctx = context.Background()

func TestCallCommand(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /calls/initiate": `{"sid":"CA1","status":"queued","simulated":true}`,
	})
	withTestClient(t, ts)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"call", "--message", "health camp sunday", "+919876543210"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	r := ts.requests[0]
	if r.Method != "POST" || r.Path != "/calls/initiate" {
		t.Errorf("request = %s %s", r.Method, r.Path)
	}
	if r.Auth != "Bearer test-token" {
		t.Errorf("auth = %q", r.Auth)
	}

	var body map[string]string
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body["phone"] != "+919876543210" {
		t.Errorf("body.phone = %q", body["phone"])
	}
	if body["message"] != "health camp sunday" {
		t.Errorf("body.message = %q", body["message"])
	}
}

func TestCallCommandFansOut(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /calls/initiate": `{"sid":"CA1","status":"queued","simulated":true}`,
	})
	withTestClient(t, ts)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"call", "+911111111111", "+912222222222", "+913333333333"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ts.requests) != 3 {
		t.Errorf("expected 3 requests, got %d", len(ts.requests))
	}
}

func TestCallCommandRequiresNumber(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"call"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing number")
	}
}

func TestClearCommandNeedsConfirm(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"DELETE /calls": "",
	})
	withTestClient(t, ts)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"clear"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 0 {
		t.Errorf("clear without --confirm must not hit the server, got %d requests", len(ts.requests))
	}

	rootCmd.SetArgs([]string{"clear", "--confirm"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	if r := ts.requests[0]; r.Method != "DELETE" || r.Path != "/calls" {
		t.Errorf("request = %s %s", r.Method, r.Path)
	}
}

func TestStatsCommand(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /stats": `{"totalCalls":10,"criticalCalls":3,"successRate":70,"avgDuration":120,"uniqueUsers":5,"callsByHour":[],"topQuestions":[{"topic":"High Fever","count":4}],"recentCalls":[]}`,
	})
	withTestClient(t, ts)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"stats"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ts.requests) != 1 || ts.requests[0].Path != "/stats" {
		t.Errorf("requests = %+v", ts.requests)
	}
}

func TestDecodeJSONErrorEnvelope(t *testing.T) {
	ts := newTestServer(t, nil)
	client := ts.client()

	resp, err := client.get(ctx, "/missing")
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	decodeErr := decodeJSON(resp, &map[string]any{})
	if decodeErr == nil {
		t.Fatal("expected error from 404 response")
	}
	if !strings.Contains(decodeErr.Error(), "not found") {
		t.Errorf("error = %v, want server message included", decodeErr)
	}
}

func TestColorize(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if result := colorize(colorGreen, "hello"); result != "hello" {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}

	noColor = false
	if result := colorize(colorGreen, "hello"); !strings.Contains(result, "\033[32m") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}
