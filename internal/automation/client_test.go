package automation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(host, apiKey string) *Client {
	return NewClient(&Config{Host: host, APIKey: apiKey, Logger: zap.NewNop()})
}

func TestWaitUntilReady_Immediate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	if err := client.WaitUntilReady(context.Background(), 3, time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitUntilReady_RecoversAfterFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	if err := client.WaitUntilReady(context.Background(), 5, time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 health checks, got %d", got)
	}
}

func TestWaitUntilReady_Exhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	err := client.WaitUntilReady(context.Background(), 2, time.Millisecond)
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
}

func TestListWorkflows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-N8N-API-KEY"); got != "secret" {
			t.Errorf("expected api key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"1","name":"AI Assistant Workflow"},{"id":"2","name":"Other"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "secret")
	workflows, err := client.ListWorkflows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(workflows) != 2 {
		t.Fatalf("expected 2 workflows, got %d", len(workflows))
	}
	if workflows[0].Name != "AI Assistant Workflow" {
		t.Errorf("unexpected first workflow name %q", workflows[0].Name)
	}
}

func TestListWorkflows_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	if _, err := client.ListWorkflows(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestCreateWorkflow(t *testing.T) {
	definition := json.RawMessage(`{"name":"AI Assistant Workflow","nodes":[]}`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["name"] != "AI Assistant Workflow" {
			t.Errorf("unexpected workflow name %v", body["name"])
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	if err := client.CreateWorkflow(context.Background(), definition); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateWorkflow_ErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid nodes"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	err := client.CreateWorkflow(context.Background(), json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected error for 400 status")
	}
}

func TestNoAPIKeyHeaderWhenUnset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["X-N8n-Api-Key"]; ok {
			t.Error("api key header should not be set")
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	if _, err := client.ListWorkflows(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
