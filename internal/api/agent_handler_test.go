package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shaiso/Agentum/internal/agents"
)

func newTestHandler(t *testing.T) (*Handler, *http.ServeMux) {
	t.Helper()

	registry := agents.NewRegistry()
	registry.Register(agents.NewFunc("echo", func(ctx context.Context, inputs map[string]any) (any, error) {
		text, err := agents.InputString(inputs, "text")
		if err != nil {
			return nil, err
		}
		return text, nil
	}))
	registry.Register(agents.NewFunc("broken", func(ctx context.Context, inputs map[string]any) (any, error) {
		return nil, errors.New("boom")
	}))

	h := NewHandler(Config{
		Registry: registry,
		Logger:   slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
	})

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func TestListAgents(t *testing.T) {
	_, mux := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data AgentListResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if len(resp.Data.Agents) != 2 {
		t.Fatalf("expected 2 agents, got %v", resp.Data.Agents)
	}
	// Names отсортированы
	if resp.Data.Agents[0] != "broken" || resp.Data.Agents[1] != "echo" {
		t.Errorf("unexpected agent list: %v", resp.Data.Agents)
	}
}

func TestExecuteAgent(t *testing.T) {
	_, mux := newTestHandler(t)

	body := strings.NewReader(`{"inputs":{"text":"hello"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agents/echo/execute", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data ExecuteAgentResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Data.Agent != "echo" {
		t.Errorf("expected agent echo, got %s", resp.Data.Agent)
	}
	if resp.Data.Result != "hello" {
		t.Errorf("expected result hello, got %v", resp.Data.Result)
	}
}

func TestExecuteAgent_NotRegistered(t *testing.T) {
	_, mux := newTestHandler(t)

	body := strings.NewReader(`{"inputs":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agents/unknown/execute", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestExecuteAgent_MissingInput(t *testing.T) {
	_, mux := newTestHandler(t)

	body := strings.NewReader(`{"inputs":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agents/echo/execute", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error.Code != ErrCodeBadRequest {
		t.Errorf("expected BAD_REQUEST code, got %s", resp.Error.Code)
	}
}

func TestExecuteAgent_AgentError(t *testing.T) {
	_, mux := newTestHandler(t)

	body := strings.NewReader(`{"inputs":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agents/broken/execute", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestExecuteAgent_InvalidBody(t *testing.T) {
	_, mux := newTestHandler(t)

	body := strings.NewReader(`{not json`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agents/echo/execute", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMiddleware_Recovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	chain := Chain(Recovery(logger), Logging(logger))

	handler := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(fmt.Errorf("unexpected"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}
