package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devcopilot/assistant-api/internal/core/domain"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

// stubGateway returns canned results and records whether it was called.
type stubGateway struct {
	called bool
}

func (s *stubGateway) Generate(ctx context.Context, in ports.GenerateInput) (*domain.GenerationResult, error) {
	s.called = true
	return &domain.GenerationResult{
		Code:             "print('hi')",
		Explanation:      "prints a greeting",
		OptimizationTips: []string{"none needed"},
	}, nil
}

func (s *stubGateway) Debug(ctx context.Context, in ports.CodeInput) (*domain.DebugResult, error) {
	s.called = true
	return &domain.DebugResult{
		Analysis:    "off by one",
		Suggestions: []string{"fix the loop bounds"},
		FixedCode:   "for i in range(n):",
		Severity:    domain.RiskMedium,
	}, nil
}

func (s *stubGateway) SecurityScan(ctx context.Context, in ports.CodeInput) (*domain.SecurityResult, error) {
	s.called = true
	return &domain.SecurityResult{
		Issues:          []domain.SecurityIssue{{Type: "eval usage detected", Severity: domain.RiskHigh, Line: 1}},
		OverallRisk:     domain.RiskHigh,
		Recommendations: []string{"avoid eval"},
	}, nil
}

func (s *stubGateway) Review(ctx context.Context, in ports.CodeInput) (*domain.ReviewResult, error) {
	s.called = true
	return &domain.ReviewResult{OverallScore: 95, Review: "looks fine"}, nil
}

func (s *stubGateway) Refactor(ctx context.Context, in ports.CodeInput) (*domain.RefactorResult, error) {
	s.called = true
	return &domain.RefactorResult{RefactoredCode: in.Code}, nil
}

func (s *stubGateway) GenerateTests(ctx context.Context, in ports.CodeInput) (*domain.TestResult, error) {
	s.called = true
	return &domain.TestResult{TestCode: "def test_x(): pass", Framework: "pytest"}, nil
}

func (s *stubGateway) Optimize(ctx context.Context, in ports.CodeInput) (*domain.OptimizationResult, error) {
	s.called = true
	return &domain.OptimizationResult{OptimizedCode: in.Code}, nil
}

func (s *stubGateway) Document(ctx context.Context, in ports.CodeInput) (*domain.DocumentationResult, error) {
	s.called = true
	return &domain.DocumentationResult{Documentation: "docs", DocType: "docstring"}, nil
}

func (s *stubGateway) Chat(ctx context.Context, in ports.ChatInput) (*domain.ChatResult, error) {
	s.called = true
	return &domain.ChatResult{Response: "hello", ConversationID: "conv-1"}, nil
}

func (s *stubGateway) ClearChat(conversationID string) { s.called = true }

type stubHistoryQueue struct {
	records []ports.HistoryRecord
}

func (s *stubHistoryQueue) Enqueue(rec ports.HistoryRecord) {
	s.records = append(s.records, rec)
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGenerate_GuestGetsResultWithoutHistory(t *testing.T) {
	e := newTestEcho()
	gw := &stubGateway{}
	queue := &stubHistoryQueue{}
	handler := NewAssistHandler(gw, queue)

	c, rec := postJSON(e, "/api/generate", `{"prompt":"print a greeting"}`)
	if err := handler.Generate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["code"] != "print('hi')" {
		t.Fatalf("unexpected payload: %v", resp)
	}
	if len(queue.records) != 0 {
		t.Fatalf("guest requests must not create history")
	}
}

func TestGenerate_AuthenticatedEnqueuesHistory(t *testing.T) {
	e := newTestEcho()
	queue := &stubHistoryQueue{}
	handler := NewAssistHandler(&stubGateway{}, queue)

	c, rec := postJSON(e, "/api/generate", `{"prompt":"print a greeting","language":"python"}`)
	c.Set("username", "alice")
	c.Set("user_id", "id-1")

	if err := handler.Generate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(queue.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(queue.records))
	}
	rec0 := queue.records[0]
	if rec0.UserID != "id-1" || rec0.Snippet == nil || rec0.Snippet.Code != "print('hi')" {
		t.Fatalf("unexpected record: %+v", rec0)
	}
}

func TestGenerate_EmptyPromptRejectedBeforeGateway(t *testing.T) {
	e := newTestEcho()
	gw := &stubGateway{}
	handler := NewAssistHandler(gw, &stubHistoryQueue{})

	c, _ := postJSON(e, "/api/generate", `{"prompt":""}`)
	err := handler.Generate(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if gw.called {
		t.Fatalf("gateway must not be called for invalid requests")
	}
}

func TestDebug_EmptyCodeRejected(t *testing.T) {
	e := newTestEcho()
	gw := &stubGateway{}
	handler := NewAssistHandler(gw, &stubHistoryQueue{})

	c, _ := postJSON(e, "/api/debug", `{"code":""}`)
	err := handler.Debug(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if gw.called {
		t.Fatalf("gateway must not be called for invalid requests")
	}
}

func TestDebug_AuthenticatedEnqueuesSession(t *testing.T) {
	e := newTestEcho()
	queue := &stubHistoryQueue{}
	handler := NewAssistHandler(&stubGateway{}, queue)

	c, rec := postJSON(e, "/api/debug", `{"code":"for i in range(n+1):","language":"python","error_message":"IndexError"}`)
	c.Set("username", "alice")
	c.Set("user_id", "id-1")

	if err := handler.Debug(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(queue.records) != 1 || queue.records[0].Debug == nil {
		t.Fatalf("expected a debug history record, got %+v", queue.records)
	}
}

func TestSecurityScan_ResponseShape(t *testing.T) {
	e := newTestEcho()
	handler := NewAssistHandler(&stubGateway{}, &stubHistoryQueue{})

	c, rec := postJSON(e, "/api/security-scan", `{"code":"eval(x)","language":"python"}`)
	if err := handler.SecurityScan(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	risk, _ := resp["overall_risk"].(string)
	switch risk {
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh, domain.RiskCritical:
	default:
		t.Fatalf("overall_risk outside the enumeration: %q", risk)
	}
	if _, ok := resp["issues"].([]any); !ok {
		t.Fatalf("expected issues array, got %v", resp["issues"])
	}
}

func TestRefactor_InvalidTypeRejected(t *testing.T) {
	e := newTestEcho()
	gw := &stubGateway{}
	handler := NewAssistHandler(gw, &stubHistoryQueue{})

	c, _ := postJSON(e, "/api/refactor", `{"code":"x = 1","refactor_type":"rewrite-everything"}`)
	err := handler.Refactor(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if gw.called {
		t.Fatalf("gateway must not be called for invalid requests")
	}
}

func TestRefactor_GoalVocabulary(t *testing.T) {
	e := newTestEcho()

	for _, goal := range []string{"general", "performance", "clean_code", "design_patterns", "simplify"} {
		gw := &stubGateway{}
		handler := NewAssistHandler(gw, &stubHistoryQueue{})

		c, rec := postJSON(e, "/api/refactor", `{"code":"x = 1","refactor_type":"`+goal+`"}`)
		if err := handler.Refactor(c); err != nil {
			t.Fatalf("goal %q rejected: %v", goal, err)
		}
		if rec.Code != http.StatusOK || !gw.called {
			t.Fatalf("goal %q did not reach the gateway", goal)
		}
	}
}

func TestDocument_DocTypeVocabulary(t *testing.T) {
	e := newTestEcho()

	for _, docType := range []string{"comprehensive", "inline", "api", "readme", "tutorial"} {
		gw := &stubGateway{}
		handler := NewAssistHandler(gw, &stubHistoryQueue{})

		c, rec := postJSON(e, "/api/generate-docs", `{"code":"x = 1","doc_type":"`+docType+`"}`)
		if err := handler.Document(c); err != nil {
			t.Fatalf("doc type %q rejected: %v", docType, err)
		}
		if rec.Code != http.StatusOK || !gw.called {
			t.Fatalf("doc type %q did not reach the gateway", docType)
		}
	}
}

func TestDocument_InvalidDocTypeRejected(t *testing.T) {
	e := newTestEcho()
	gw := &stubGateway{}
	handler := NewAssistHandler(gw, &stubHistoryQueue{})

	c, _ := postJSON(e, "/api/generate-docs", `{"code":"x = 1","doc_type":"docstring"}`)
	err := handler.Document(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if gw.called {
		t.Fatalf("gateway must not be called for invalid requests")
	}
}

func TestChat_ReturnsConversationID(t *testing.T) {
	e := newTestEcho()
	handler := NewAssistHandler(&stubGateway{}, &stubHistoryQueue{})

	c, rec := postJSON(e, "/api/chat", `{"message":"how do slices work?"}`)
	if err := handler.Chat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["conversation_id"] != "conv-1" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestClearChat(t *testing.T) {
	e := newTestEcho()
	gw := &stubGateway{}
	handler := NewAssistHandler(gw, &stubHistoryQueue{})

	c, rec := postJSON(e, "/api/chat/clear", `{"conversation_id":"conv-1"}`)
	if err := handler.ClearChat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gw.called {
		t.Fatalf("expected gateway ClearChat to be invoked")
	}
}
