package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devcopilot/assistant-api/internal/core/domain"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

type stubGateway struct{}

func (s *stubGateway) Generate(ctx context.Context, in ports.GenerateInput) (*domain.GenerationResult, error) {
	return &domain.GenerationResult{Code: "print('hi')", Explanation: "greeting"}, nil
}

func (s *stubGateway) Debug(ctx context.Context, in ports.CodeInput) (*domain.DebugResult, error) {
	return &domain.DebugResult{
		Analysis:    "off by one",
		Suggestions: []string{"fix the loop bounds"},
		Severity:    domain.RiskMedium,
	}, nil
}

func (s *stubGateway) SecurityScan(ctx context.Context, in ports.CodeInput) (*domain.SecurityResult, error) {
	return &domain.SecurityResult{OverallRisk: domain.RiskLow, Issues: []domain.SecurityIssue{}}, nil
}

func (s *stubGateway) Review(ctx context.Context, in ports.CodeInput) (*domain.ReviewResult, error) {
	return &domain.ReviewResult{}, nil
}

func (s *stubGateway) Refactor(ctx context.Context, in ports.CodeInput) (*domain.RefactorResult, error) {
	return &domain.RefactorResult{}, nil
}

func (s *stubGateway) GenerateTests(ctx context.Context, in ports.CodeInput) (*domain.TestResult, error) {
	return &domain.TestResult{}, nil
}

func (s *stubGateway) Optimize(ctx context.Context, in ports.CodeInput) (*domain.OptimizationResult, error) {
	return &domain.OptimizationResult{}, nil
}

func (s *stubGateway) Document(ctx context.Context, in ports.CodeInput) (*domain.DocumentationResult, error) {
	return &domain.DocumentationResult{}, nil
}

func (s *stubGateway) Chat(ctx context.Context, in ports.ChatInput) (*domain.ChatResult, error) {
	return &domain.ChatResult{Response: "hello"}, nil
}

func (s *stubGateway) ClearChat(conversationID string) {}

func dialTestServer(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	hub := NewHub(&stubGateway{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	e := echo.New()
	e.GET("/ws/realtime", NewHandler(hub).Serve)
	server := httptest.NewServer(e)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/realtime"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		server.Close()
		cancel()
		t.Fatalf("dial: %v", err)
	}

	return conn, func() {
		conn.Close()
		server.Close()
		cancel()
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) ResultFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var frame ResultFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("invalid frame: %v", err)
	}
	return frame
}

func TestRealtime_DebugFrame(t *testing.T) {
	conn, teardown := dialTestServer(t)
	defer teardown()

	msg := `{"action":"debug","code":"for i in range(n+1):","language":"python","error_message":"IndexError"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != TypeDebugging {
		t.Fatalf("expected %q frame, got %q", TypeDebugging, frame.Type)
	}

	data, _ := frame.Data.(map[string]any)
	if data["severity"] != domain.RiskMedium {
		t.Fatalf("unexpected severity: %v", data["severity"])
	}
	suggestions, _ := data["suggestions"].([]any)
	if len(suggestions) != 1 {
		t.Fatalf("unexpected suggestions: %v", data["suggestions"])
	}
}

func TestRealtime_GenerateFrame(t *testing.T) {
	conn, teardown := dialTestServer(t)
	defer teardown()

	msg := `{"action":"generate","prompt":"print a greeting"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != TypeGeneration {
		t.Fatalf("expected %q frame, got %q", TypeGeneration, frame.Type)
	}
	data, _ := frame.Data.(map[string]any)
	if data["code"] != "print('hi')" {
		t.Fatalf("unexpected code: %v", data["code"])
	}
}

func TestRealtime_SecurityFrame(t *testing.T) {
	conn, teardown := dialTestServer(t)
	defer teardown()

	msg := `{"action":"security","code":"print('x')","language":"python"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != TypeSecurity {
		t.Fatalf("expected %q frame, got %q", TypeSecurity, frame.Type)
	}
	data, _ := frame.Data.(map[string]any)
	if data["overall_risk"] != domain.RiskLow {
		t.Fatalf("unexpected risk: %v", data["overall_risk"])
	}
}

func TestRealtime_MissingFieldYieldsErrorFrame(t *testing.T) {
	conn, teardown := dialTestServer(t)
	defer teardown()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"generate"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	frame := readFrame(t, conn)
	if frame.Type != TypeError {
		t.Fatalf("expected error frame, got %q", frame.Type)
	}
	data, _ := frame.Data.(map[string]any)
	if data["detail"] != "prompt is required" {
		t.Fatalf("unexpected detail: %v", data["detail"])
	}
}

func TestRealtime_UnknownActionKeepsSocketOpen(t *testing.T) {
	conn, teardown := dialTestServer(t)
	defer teardown()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"dance"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := readFrame(t, conn)
	if frame.Type != TypeError {
		t.Fatalf("expected error frame, got %q", frame.Type)
	}

	// The connection survives the bad frame.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"generate","prompt":"still here"}`)); err != nil {
		t.Fatalf("write after error: %v", err)
	}
	frame = readFrame(t, conn)
	if frame.Type != TypeGeneration {
		t.Fatalf("expected %q after recovery, got %q", TypeGeneration, frame.Type)
	}
}

func TestRealtime_MalformedJSON(t *testing.T) {
	conn, teardown := dialTestServer(t)
	defer teardown()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	frame := readFrame(t, conn)
	if frame.Type != TypeError {
		t.Fatalf("expected error frame, got %q", frame.Type)
	}
}
