package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcopilot/assistant-api/internal/core/domain"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

// HistoryQueue receives completed task records for asynchronous persistence.
type HistoryQueue interface {
	Enqueue(rec ports.HistoryRecord)
}

// AssistHandler handles the HTTP task endpoints. Every endpoint works for
// guests; when the request carries a valid identity the outcome is also
// enqueued for history.
type AssistHandler struct {
	gateway ports.Gateway
	history HistoryQueue
}

func NewAssistHandler(gateway ports.Gateway, history HistoryQueue) *AssistHandler {
	return &AssistHandler{gateway: gateway, history: history}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Generate handles POST /api/generate.
//
// @Summary      Generate code from a natural-language prompt
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      generateRequest  true  "Generation request"
// @Success      200   {object}  domain.GenerationResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/generate [post]
func (h *AssistHandler) Generate(c echo.Context) error {
	var req generateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.Generate(c.Request().Context(), ports.GenerateInput{
		Prompt:    req.Prompt,
		Language:  req.Language,
		Context:   req.Context,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return err
	}

	if _, userID, ok := ctxIdentity(c); ok {
		h.history.Enqueue(ports.HistoryRecord{
			UserID: userID,
			Snippet: &domain.Snippet{
				Prompt:      req.Prompt,
				Code:        result.Code,
				Language:    req.Language,
				Explanation: result.Explanation,
			},
		})
	}

	return c.JSON(http.StatusOK, result)
}

// Debug handles POST /api/debug.
//
// @Summary      Analyse broken code and propose a fix
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      debugRequest  true  "Debug request"
// @Success      200   {object}  domain.DebugResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/debug [post]
func (h *AssistHandler) Debug(c echo.Context) error {
	var req debugRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.Debug(c.Request().Context(), ports.CodeInput{
		Code:         req.Code,
		Language:     req.Language,
		ErrorMessage: req.ErrorMessage,
	})
	if err != nil {
		return err
	}

	if _, userID, ok := ctxIdentity(c); ok {
		h.history.Enqueue(ports.HistoryRecord{
			UserID: userID,
			Debug: &domain.DebugSession{
				OriginalCode: req.Code,
				FixedCode:    result.FixedCode,
				Language:     req.Language,
				ErrorMessage: req.ErrorMessage,
				Suggestions:  result.Suggestions,
			},
		})
	}

	return c.JSON(http.StatusOK, result)
}

// SecurityScan handles POST /api/security-scan.
//
// @Summary      Scan code for vulnerabilities
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      securityScanRequest  true  "Scan request"
// @Success      200   {object}  domain.SecurityResult
// @Failure      400   {object}  map[string]string
// @Router       /api/security-scan [post]
func (h *AssistHandler) SecurityScan(c echo.Context) error {
	var req securityScanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.SecurityScan(c.Request().Context(), ports.CodeInput{
		Code:     req.Code,
		Language: req.Language,
	})
	if err != nil {
		return err
	}

	if _, userID, ok := ctxIdentity(c); ok {
		h.history.Enqueue(ports.HistoryRecord{
			UserID: userID,
			Scan: &domain.SecurityScanRecord{
				Code:        req.Code,
				Language:    req.Language,
				Issues:      result.Issues,
				OverallRisk: result.OverallRisk,
			},
		})
	}

	return c.JSON(http.StatusOK, result)
}

// Review handles POST /api/review.
//
// @Summary      Review code quality
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      reviewRequest  true  "Review request"
// @Success      200   {object}  domain.ReviewResult
// @Failure      400   {object}  map[string]string
// @Router       /api/review [post]
func (h *AssistHandler) Review(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.Review(c.Request().Context(), ports.CodeInput{
		Code:     req.Code,
		Language: req.Language,
		Context:  req.Context,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Refactor handles POST /api/refactor.
//
// @Summary      Refactor code toward a named goal
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      refactorRequest  true  "Refactor request"
// @Success      200   {object}  domain.RefactorResult
// @Failure      400   {object}  map[string]string
// @Router       /api/refactor [post]
func (h *AssistHandler) Refactor(c echo.Context) error {
	var req refactorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.Refactor(c.Request().Context(), ports.CodeInput{
		Code:     req.Code,
		Language: req.Language,
		Detail:   req.RefactorType,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// GenerateTests handles POST /api/generate-tests.
//
// @Summary      Generate unit tests for code
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      testGenerateRequest  true  "Test generation request"
// @Success      200   {object}  domain.TestResult
// @Failure      400   {object}  map[string]string
// @Router       /api/generate-tests [post]
func (h *AssistHandler) GenerateTests(c echo.Context) error {
	var req testGenerateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.GenerateTests(c.Request().Context(), ports.CodeInput{
		Code:     req.Code,
		Language: req.Language,
		Detail:   req.TestFramework,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Optimize handles POST /api/optimize.
//
// @Summary      Optimise code for performance
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      optimizeRequest  true  "Optimisation request"
// @Success      200   {object}  domain.OptimizationResult
// @Failure      400   {object}  map[string]string
// @Router       /api/optimize [post]
func (h *AssistHandler) Optimize(c echo.Context) error {
	var req optimizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.Optimize(c.Request().Context(), ports.CodeInput{
		Code:     req.Code,
		Language: req.Language,
		Context:  req.Context,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Document handles POST /api/generate-docs.
//
// @Summary      Generate documentation for code
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      documentRequest  true  "Documentation request"
// @Success      200   {object}  domain.DocumentationResult
// @Failure      400   {object}  map[string]string
// @Router       /api/generate-docs [post]
func (h *AssistHandler) Document(c echo.Context) error {
	var req documentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.Document(c.Request().Context(), ports.CodeInput{
		Code:     req.Code,
		Language: req.Language,
		Detail:   req.DocType,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Chat handles POST /api/chat.
//
// @Summary      Converse with the assistant
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Chat message"
// @Success      200   {object}  domain.ChatResult
// @Failure      400   {object}  map[string]string
// @Router       /api/chat [post]
func (h *AssistHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.gateway.Chat(c.Request().Context(), ports.ChatInput{
		Message:        req.Message,
		Language:       req.Language,
		Code:           req.Code,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// ClearChat handles POST /api/chat/clear. Without a conversation id every
// conversation is dropped.
//
// @Summary      Drop conversation memory
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      clearChatRequest  false  "Conversation to clear"
// @Success      200   {object}  map[string]string
// @Router       /api/chat/clear [post]
func (h *AssistHandler) ClearChat(c echo.Context) error {
	var req clearChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	h.gateway.ClearChat(req.ConversationID)
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}
