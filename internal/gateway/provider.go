package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/devcopilot/assistant-api/internal/api/metrics"
	"github.com/devcopilot/assistant-api/internal/core/domain"
)

const (
	geminiBaseURL   = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel     = "gemini-2.0-flash"
	geminiEmbedding = "text-embedding-004"

	openAIChatCompletionURL = "https://api.openai.com/v1/chat/completions"
	openAIEmbeddingsURL     = "https://api.openai.com/v1/embeddings"
	openAIModel             = "gpt-4o-mini"
	openAIEmbedding         = "text-embedding-3-small"

	providerTimeout = 30 * time.Second
	maxRetries      = 2
	retryBaseDelay  = 500 * time.Millisecond
)

// Provider is the external model capability: submit a prompt, get text back.
// Fallible, rate-limited, latency-variable.
type Provider interface {
	Name() string
	// Complete submits a prompt. maxTokens bounds the reply size when > 0.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

// transientError marks provider failures worth retrying (network errors,
// 429, 5xx). Everything else fails immediately.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func providerErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrProviderUnavailable, fmt.Sprintf(format, args...))
}

// ── Gemini ────────────────────────────────────────────────────────────────────

// GeminiClient calls the Gemini REST API.
type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: providerTimeout},
	}
}

func (g *GeminiClient) Name() string { return "gemini" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiGenerateRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", geminiBaseURL, geminiModel, g.apiKey)
	body := geminiGenerateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if maxTokens > 0 {
		body.GenerationConfig = &geminiGenerationConfig{MaxOutputTokens: maxTokens}
	}

	raw, err := g.post(ctx, url, body)
	if err != nil {
		return "", err
	}

	var resp geminiGenerateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", providerErrorf("gemini: decode response: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", providerErrorf("gemini: empty response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

type geminiEmbedRequest struct {
	Content geminiContent `json:"content"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	url := fmt.Sprintf("%s/models/%s:embedContent?key=%s", geminiBaseURL, geminiEmbedding, g.apiKey)
	body := geminiEmbedRequest{Content: geminiContent{Parts: []geminiPart{{Text: text}}}}

	raw, err := g.post(ctx, url, body)
	if err != nil {
		return nil, err
	}

	var resp geminiEmbedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, providerErrorf("gemini: decode embedding: %v", err)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, providerErrorf("gemini: empty embedding")
	}
	return resp.Embedding.Values, nil
}

func (g *GeminiClient) post(ctx context.Context, url string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return doProviderRequest(g.httpClient, req, "gemini")
}

// ── OpenAI ────────────────────────────────────────────────────────────────────

// OpenAIClient calls the OpenAI chat completions and embeddings APIs.
type OpenAIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: providerTimeout},
	}
}

func (o *OpenAIClient) Name() string { return "openai" }

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (o *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body := openAIChatRequest{
		Model:     openAIModel,
		Messages:  []openAIMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}

	raw, err := o.post(ctx, openAIChatCompletionURL, body)
	if err != nil {
		return "", err
	}

	var resp openAIChatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", providerErrorf("openai: decode response: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", providerErrorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

type openAIEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (o *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	body := openAIEmbedRequest{Model: openAIEmbedding, Input: text}

	raw, err := o.post(ctx, openAIEmbeddingsURL, body)
	if err != nil {
		return nil, err
	}

	var resp openAIEmbedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, providerErrorf("openai: decode embedding: %v", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, providerErrorf("openai: empty embedding")
	}
	return resp.Data[0].Embedding, nil
}

func (o *OpenAIClient) post(ctx context.Context, url string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	return doProviderRequest(o.httpClient, req, "openai")
}

// ── Shared transport ──────────────────────────────────────────────────────────

func doProviderRequest(client *http.Client, req *http.Request, provider string) ([]byte, error) {
	start := time.Now()
	resp, err := client.Do(req)
	metrics.ProviderRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &transientError{providerErrorf("%s: %v", provider, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transientError{providerErrorf("%s: read response: %v", provider, err)}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &transientError{providerErrorf("%s: status %d", provider, resp.StatusCode)}
	default:
		return nil, providerErrorf("%s: status %d: %s", provider, resp.StatusCode, truncate(string(raw), 200))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ── Retry decoration ──────────────────────────────────────────────────────────

// RetryingProvider wraps a Provider with bounded exponential backoff on
// transient failures.
type RetryingProvider struct {
	inner Provider
}

func WithRetry(inner Provider) *RetryingProvider {
	return &RetryingProvider{inner: inner}
}

func (r *RetryingProvider) Name() string { return r.inner.Name() }

func (r *RetryingProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	var out string
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.inner.Complete(ctx, prompt, maxTokens)
		return err
	})
	return out, err
}

func (r *RetryingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.inner.Embed(ctx, text)
		return err
	})
	return out, err
}

func (r *RetryingProvider) do(ctx context.Context, fn func(context.Context) error) error {
	attempt := 0
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if attempt > 0 {
			metrics.ProviderRetriesTotal.WithLabelValues(r.inner.Name()).Inc()
		}
		attempt++

		err := fn(ctx)
		if err == nil {
			return nil
		}
		var te *transientError
		if errors.As(err, &te) {
			return retry.RetryableError(te.err)
		}
		return err
	})
}
