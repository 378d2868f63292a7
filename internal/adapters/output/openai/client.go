package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"broadcast-service/configs"
	"broadcast-service/internal/domain"
	"broadcast-service/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure Client implements the Translator port
var _ output.Translator = (*Client)(nil)

const defaultTimeout = 20 * time.Second

// systemPrompt instructs the model to behave as a pure translator.
// Anything beyond the translated text (quotes, commentary, labels)
// would end up on students' screens verbatim.
const systemPrompt = "You are a professional translator for a live classroom. " +
	"Translate the user's text from %s to %s. " +
	"Return only the translated text, with no quotes, labels or explanations."

// Client struct - Output adapter for the quality translation provider,
// an OpenAI-compatible chat-completions API. Higher latency, higher
// quality; consulted only for finalized utterances.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
}

// NewClient func - Creates new quality translation client
func NewClient(config configs.OpenAI) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	model := config.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("Quality translation client initialized with base URL: %s, model: %s, timeout: %v", baseURL, model, timeout)

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     config.APIKey,
		model:      model,
		timeout:    timeout,
	}
}

// Translate asks the model for a translation and returns the trimmed
// completion content. Same error discipline as the fast client: errors
// surface, the caller degrades, nothing is retried.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temperature := 0.2
	reqBody := chatCompletionAPIRequest{
		Model: c.model,
		Messages: []chatMessageAPI{
			{Role: "system", Content: fmt.Sprintf(systemPrompt, sourceLang, targetLang)},
			{Role: "user", Content: text},
		},
		Temperature: &temperature,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat completion request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d - %s", domain.ErrInvalidRequest, resp.StatusCode, string(body))
	}
	if resp.StatusCode >= 500 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d - %s", domain.ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	var apiResp chatCompletionAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderResponse, err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", domain.ErrProviderResponse)
	}

	translated := strings.TrimSpace(apiResp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrProviderResponse)
	}

	return translated, nil
}

// API request/response structures for the OpenAI-compatible API

type chatMessageAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionAPIRequest struct {
	Model       string           `json:"model"`
	Messages    []chatMessageAPI `json:"messages"`
	Temperature *float64         `json:"temperature,omitempty"`
}

type chatCompletionAPIResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
