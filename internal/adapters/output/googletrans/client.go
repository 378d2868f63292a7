package googletrans

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

const defaultTimeout = 8 * time.Second

// Client struct - Output adapter for the low-latency text translation
// provider (Translate-v2 wire shape, API-key keyed). This is the first
// consult for interim and final text; quality is traded for speed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// NewClient func - Creates new fast translation client
func NewClient(config configs.Translate) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://translation.googleapis.com"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

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

	logrus.Infof("Fast translation client initialized with base URL: %s, timeout: %v", baseURL, timeout)

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     config.APIKey,
		timeout:    timeout,
	}
}

// Translate sends text to the provider and returns the translation for
// targetLang. Errors surface to the caller; the orchestrator owns the
// degrade-to-original policy, and nothing is retried here - a later
// utterance is a fresh attempt.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := translateAPIRequest{
		Q:      []string{text},
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal translate request: %w", err)
	}

	url := fmt.Sprintf("%s/language/translate/v2?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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

	var apiResp translateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderResponse, err)
	}
	if len(apiResp.Data.Translations) == 0 {
		return "", fmt.Errorf("%w: no translations in response", domain.ErrProviderResponse)
	}

	return apiResp.Data.Translations[0].TranslatedText, nil
}

// API request/response structures for the Translate-v2 wire shape

type translateAPIRequest struct {
	Q      []string `json:"q"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type translateAPIResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}
