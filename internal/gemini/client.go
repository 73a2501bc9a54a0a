package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrMissingCredential indicates no API key was configured.
var ErrMissingCredential = errors.New("gemini: API key not configured (set GEMINI_API_KEY)")

// Client calls the Gemini generateContent API over HTTP.
//
// Calls are expensive and non-deterministic, so the client makes exactly one
// attempt per Generate: a failed call is surfaced, never silently retried.
type Client struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	temperature     float64
	httpClient      *http.Client
	log             *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a client with default configuration.
func NewClient(apiKey string, log *zap.Logger) *Client {
	return NewClientWithConfig(DefaultConfig(apiKey), log)
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.0-flash"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultConfig("").BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         baseURL,
		model:           model,
		maxOutputTokens: maxTokens,
		temperature:     cfg.Temperature,
		httpClient:      &http.Client{Timeout: timeout},
		log:             log,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one generateContent call and decodes the JSON payload from
// the response text. The call blocks until the model answers or ctx expires.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}

	// Auto-apply timeout if context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	start := time.Now()
	c.log.Debug("gemini call",
		zap.String("model", c.model),
		zap.Bool("grounding", req.Grounding),
		zap.Int("prompt_len", len(req.Prompt)),
		zap.String("video_url", req.VideoURL))

	// Pace successive calls; the API throttles aggressively on bursts.
	c.mu.Lock()
	if elapsed := time.Since(c.lastRequest); elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	body := c.buildRequest(req)
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("gemini request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error("gemini API error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(raw))
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	var sb strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())

	result := &Result{Raw: text}
	if gm := apiResp.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			if chunk.Web != nil && chunk.Web.URI != "" {
				result.GroundingSources = append(result.GroundingSources, chunk.Web.URI)
			}
		}
		if len(result.GroundingSources) > 0 {
			c.log.Debug("grounding sources",
				zap.Int("count", len(result.GroundingSources)),
				zap.Strings("queries", gm.WebSearchQueries))
		}
	}

	payload, err := DecodeObject(text)
	if err != nil {
		c.log.Warn("response is not valid JSON", zap.Int("raw_len", len(text)), zap.Error(err))
		return result, fmt.Errorf("response JSON extraction failed: %w", err)
	}
	result.Payload = payload

	c.log.Info("gemini call completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(text)),
		zap.Int("total_tokens", apiResp.UsageMetadata.TotalTokenCount),
		zap.Int("grounding_sources", len(result.GroundingSources)))
	return result, nil
}

func (c *Client) buildRequest(req Request) geminiRequest {
	parts := []geminiPart{{Text: req.Prompt}}
	if req.VideoURL != "" {
		parts = append(parts, geminiPart{
			FileData: &geminiFileData{FileURI: req.VideoURL, MimeType: "video/*"},
		})
	}

	maxTokens := c.maxOutputTokens
	if req.MaxOutputTokens > 0 {
		maxTokens = req.MaxOutputTokens
	}

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: maxTokens,
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	if req.Grounding {
		// Built-in tools cannot be combined with enforced response schemas;
		// grounded calls request JSON via the prompt instead.
		body.Tools = []geminiTool{{GoogleSearch: &geminiGoogleSearch{}}}
	} else {
		body.GenerationConfig.ResponseMimeType = "application/json"
		if req.Spec != nil {
			body.GenerationConfig.ResponseSchema = req.Spec.JSONSchema()
		}
	}
	return body
}
