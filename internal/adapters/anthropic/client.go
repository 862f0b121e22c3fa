package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBase  = "https://api.anthropic.com"
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"

	// Sonnet pricing: $3/M input tokens, $15/M output tokens.
	inputCostPerMTok  = 3.0
	outputCostPerMTok = 15.0
)

// Client calls the Anthropic Messages API to assess market edges and tracks
// cumulative token spend. Not safe for concurrent use; the engine serializes
// all predictor calls behind its lock.
type Client struct {
	http   *http.Client
	base   string
	apiKey string
	model  string

	totalInputTokens  uint64
	totalOutputTokens uint64
}

// NewClient creates a predictor client. An empty base selects production.
func NewClient(base, apiKey, model string) *Client {
	if base == "" {
		base = defaultBase
	}
	return &Client{
		http:   &http.Client{Timeout: 60 * time.Second},
		base:   base,
		apiKey: apiKey,
		model:  model,
	}
}

// CumulativeCost returns the estimated API spend in USD since construction.
func (c *Client) CumulativeCost() float64 {
	inputCost := float64(c.totalInputTokens) / 1_000_000.0 * inputCostPerMTok
	outputCost := float64(c.totalOutputTokens) / 1_000_000.0 * outputCostPerMTok
	return inputCost + outputCost
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Usage   *usage         `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type usage struct {
	InputTokens  uint64 `json:"input_tokens"`
	OutputTokens uint64 `json:"output_tokens"`
}

// complete sends one Messages API request and returns the text of the first
// content block.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: 1024,
		System:    system,
		Messages:  []message{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+messagesPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("messages API %d: %s", resp.StatusCode, string(msg))
	}

	var decoded messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if decoded.Usage != nil {
		c.totalInputTokens += decoded.Usage.InputTokens
		c.totalOutputTokens += decoded.Usage.OutputTokens
	}

	if len(decoded.Content) == 0 {
		return "", nil
	}
	return decoded.Content[0].Text, nil
}
