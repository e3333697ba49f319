// Package airia provides the Airia pipeline integration for
// conversational coach text
package airia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/infrastructure/config"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"go.uber.org/zap"
)

// ChatClient implements the chat service interface against an Airia
// pipeline execution endpoint.
type ChatClient struct {
	pipelineURL string
	apiKey      string
	client      *http.Client
	logger      *zap.Logger
}

// NewChatClient creates a new chat client
func NewChatClient(cfg config.AiriaConfig, logger *zap.Logger) *ChatClient {
	if cfg.PipelineURL == "" || cfg.APIKey == "" {
		logger.Info("Airia pipeline not configured, using built-in coach text")
	}

	return &ChatClient{
		pipelineURL: cfg.PipelineURL,
		apiKey:      cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("airia-chat"),
	}
}

var _ outbound.ChatService = (*ChatClient)(nil)

type pipelineRequest struct {
	UserInput   string `json:"userInput"`
	AsyncOutput bool   `json:"asyncOutput"`
}

// RenderText executes the pipeline with a prompt describing the tone
// and the ranked options. An unconfigured client returns an empty
// string and no error so callers fall back to the built-in templates.
func (c *ChatClient) RenderText(ctx context.Context, tone preference.Tone, userMessage string, offers []outbound.RankedOffer) (string, error) {
	if c.pipelineURL == "" || c.apiKey == "" {
		return "", nil
	}

	reqBody := pipelineRequest{
		UserInput:   buildPrompt(tone, userMessage, offers),
		AsyncOutput: false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.pipelineURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pipeline request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pipeline error %d: %s", resp.StatusCode, string(body))
	}

	text, err := extractText(body)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Pipeline responded", zap.Int("chars", len(text)))

	return text, nil
}

// buildPrompt assembles the pipeline input: the coaching persona, the
// requested tone, and the ranked options the coach should present.
func buildPrompt(tone preference.Tone, userMessage string, offers []outbound.RankedOffer) string {
	var b strings.Builder

	b.WriteString("You are a food delivery coach helping a user pick a meal. ")
	b.WriteString(tone.Description())
	b.WriteString("\n\nUser request: ")
	b.WriteString(userMessage)
	b.WriteString("\n\nTop options:\n")
	for i, offer := range offers {
		fmt.Fprintf(&b, "%d. %s from %s at $%.2f\n", i+1, offer.Name, offer.Restaurant, offer.EffectivePrice)
	}
	b.WriteString("\nRecommend from these options in two or three sentences.")

	return b.String()
}

// extractText pulls the generated text out of the pipeline response.
// The execution API has shipped several envelope shapes, so a handful
// of known keys are tried before giving up.
func extractText(body []byte) (string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		// A bare JSON string is also a valid response
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			return s, nil
		}
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	for _, key := range []string{"output", "result", "response", "text"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, nil
		}
	}

	return "", fmt.Errorf("no text field in pipeline response")
}
