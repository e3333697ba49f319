// Package openai provides OpenAI text-to-speech integration for coach
// audio responses
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/forkcast/forkcast/internal/domain/preference"
	"github.com/forkcast/forkcast/internal/infrastructure/config"
	"github.com/forkcast/forkcast/internal/ports/outbound"
	"go.uber.org/zap"
)

// voiceForTone maps the coach tone to an OpenAI TTS voice
var voiceForTone = map[preference.Tone]string{
	preference.ToneHype:    "onyx",
	preference.ToneGentle:  "nova",
	preference.ToneNeutral: "alloy",
}

// SpeechClient implements the speech service interface using the
// OpenAI audio/speech endpoint. Clips are written under the static
// audio directory and served by the HTTP server.
type SpeechClient struct {
	apiKey       string
	baseURL      string
	model        string
	audioDir     string
	audioBaseURL string
	client       *http.Client
	logger       *zap.Logger
}

// NewSpeechClient creates a new speech client
func NewSpeechClient(cfg config.OpenAIConfig, logger *zap.Logger) *SpeechClient {
	if cfg.APIKey == "" {
		logger.Info("OpenAI API key not configured, coach audio disabled")
	}

	return &SpeechClient{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		model:        cfg.TTSModel,
		audioDir:     cfg.AudioDir,
		audioBaseURL: cfg.AudioBaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("openai-speech"),
	}
}

var _ outbound.SpeechService = (*SpeechClient)(nil)

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// RenderAudio synthesizes the coach text and returns the URL of the
// saved clip. An unconfigured client returns an empty URL and no error
// so callers degrade to text-only responses.
func (c *SpeechClient) RenderAudio(ctx context.Context, text string, tone preference.Tone) (string, error) {
	if c.apiKey == "" || text == "" {
		return "", nil
	}

	voice, ok := voiceForTone[tone]
	if !ok {
		voice = voiceForTone[preference.ToneNeutral]
	}

	reqBody := speechRequest{
		Model: c.model,
		Input: text,
		Voice: voice,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/audio/speech", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("speech API error %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}

	if err := os.MkdirAll(c.audioDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	fileName := fmt.Sprintf("response_%d.mp3", time.Now().UnixNano())
	if err := os.WriteFile(filepath.Join(c.audioDir, fileName), audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to save audio: %w", err)
	}

	c.logger.Info("Coach audio synthesized",
		zap.String("voice", voice),
		zap.Int("bytes", len(audio)),
	)

	return c.audioBaseURL + "/" + fileName, nil
}
