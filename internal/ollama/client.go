// Package ollama implements the streamed /api/generate exchange with a
// locally hosted Ollama server. The response is a finite sequence of
// newline-delimited JSON fragments, each carrying an optional "response"
// text increment and an optional "done" completion flag.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/FindHao/relgen/internal/logging"
)

const maxFragmentSize = 1024 * 1024

type Client struct {
	url   string
	model string
	http  *http.Client
	log   logging.Logger
	to    time.Duration
}

// NewClient builds a Client for the given server base URL and model name.
// A zero timeout disables the per-call deadline.
func NewClient(baseURL, model string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		url:   strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/api/generate",
		model: model,
		http:  &http.Client{},
		log:   log,
		to:    timeout,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Options map[string]any `json:"options"`
}

// Generate sends the prompt and accumulates the streamed response text until
// the server reports done. Malformed fragments are reported and skipped. A
// transport error or non-200 status yields an empty result and an error; the
// caller is expected to skip the batch.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Options: map[string]any{
			"max_length": 2000,
			"stream":     true,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.annotateError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFragmentSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			c.log.Info("skipping malformed stream fragment", "fragment", line)
			continue
		}
		fragment := gjson.Parse(line)
		if r := fragment.Get("response"); r.Exists() {
			full.WriteString(r.String())
		}
		if fragment.Get("done").Bool() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", c.annotateError(fmt.Errorf("read response stream: %w", err))
	}

	return strings.TrimSpace(full.String()), nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}

func (c *Client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("ollama call timed out after %s: %w", c.to, err)
	}
	return err
}
