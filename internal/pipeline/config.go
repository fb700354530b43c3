package pipeline

import (
	"fmt"
	"strings"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"

	"github.com/FindHao/relgen/internal/config"
)

type Config struct {
	Owner               string
	Repo                string
	GitHubToken         string
	OllamaURL           string
	ModelName           string
	BatchSize           int
	BatchDelay          time.Duration
	LLMCallTimeout      time.Duration
	PromptContextTokens int
	RateLimitFloor      int

	InputPath         string
	OutputMarkdown    string
	OutputURLMarkdown string
	UnprocessedPath   string
	ResponseLogPath   string
}

// LoadConfig resolves pipeline configuration from the environment. File
// paths come from command flags and are filled in by the caller. A missing
// GitHub token is a startup error.
func LoadConfig() (Config, error) {
	token := strings.TrimSpace(config.GitHubToken())
	if token == "" {
		return Config{}, fmt.Errorf("%s is not set", strings.ToUpper(config.KeyGitHubToken))
	}

	info, err := vcsurl.Parse(config.RepoURL())
	if err != nil {
		return Config{}, fmt.Errorf("invalid repo_url %q: %w", config.RepoURL(), err)
	}

	cfg := Config{
		Owner:               info.Username,
		Repo:                info.Name,
		GitHubToken:         token,
		OllamaURL:           config.OllamaURL(),
		ModelName:           config.ModelName(),
		BatchSize:           config.BatchSize(),
		PromptContextTokens: config.PromptContextTokens(),
		RateLimitFloor:      config.RateLimitFloor(),
	}

	delay, err := parseDuration(config.BatchDelay(), time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid batch_delay: %w", err)
	}
	cfg.BatchDelay = delay

	timeout, err := parseDuration(config.LLMCallTimeout(), 0)
	if err != nil {
		return Config{}, fmt.Errorf("invalid llm_call_timeout: %w", err)
	}
	cfg.LLMCallTimeout = timeout

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "0" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	return d, nil
}
