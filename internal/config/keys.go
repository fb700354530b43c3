package config

const (
	KeyGitHubToken         = "github_token"
	KeyRepoURL             = "repo_url"
	KeyOllamaURL           = "ollama_url"
	KeyModelName           = "model_name"
	KeyBatchSize           = "batch_size"
	KeyBatchDelay          = "batch_delay"
	KeyLogLevel            = "log_level"
	KeyLLMCallTimeout      = "llm_call_timeout"
	KeyPromptContextTokens = "prompt_context_tokens"
	KeyRateLimitFloor      = "rate_limit_floor"
)
