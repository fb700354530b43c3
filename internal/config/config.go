package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyRepoURL, "https://github.com/pytorch/pytorch")
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyModelName, "deepseek-r1:14b")
	viper.SetDefault(KeyBatchSize, 5)
	viper.SetDefault(KeyBatchDelay, "1s")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLLMCallTimeout, "0")
	viper.SetDefault(KeyPromptContextTokens, 8192)
	viper.SetDefault(KeyRateLimitFloor, 10)
}

func GitHubToken() string       { return viper.GetString(KeyGitHubToken) }
func RepoURL() string           { return viper.GetString(KeyRepoURL) }
func OllamaURL() string         { return viper.GetString(KeyOllamaURL) }
func ModelName() string         { return viper.GetString(KeyModelName) }
func BatchSize() int            { return viper.GetInt(KeyBatchSize) }
func BatchDelay() string        { return viper.GetString(KeyBatchDelay) }
func LogLevel() string          { return viper.GetString(KeyLogLevel) }
func LLMCallTimeout() string    { return viper.GetString(KeyLLMCallTimeout) }
func PromptContextTokens() int  { return viper.GetInt(KeyPromptContextTokens) }
func RateLimitFloor() int       { return viper.GetInt(KeyRateLimitFloor) }
