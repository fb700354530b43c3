package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FindHao/relgen/internal/config"
	"github.com/FindHao/relgen/internal/dedupe"
	"github.com/FindHao/relgen/internal/gh"
	"github.com/FindHao/relgen/internal/logging"
	"github.com/FindHao/relgen/internal/ollama"
	"github.com/FindHao/relgen/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "relgen",
	Short: "Generate categorized release notes from GitHub PRs using Ollama",
}

var (
	inputPath       string
	outputMarkdown  string
	outputURLMd     string
	unprocessedPath string
	responseLogPath string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the release-notes pipeline once over the input PR list",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.LoadConfig()
		if err != nil {
			return err
		}
		cfg.InputPath = inputPath
		cfg.OutputMarkdown = outputMarkdown
		cfg.OutputURLMarkdown = outputURLMd
		cfg.UnprocessedPath = unprocessedPath
		cfg.ResponseLogPath = responseLogPath

		logger := logging.New(logging.ForLevel(config.LogLevel()))
		client := gh.NewClient(cfg.GitHubToken)
		fetcher := gh.NewFetcher(client, cfg.Owner, cfg.Repo, cfg.RateLimitFloor, logger.WithName("github"))
		llm := ollama.NewClient(cfg.OllamaURL, cfg.ModelName, cfg.LLMCallTimeout, logger.WithName("ollama"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() { <-sigs; cancel() }()

		return pipeline.New(cfg, fetcher, llm, logger).Run(ctx)
	},
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe-tags <file>",
	Short: "De-duplicate bracketed tags on a rendered release notes file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(logging.ForLevel(config.LogLevel()))
		_, err := dedupe.CleanFile(args[0], logger)
		return err
	},
}

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Print the current GitHub API rate-limit status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.LoadConfig()
		if err != nil {
			return err
		}
		logger := logging.New(logging.ForLevel(config.LogLevel()))
		client := gh.NewClient(cfg.GitHubToken)
		fetcher := gh.NewFetcher(client, cfg.Owner, cfg.Repo, 0, logger)

		remaining, reset, err := fetcher.RateLimit(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch rate limit: %w", err)
		}
		fmt.Printf("Remaining requests: %d\n", remaining)
		fmt.Printf("Rate limit resets at: %s\n", reset.Format("2006-01-02 15:04:05"))
		return nil
	},
}

func main() {
	generateCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the input file containing the list of PRs")
	generateCmd.Flags().StringVarP(&outputMarkdown, "output-md", "m", "release.md", "output Markdown file for release notes")
	generateCmd.Flags().StringVarP(&outputURLMd, "output-url-md", "u", "release_url.md", "output Markdown file with PR URLs")
	generateCmd.Flags().StringVarP(&unprocessedPath, "output-unprocessed", "o", "unprocessed_prs.txt", "output file for unprocessed PR titles")
	generateCmd.Flags().StringVar(&responseLogPath, "response-log", "ollama_responses.log", "append-only log of raw model responses")
	_ = generateCmd.MarkFlagRequired("input")

	config.Init(rootCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(dedupeCmd)
	rootCmd.AddCommand(ratelimitCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("relgen: %v", err)
	}
}
