// Package pipeline orchestrates one pass over the input PR list: fetch,
// prompt, model call, parse, merge, render, and the final reconciliation.
// Processing is strictly sequential; a failed line, PR, or batch is
// reported and skipped, never fatal.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FindHao/relgen/internal/logging"
	"github.com/FindHao/relgen/internal/notes"
	"github.com/FindHao/relgen/internal/prompt"
)

// Fetcher reads PR metadata from the code-hosting API.
type Fetcher interface {
	Details(ctx context.Context, number string) (notes.PRDetail, error)
	Comments(ctx context.Context, number string) ([]notes.Comment, error)
}

// LLM produces the model response text for one batch prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Swappable in tests.
var (
	timeNow             = time.Now
	sleepBetweenBatches = time.Sleep
)

type Pipeline struct {
	cfg     Config
	fetcher Fetcher
	llm     LLM
	log     logging.Logger
}

func New(cfg Config, fetcher Fetcher, llm LLM, log logging.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, fetcher: fetcher, llm: llm, log: log}
}

// Run processes every batch in order, rewriting both rendered files after
// each successfully parsed batch, then reconciles the rendered output
// against the input list.
func (p *Pipeline) Run(ctx context.Context) error {
	entries, err := notes.ReadPRList(p.cfg.InputPath, p.log)
	if err != nil {
		return fmt.Errorf("read PR list: %w", err)
	}
	p.log.Info("read input PR list", "path", p.cfg.InputPath, "entries", len(entries))
	if len(entries) == 0 {
		p.log.Info("no PRs found in the input file")
		return nil
	}

	categories := notes.NewCategoryMap()
	batches := notes.Batch(entries, p.cfg.BatchSize)
	p.log.Info("processing batches", "batches", len(batches), "batch_size", p.cfg.BatchSize)

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.log.Info("processing batch", "batch", i+1, "of", len(batches))

		details := p.fetchBatch(ctx, batch)
		if len(details) == 0 {
			p.log.Info("no PR data fetched for batch, skipping", "batch", i+1)
			continue
		}

		text := prompt.Build(details)
		if tokens := prompt.EstimateTokens(text); tokens > p.cfg.PromptContextTokens {
			p.log.Info("prompt may exceed model context window",
				"batch", i+1, "tokens", tokens, "limit", p.cfg.PromptContextTokens)
		}

		response, err := p.llm.Generate(ctx, text)
		if err != nil {
			p.log.Error(err, "model call failed, skipping batch", "batch", i+1)
			continue
		}
		if response == "" {
			p.log.Info("empty model response, skipping batch", "batch", i+1)
			continue
		}

		if err := p.appendResponseLog(response); err != nil {
			p.log.Error(err, "failed to append response log", "path", p.cfg.ResponseLogPath)
		}

		parsed := notes.ParseResponse(response, p.log)
		notes.EnrichTags(parsed, details, p.log)
		categories.Merge(parsed)

		if err := p.writeOutputs(categories); err != nil {
			return err
		}
		p.log.Info("batch processed and results written", "batch", i+1)

		if i < len(batches)-1 && p.cfg.BatchDelay > 0 {
			sleepBetweenBatches(p.cfg.BatchDelay)
		}
	}

	p.log.Info("all batches processed")
	return p.reconcile(entries)
}

// fetchBatch fetches details and comments for each entry, dropping entries
// whose detail fetch fails. A failed comment fetch keeps the PR with no
// comments.
func (p *Pipeline) fetchBatch(ctx context.Context, batch []notes.PREntry) []notes.PRDetail {
	var details []notes.PRDetail
	for _, entry := range batch {
		detail, err := p.fetcher.Details(ctx, entry.Number)
		if err != nil {
			p.log.Error(err, "failed to fetch PR details, dropping from batch", "pr", entry.Number)
			continue
		}
		comments, err := p.fetcher.Comments(ctx, entry.Number)
		if err != nil {
			p.log.Error(err, "failed to fetch PR comments", "pr", entry.Number)
		}
		detail.Comments = comments
		detail.OriginalTitle = entry.OriginalTitle
		detail.Tags = entry.Tags
		details = append(details, detail)
	}
	return details
}

func (p *Pipeline) writeOutputs(categories notes.CategoryMap) error {
	plain := notes.Render(categories, p.cfg.Owner, p.cfg.Repo, false)
	if err := writeFileAtomic(p.cfg.OutputMarkdown, plain); err != nil {
		return fmt.Errorf("write %s: %w", p.cfg.OutputMarkdown, err)
	}
	linked := notes.Render(categories, p.cfg.Owner, p.cfg.Repo, true)
	if err := writeFileAtomic(p.cfg.OutputURLMarkdown, linked); err != nil {
		return fmt.Errorf("write %s: %w", p.cfg.OutputURLMarkdown, err)
	}
	return nil
}

func (p *Pipeline) appendResponseLog(response string) error {
	f, err := os.OpenFile(p.cfg.ResponseLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	stamp := timeNow().Format("2006-01-02 15:04:05")
	_, err = fmt.Fprintf(f, "\n### %s\n%s\n", stamp, response)
	return err
}

func (p *Pipeline) reconcile(entries []notes.PREntry) error {
	released, err := notes.ExtractPRNumbers(p.cfg.OutputMarkdown)
	if err != nil {
		return fmt.Errorf("extract PR numbers from %s: %w", p.cfg.OutputMarkdown, err)
	}
	result := notes.Reconcile(entries, released)
	p.log.Info("processing summary",
		"total", result.Total,
		"processed", result.Processed,
		"unprocessed", len(result.Unprocessed),
	)

	if len(result.Unprocessed) == 0 {
		p.log.Info("all PRs have been processed")
		return nil
	}

	var b []byte
	for _, e := range result.Unprocessed {
		b = append(b, e.OriginalTitle...)
		b = append(b, '\n')
	}
	if err := writeFileAtomic(p.cfg.UnprocessedPath, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", p.cfg.UnprocessedPath, err)
	}
	p.log.Info("unprocessed PRs written", "path", p.cfg.UnprocessedPath)
	return nil
}

// writeFileAtomic overwrites path via a temp file and rename so a crash
// mid-write cannot leave a truncated output.
func writeFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".relgen-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
