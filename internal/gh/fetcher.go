package gh

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/go-github/v66/github"

	"github.com/FindHao/relgen/internal/logging"
	"github.com/FindHao/relgen/internal/notes"
)

// botAuthors are comment authors excluded from fetched comments.
var botAuthors = map[string]bool{
	"github-actions[bot]": true,
	"pytorch-bot[bot]":    true,
	"pytorchmergebot":     true,
}

// sleepFunc is swappable in tests.
var sleepFunc = time.Sleep

type Fetcher struct {
	client *github.Client
	owner  string
	repo   string
	floor  int
	log    logging.Logger
}

// NewFetcher builds a Fetcher. floor is the rate-limit low-water mark below
// which the fetcher sleeps until the reported reset time.
func NewFetcher(client *github.Client, owner, repo string, floor int, log logging.Logger) *Fetcher {
	return &Fetcher{client: client, owner: owner, repo: repo, floor: floor, log: log}
}

// Details fetches title and body for one PR by number.
func (f *Fetcher) Details(ctx context.Context, number string) (notes.PRDetail, error) {
	n, err := strconv.Atoi(number)
	if err != nil {
		return notes.PRDetail{}, fmt.Errorf("invalid PR number %q: %w", number, err)
	}
	pr, resp, err := f.client.PullRequests.Get(ctx, f.owner, f.repo, n)
	f.handleRateLimit(resp)
	if err != nil {
		return notes.PRDetail{}, fmt.Errorf("fetch PR #%s details: %w", number, err)
	}
	return notes.PRDetail{
		Number: number,
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
	}, nil
}

// Comments fetches the issue comments for a PR, dropping bot authors.
func (f *Fetcher) Comments(ctx context.Context, number string) ([]notes.Comment, error) {
	n, err := strconv.Atoi(number)
	if err != nil {
		return nil, fmt.Errorf("invalid PR number %q: %w", number, err)
	}
	raw, resp, err := f.client.Issues.ListComments(ctx, f.owner, f.repo, n, nil)
	f.handleRateLimit(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch comments for PR #%s: %w", number, err)
	}
	var comments []notes.Comment
	for _, c := range raw {
		login := c.GetUser().GetLogin()
		if botAuthors[login] {
			continue
		}
		comments = append(comments, notes.Comment{User: login, Body: c.GetBody()})
	}
	return comments, nil
}

// RateLimit reports the current core rate-limit remaining count and reset time.
func (f *Fetcher) RateLimit(ctx context.Context) (int, time.Time, error) {
	limits, _, err := f.client.RateLimit.Get(ctx)
	if err != nil {
		return 0, time.Time{}, err
	}
	core := limits.GetCore()
	return core.Remaining, core.Reset.Time, nil
}

// handleRateLimit sleeps until the reported reset time (plus a small buffer)
// when the remaining call count drops below the configured floor.
func (f *Fetcher) handleRateLimit(resp *github.Response) {
	if resp == nil || f.floor <= 0 {
		return
	}
	if resp.Rate.Remaining >= f.floor {
		return
	}
	reset := resp.Rate.Reset.Time
	wait := time.Until(reset)
	if wait < 0 {
		wait = 0
	}
	wait += 5 * time.Second
	f.log.Info("approaching rate limit, sleeping until reset",
		"remaining", resp.Rate.Remaining,
		"sleep", wait.Truncate(time.Second).String(),
		"reset", reset.Format("2006-01-02 15:04:05"),
	)
	sleepFunc(wait)
}
