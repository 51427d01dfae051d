package git

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/masmgr/commitlog/internal/workpool"
)

// SearchFetcher searches commits reachable from every ref.
type SearchFetcher struct {
	invoker
}

// NewSearchFetcher creates a search fetcher that runs git through runner.
func NewSearchFetcher(runner Runner, opts Options) *SearchFetcher {
	return &SearchFetcher{invoker: newInvoker(runner, opts)}
}

// Search returns every commit matching filter, in git's output order.
func (s *SearchFetcher) Search(ctx context.Context, repo Repository, filter SearchFilter) ([]CommitRecord, error) {
	var commits []CommitRecord
	err := s.SearchEach(ctx, repo, filter, func(rec CommitRecord) error {
		commits = append(commits, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log().Debugf("Found %d commits", len(commits))
	return commits, nil
}

// SearchEach decodes matching commits while git is still producing them and
// passes each to fn. An error from fn stops git and is returned.
func (s *SearchFetcher) SearchEach(ctx context.Context, repo Repository, filter SearchFilter, fn func(CommitRecord) error) error {
	decoder := NewRecordDecoder(ModeFullHistory)
	if err := s.stream(ctx, repo, decoder.LineHandler(fn), searchArgs(filter)...); err != nil {
		return fmt.Errorf("search commits in %s: %w", repo.Name, err)
	}
	return nil
}

// ConcurrentSearch runs the same search in workers independent git processes.
// Results are not merged; each worker reports how many commits it decoded.
func (s *SearchFetcher) ConcurrentSearch(ctx context.Context, repo Repository, filter SearchFilter, workers int) ([]SearchRun, error) {
	if workers < 1 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", workers)
	}

	runs := make([]SearchRun, workers)
	err := workpool.Run(ctx, workers, workers, func(ctx context.Context, worker int) error {
		start := time.Now()
		count := 0
		err := s.SearchEach(ctx, repo, filter, func(CommitRecord) error {
			count++
			return nil
		})
		if err != nil {
			return fmt.Errorf("search worker %d: %w", worker, err)
		}

		runs[worker] = SearchRun{Worker: worker, Commits: count, Elapsed: time.Since(start)}
		s.log().WithFields(logrus.Fields{
			"worker":  worker,
			"commits": count,
			"elapsed": runs[worker].Elapsed.String(),
		}).Debug("Search worker finished")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// searchArgs builds the rev-list argv. Filters are literal substrings, not
// regular expressions.
func searchArgs(filter SearchFilter) []string {
	args := []string{"rev-list", "--all", "--remotes", "--pretty=format:" + recordFormat}
	if filter.IsEmpty() {
		return args
	}
	args = append(args, "--fixed-strings")
	if filter.Author != "" {
		args = append(args, "--author="+filter.Author)
	}
	if filter.Committer != "" {
		args = append(args, "--committer="+filter.Committer)
	}
	if filter.Description != "" {
		args = append(args, "--grep="+filter.Description)
	}
	return args
}
