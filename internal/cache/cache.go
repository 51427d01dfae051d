// Package cache persists commit-list snapshots keyed by repository and branch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/masmgr/commitlog/internal/git"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "commitlog"

// ErrCacheMiss is returned by Read when no snapshot exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// DecodeError reports a stored value that is not a commit-record array.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode cached value for %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Key identifies one snapshot. Both components are escaped so a repository
// or branch name containing the separator cannot collide with another pair.
type Key struct {
	Repo   string
	Branch string
}

func (k Key) String() string {
	return keyPrefix + ":" + url.QueryEscape(k.Repo) + ":" + url.QueryEscape(k.Branch)
}

// ParseKey reverses Key.String.
func ParseKey(s string) (Key, error) {
	rest, ok := strings.CutPrefix(s, keyPrefix+":")
	if !ok {
		return Key{}, fmt.Errorf("cache key %q: missing %q prefix", s, keyPrefix)
	}
	repoPart, branchPart, ok := strings.Cut(rest, ":")
	if !ok || strings.Contains(branchPart, ":") {
		return Key{}, fmt.Errorf("cache key %q: expected two components", s)
	}
	repo, err := url.QueryUnescape(repoPart)
	if err != nil {
		return Key{}, fmt.Errorf("cache key %q: %w", s, err)
	}
	branch, err := url.QueryUnescape(branchPart)
	if err != nil {
		return Key{}, fmt.Errorf("cache key %q: %w", s, err)
	}
	return Key{Repo: repo, Branch: branch}, nil
}

// CommitCache stores commit lists as JSON arrays in a Store.
type CommitCache struct {
	store Store
	log   logrus.FieldLogger
}

// New wraps store. A nil logger uses the standard logrus logger.
func New(store Store, logger logrus.FieldLogger) *CommitCache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CommitCache{store: store, log: logger}
}

// Write replaces the snapshot for (repo, branch) with commits.
func (c *CommitCache) Write(ctx context.Context, repo, branch string, commits []git.CommitRecord) error {
	if commits == nil {
		commits = []git.CommitRecord{}
	}
	payload, err := json.Marshal(commits)
	if err != nil {
		return fmt.Errorf("encode commits: %w", err)
	}

	key := Key{Repo: repo, Branch: branch}.String()
	if err := c.store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("write cache %s: %w", key, err)
	}

	c.log.WithFields(logrus.Fields{"key": key, "commits": len(commits)}).Info("Wrote commits to cache")
	return nil
}

// Read returns the snapshot for (repo, branch). An absent key yields
// ErrCacheMiss; an undecodable value yields *DecodeError.
func (c *CommitCache) Read(ctx context.Context, repo, branch string) ([]git.CommitRecord, error) {
	key := Key{Repo: repo, Branch: branch}.String()
	value, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", key, err)
	}

	var commits []git.CommitRecord
	if err := json.Unmarshal([]byte(value), &commits); err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	if commits == nil {
		// A stored JSON null is not a commit list.
		return nil, &DecodeError{Key: key, Err: errors.New("value is not an array")}
	}

	c.log.WithFields(logrus.Fields{"key": key, "commits": len(commits)}).Debug("Read commits from cache")
	return commits, nil
}
