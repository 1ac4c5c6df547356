package source

import (
	"context"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/utkarsh5026/loggraph/pkg/commit"
)

// GitLoader reads the commits reachable from every reference of a git
// repository
type GitLoader struct{}

// NewGitLoader creates a git repository loader
func NewGitLoader() *GitLoader {
	return &GitLoader{}
}

// Load opens the repository at path, searching parent directories for the
// .git directory.
func (l *GitLoader) Load(ctx context.Context, path string, limit int) (commit.Sequence, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return FromRepository(ctx, repo, limit)
}

// FromRepository walks all references of repo in committer time order,
// newest first, and returns up to limit commits ordered children first.
func FromRepository(ctx context.Context, repo *gogit.Repository, limit int) (commit.Sequence, error) {
	iter, err := repo.Log(&gogit.LogOptions{
		All:   true,
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	defer iter.Close()

	var commits []*commit.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}

		converted, err := convertCommit(c)
		if err != nil {
			return err
		}
		commits = append(commits, converted)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}

	return commit.TopoSort(commits)
}

func convertCommit(c *object.Commit) (*commit.Commit, error) {
	parents := make([]commit.Hash, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, commit.Hash(p.String()))
	}

	out, err := commit.NewCommit(commit.Hash(c.Hash.String()), parents...)
	if err != nil {
		return nil, err
	}

	subject, _, _ := strings.Cut(c.Message, "\n")
	out.Subject = strings.TrimSpace(subject)
	out.Author = c.Author.Name
	return out, nil
}
