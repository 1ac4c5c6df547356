package commit

import (
	"fmt"
)

// Hash identifies a commit. Any non-empty string is accepted so that
// abbreviated hashes and synthetic test names work the same way.
type Hash string

// String returns the hash as a string
func (h Hash) String() string {
	return string(h)
}

// Short returns the first seven characters of the hash
func (h Hash) Short() string {
	if len(h) > 7 {
		return string(h[:7])
	}
	return string(h)
}

// Commit is the identity of a single VCS revision as seen by the log.
//
// A Commit is created once per log entry and never mutated afterwards.
type Commit struct {
	// Hash is the commit identity
	Hash Hash

	// Parents lists parent hashes, first parent first
	Parents []Hash

	// Subject is the first line of the commit message (optional)
	Subject string

	// Author is the author name (optional)
	Author string
}

// NewCommit creates a commit and validates its identity and parent list.
func NewCommit(hash Hash, parents ...Hash) (*Commit, error) {
	if hash == "" {
		return nil, fmt.Errorf("commit hash must not be empty")
	}

	seen := make(map[Hash]bool, len(parents))
	for _, p := range parents {
		if p == "" {
			return nil, fmt.Errorf("commit %s: empty parent hash", hash)
		}
		if p == hash {
			return nil, fmt.Errorf("commit %s: commit is its own parent", hash)
		}
		if seen[p] {
			return nil, fmt.Errorf("commit %s: duplicate parent %s", hash, p)
		}
		seen[p] = true
	}

	return &Commit{
		Hash:    hash,
		Parents: append([]Hash(nil), parents...),
	}, nil
}

// IsMerge reports whether the commit has two or more parents
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsInitial reports whether the commit has no parents
func (c *Commit) IsInitial() bool {
	return len(c.Parents) == 0
}

// ShortSubject returns the subject cut to at most max characters, ending
// with "..." when it was cut. Characters are counted as runes.
func (c *Commit) ShortSubject(max int) string {
	runes := []rune(c.Subject)
	if len(runes) <= max {
		return c.Subject
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func (c *Commit) String() string {
	return c.Hash.Short()
}
