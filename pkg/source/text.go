package source

import (
	"context"
	"fmt"
	"os"

	"github.com/utkarsh5026/loggraph/pkg/commit"
)

// TextLoader reads logs in the plain text format of commit.ParseLog
type TextLoader struct{}

// NewTextLoader creates a text log loader
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load parses the file at path. The limit keeps the first commits of the
// file before ordering.
func (l *TextLoader) Load(ctx context.Context, path string, limit int) (commit.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	commits, err := commit.ParseLog(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return commit.TopoSort(truncate(commits, limit))
}
