// Package source loads commit sequences from the places a history can live:
// git repositories on disk and plain text logs.
//
// Locations are written as "<scheme>:<path>". A bare path uses the registry's
// default scheme.
package source

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/loggraph/pkg/commit"
	"github.com/utkarsh5026/loggraph/pkg/common/logger"
)

const (
	SchemeGit  = "git"
	SchemeText = "text"
)

// Loader reads a commit sequence, newest first, children before parents.
//
// A limit of zero or less means no limit.
type Loader interface {
	Load(ctx context.Context, path string, limit int) (commit.Sequence, error)
}

// LoaderFunc adapts a function to the Loader interface
type LoaderFunc func(ctx context.Context, path string, limit int) (commit.Sequence, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, path string, limit int) (commit.Sequence, error) {
	return f(ctx, path, limit)
}

// Location is a parsed "<scheme>:<path>" string
type Location struct {
	Scheme string
	Path   string
}

func (l Location) String() string {
	return l.Scheme + ":" + l.Path
}

// Registry maps location schemes to loaders. It is built once at startup
// and handed to whoever needs to load history.
type Registry struct {
	loaders       map[string]Loader
	defaultScheme string
}

// NewRegistry creates an empty registry using defaultScheme for bare paths
func NewRegistry(defaultScheme string) *Registry {
	return &Registry{
		loaders:       make(map[string]Loader),
		defaultScheme: defaultScheme,
	}
}

// DefaultRegistry returns a registry with the git and text loaders installed
func DefaultRegistry(defaultScheme string) *Registry {
	if defaultScheme == "" {
		defaultScheme = SchemeGit
	}
	r := NewRegistry(defaultScheme)
	r.Register(SchemeGit, NewGitLoader())
	r.Register(SchemeText, NewTextLoader())
	return r
}

// Register installs loader under scheme, replacing any previous one
func (r *Registry) Register(scheme string, loader Loader) {
	r.loaders[strings.ToLower(scheme)] = loader
}

// Lookup returns the loader for scheme
func (r *Registry) Lookup(scheme string) (Loader, bool) {
	l, ok := r.loaders[strings.ToLower(scheme)]
	return l, ok
}

// Schemes returns the registered schemes, sorted
func (r *Registry) Schemes() []string {
	out := make([]string, 0, len(r.loaders))
	for s := range r.loaders {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Parse splits a location string. Only registered schemes are recognised,
// so a path containing a colon still falls back to the default scheme.
func (r *Registry) Parse(location string) (Location, error) {
	if location == "" {
		return Location{}, fmt.Errorf("empty location")
	}
	if scheme, path, found := strings.Cut(location, ":"); found {
		if _, ok := r.Lookup(scheme); ok {
			if path == "" {
				return Location{}, fmt.Errorf("location %q has no path", location)
			}
			return Location{Scheme: strings.ToLower(scheme), Path: path}, nil
		}
	}
	if r.defaultScheme == "" {
		return Location{}, fmt.Errorf("location %q has no scheme", location)
	}
	return Location{Scheme: r.defaultScheme, Path: location}, nil
}

// Load resolves location and reads it with the matching loader
func (r *Registry) Load(ctx context.Context, location string, limit int) (commit.Sequence, error) {
	loc, err := r.Parse(location)
	if err != nil {
		return nil, err
	}
	loader, ok := r.Lookup(loc.Scheme)
	if !ok {
		return nil, fmt.Errorf("no loader for scheme %q", loc.Scheme)
	}

	log := logger.With("component", "source")
	log.Debug("loading history", "location", loc.String(), "limit", limit)

	seq, err := loader.Load(ctx, loc.Path, limit)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loc, err)
	}

	log.Debug("history loaded", "location", loc.String(), "commits", seq.Len())
	return seq, nil
}

// LoadAll loads every location concurrently. Results keep the order of
// locations. The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, reg *Registry, locations []string, limit int) ([]commit.Sequence, error) {
	results := make([]commit.Sequence, len(locations))

	g, ctx := errgroup.WithContext(ctx)
	for i, location := range locations {
		i, location := i, location
		g.Go(func() error {
			seq, err := reg.Load(ctx, location, limit)
			if err != nil {
				return err
			}
			results[i] = seq
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func truncate(commits []*commit.Commit, limit int) []*commit.Commit {
	if limit > 0 && len(commits) > limit {
		return commits[:limit]
	}
	return commits
}
