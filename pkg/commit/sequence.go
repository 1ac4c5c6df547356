package commit

import (
	"container/heap"
	"fmt"
)

// CommitsModel is an ordered commit sequence, newest first.
//
// Children always come before their parents. Row i of a freshly built graph
// shows CommitAt(i).
type CommitsModel interface {
	Len() int
	CommitAt(index int) *Commit
}

// Sequence is a slice backed CommitsModel
type Sequence []*Commit

// Len returns the number of commits
func (s Sequence) Len() int {
	return len(s)
}

// CommitAt returns the commit at index
func (s Sequence) CommitAt(index int) *Commit {
	return s[index]
}

// IndexOf returns the position of hash in the sequence, or -1
func (s Sequence) IndexOf(hash Hash) int {
	for i, c := range s {
		if c.Hash == hash {
			return i
		}
	}
	return -1
}

// TopoSort reorders commits so every child precedes all of its parents.
//
// The input order is kept wherever it already satisfies that constraint, so a
// log in committer-time order only moves the commits affected by clock skew.
// Parents that are not part of the input are ignored. Duplicate hashes and
// cycles are reported as errors.
func TopoSort(commits []*Commit) (Sequence, error) {
	index := make(map[Hash]int, len(commits))
	for i, c := range commits {
		if _, dup := index[c.Hash]; dup {
			return nil, fmt.Errorf("duplicate commit %s", c.Hash)
		}
		index[c.Hash] = i
	}

	// pending[i] counts children of commit i that are not placed yet
	pending := make([]int, len(commits))
	for _, c := range commits {
		for _, p := range c.Parents {
			if pi, ok := index[p]; ok {
				pending[pi]++
			}
		}
	}

	ready := &indexHeap{}
	for i := range commits {
		if pending[i] == 0 {
			heap.Push(ready, i)
		}
	}

	// Always emit the earliest ready commit so the input order survives
	// wherever it is already valid.
	sorted := make(Sequence, 0, len(commits))
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		c := commits[i]
		sorted = append(sorted, c)

		for _, p := range c.Parents {
			pi, ok := index[p]
			if !ok {
				continue
			}
			pending[pi]--
			if pending[pi] == 0 {
				heap.Push(ready, pi)
			}
		}
	}

	if len(sorted) != len(commits) {
		return nil, fmt.Errorf("commit graph contains a cycle")
	}

	return sorted, nil
}

type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
