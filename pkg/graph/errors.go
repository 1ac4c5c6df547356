package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when a hide request names nodes that do
	// not form a collapsible chain
	ErrInvalidRequest = errors.New("invalid graph request")

	// ErrInvalidState is returned when an operation does not apply to the
	// current state of its target, such as showing a usual edge
	ErrInvalidState = errors.New("invalid graph state")

	// ErrCorruptedGraph signals a broken internal invariant. It is never
	// caused by caller input and must not be swallowed.
	ErrCorruptedGraph = errors.New("corrupted graph")

	// ErrUnknownNode is returned for node IDs outside the arena
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned for edge IDs outside the arena
	ErrUnknownEdge = errors.New("unknown edge")
)

// ErrNoChain is returned when no simple chain links Up to Down
type ErrNoChain struct {
	Up     NodeID
	Down   NodeID
	Reason string
}

func (e *ErrNoChain) Error() string {
	return fmt.Sprintf("cannot hide %d..%d: %s", e.Up, e.Down, e.Reason)
}

func (e *ErrNoChain) Unwrap() error {
	return ErrInvalidRequest
}

// NewErrNoChain creates a new ErrNoChain
func NewErrNoChain(up, down NodeID, reason string) *ErrNoChain {
	return &ErrNoChain{
		Up:     up,
		Down:   down,
		Reason: reason,
	}
}

// ErrNotHideEdge is returned when ShowBranch gets an edge it cannot expand
type ErrNotHideEdge struct {
	Edge   EdgeID
	Reason string
}

func (e *ErrNotHideEdge) Error() string {
	return fmt.Sprintf("cannot show edge %d: %s", e.Edge, e.Reason)
}

func (e *ErrNotHideEdge) Unwrap() error {
	return ErrInvalidState
}

// NewErrNotHideEdge creates a new ErrNotHideEdge
func NewErrNotHideEdge(edge EdgeID, reason string) *ErrNotHideEdge {
	return &ErrNotHideEdge{
		Edge:   edge,
		Reason: reason,
	}
}

// ErrBrokenChain is returned when a walk through collapsed nodes cannot
// reach a visible node
type ErrBrokenChain struct {
	Node   NodeID
	Edge   EdgeID
	Reason string
}

func (e *ErrBrokenChain) Error() string {
	return fmt.Sprintf("broken hidden chain at node %d (edge %d): %s", e.Node, e.Edge, e.Reason)
}

func (e *ErrBrokenChain) Unwrap() error {
	return ErrCorruptedGraph
}

// NewErrBrokenChain creates a new ErrBrokenChain
func NewErrBrokenChain(node NodeID, edge EdgeID, reason string) *ErrBrokenChain {
	return &ErrBrokenChain{
		Node:   node,
		Edge:   edge,
		Reason: reason,
	}
}
