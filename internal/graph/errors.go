package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNodeNotFound is returned when an edge references a node that is not
	// part of the dataset.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrDuplicateNode is returned when two nodes share an id.
	ErrDuplicateNode = errors.New("graph: duplicate node id")
)

// GraphCycleError reports a prerequisite cycle. Node is the first node found
// twice on the same ancestor walk.
type GraphCycleError struct {
	Node string
	Path []string
}

func (e *GraphCycleError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("graph: cycle detected at node %s", e.Node)
	}
	return fmt.Sprintf("graph: cycle detected at node %s (%s)", e.Node, strings.Join(e.Path, " -> "))
}

// MultipleParentsError reports a child that more than one edge points to.
// Highlighting walks a single ancestor chain, so this is rejected at build time.
type MultipleParentsError struct {
	Child  string
	First  string
	Second string
}

func (e *MultipleParentsError) Error() string {
	return fmt.Sprintf("graph: node %s has multiple parents (%s, %s)", e.Child, e.First, e.Second)
}
