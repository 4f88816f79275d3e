package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/rdfwriter/graph"
)

// ErrQuadsUnserializable is returned by single-graph syntaxes asked to write
// a dataset with more than one non-empty graph.
var ErrQuadsUnserializable = errors.New("triples in a graph (quads) are not serializable in this syntax")

// PositionError reports a node that the target syntax cannot express in the
// position it occupies.
type PositionError struct {
	Syntax   string
	Position Position
	Kind     graph.Kind
}

func (e *PositionError) Error() string {
	switch e.Kind {
	case graph.KindGraphLiteral:
		return fmt.Sprintf("Graph Literal Nodes are not serializable in %s", e.Syntax)
	case graph.KindTriple:
		return fmt.Sprintf("Triple Nodes cannot be serialized as %s", e.Syntax)
	case graph.KindUnknown:
		return fmt.Sprintf("Unknown node types cannot be serialized as %s", e.Syntax)
	}
	return fmt.Sprintf("Triples with a %s %s are not serializable in %s", e.Kind, e.Position, e.Syntax)
}

// UnreducibleError reports an IRI that must be written as a compact name
// (RDF/XML property elements) but cannot be reduced to one.
type UnreducibleError struct {
	Syntax string
	IRI    quad.IRI
}

func (e *UnreducibleError) Error() string {
	return fmt.Sprintf("unable to serialize this graph in %s since %s has an unreducible URI", e.Syntax, e.IRI)
}

// GraphError wraps the failure of a single graph within a dataset.
type GraphError struct {
	Graph quad.Value
	Err   error
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("%s: %v", graph.NameString(e.Graph), e.Err)
}

func (e *GraphError) Unwrap() error { return e.Err }

// AggregateError collects the failures of a dataset write, one per graph.
type AggregateError struct {
	Syntax string
	Errors []error
}

func (e *AggregateError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("one/more errors occurred while outputting RDF in %s using a multi-threaded writing process: %s",
		e.Syntax, strings.Join(msgs, "; "))
}

func (e *AggregateError) Unwrap() []error { return e.Errors }
