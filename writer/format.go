package writer

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"

	"github.com/cayleygraph/rdfwriter/graph"
)

// Position is the slot a node occupies when it is formatted.
type Position int

const (
	PositionSubject Position = iota
	PositionPredicate
	PositionObject
	PositionGraph
)

func (p Position) String() string {
	switch p {
	case PositionSubject:
		return "Subject"
	case PositionPredicate:
		return "Predicate"
	case PositionObject:
		return "Object"
	case PositionGraph:
		return "Graph Name"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// NodeFormatter renders a single node in a concrete syntax. It returns a
// *PositionError for nodes the syntax cannot express in the given position.
type NodeFormatter interface {
	Format(v quad.Value, pos Position) (string, error)
}

// CheckNode validates that v may appear in pos. Quoted triples are accepted
// in subject and object position only when quoted is set.
func CheckNode(syntax string, v quad.Value, pos Position, quoted bool) error {
	kind := graph.KindOf(v)
	bad := false
	switch kind {
	case graph.KindIRI:
	case graph.KindBlank:
		bad = pos == PositionPredicate
	case graph.KindLiteral:
		bad = pos != PositionObject
	case graph.KindTriple:
		bad = !quoted || pos == PositionPredicate || pos == PositionGraph
	default:
		bad = true
	}
	if bad {
		return &PositionError{Syntax: syntax, Position: pos, Kind: kind}
	}
	return nil
}

// EscapeString escapes a literal's lexical form for a double-quoted
// N-Triples or Turtle string.
func EscapeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// EscapeIRI escapes characters that may not appear inside <...>.
func EscapeIRI(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r <= 0x20 || strings.ContainsRune("<>\"{}|^`\\", r) {
			fmt.Fprintf(&sb, `\u%04X`, r)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// IsValidBlankNodeID reports whether id can be written after "_:" as is.
func IsValidBlankNodeID(id string) bool {
	if id == "" || strings.HasSuffix(id, ".") {
		return false
	}
	for i, r := range id {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		case i > 0 && (r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// BlankNodeLabel returns the "_:" form of a blank node, re-labelling ids that
// are not valid in the Turtle family.
func BlankNodeLabel(b quad.BNode) string {
	id := string(b)
	if !IsValidBlankNodeID(id) {
		id = "b" + hex.EncodeToString([]byte(id))
	}
	return "_:" + id
}

// IsLocalName reports whether s can be used as the local part of a prefixed name.
func IsLocalName(s string) bool {
	if s == "" {
		return true
	}
	if strings.HasSuffix(s, ".") {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		case i > 0 && (r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// Namespaces returns the namespaces of ns sorted by prefix.
func Namespaces(ns *voc.Namespaces) []voc.Namespace {
	if ns == nil {
		return nil
	}
	list := ns.List()
	sort.Slice(list, func(i, j int) bool { return list[i].Prefix < list[j].Prefix })
	return list
}

// ShortIRI reduces iri to a prefixed name using the longest matching
// namespace whose remainder is a valid local name.
func ShortIRI(list []voc.Namespace, iri quad.IRI) (string, bool) {
	s := string(iri)
	best := -1
	for i, n := range list {
		if n.Full == "" || !strings.HasPrefix(s, n.Full) {
			continue
		}
		if !IsLocalName(s[len(n.Full):]) {
			continue
		}
		if best < 0 || len(n.Full) > len(list[best].Full) {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return list[best].Prefix + s[len(list[best].Full):], true
}
