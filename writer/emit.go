// Copyright 2026 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package writer

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/rdfwriter/graph"
)

// HighSpeedThreshold is the subjects-per-triple ratio above which grouping is
// not worth it and a graph is written flat.
const HighSpeedThreshold = 0.75

// HighSpeedComment is written before a graph emitted in flat mode when
// compression is enabled.
const HighSpeedComment = "# Written using High Speed Mode"

// UseHighSpeed reports whether g should be written flat, one triple per line.
func UseHighSpeed(g graph.Graph, opts Options) bool {
	if opts.Compression == CompressionNone {
		return true
	}
	if !opts.HighSpeed {
		return false
	}
	n := g.Len()
	if n == 0 {
		return false
	}
	return float64(len(g.Subjects()))/float64(n) > HighSpeedThreshold
}

// Emitter writes the triples of a single graph in the Turtle family of syntaxes.
type Emitter struct {
	Formatter NodeFormatter
	Options   Options
	// Indent is prepended to every line when pretty printing.
	Indent int
	// Label is appended to every flat line, before the final dot.
	Label string
	// Collections enables ( ... ) and [ ... ] syntax.
	Collections bool
	// Annotations enables {| ... |} syntax.
	Annotations bool
	// Comment writes HighSpeedComment before flat output.
	Comment bool
	// Shared holds blank nodes referenced outside the graph being written.
	// They are never inlined.
	Shared map[quad.Value]struct{}
}

// Emit writes every triple of g to buf.
func (e *Emitter) Emit(buf *bytes.Buffer, g graph.Graph) error {
	if UseHighSpeed(g, e.Options) {
		mEmissionMode.WithLabelValues("flat").Inc()
		return e.emitFlat(buf, g)
	}
	mEmissionMode.WithLabelValues("grouped").Inc()
	return e.emitGrouped(buf, g)
}

func (e *Emitter) indent() string {
	if !e.Options.PrettyPrint {
		return ""
	}
	return strings.Repeat(" ", e.Indent)
}

func (e *Emitter) emitFlat(buf *bytes.Buffer, g graph.Graph) error {
	ind := e.indent()
	if e.Comment && e.Options.Compression > CompressionNone {
		e.Options.Warn("high speed write mode in use for %s, minimal syntax compression will be used", graph.NameString(g.Name()))
		buf.WriteString(ind + HighSpeedComment + "\n")
	}
	for _, t := range g.Triples() {
		s, err := e.Formatter.Format(t.Subject, PositionSubject)
		if err != nil {
			return err
		}
		p, err := e.Formatter.Format(t.Predicate, PositionPredicate)
		if err != nil {
			return err
		}
		o, err := e.Formatter.Format(t.Object, PositionObject)
		if err != nil {
			return err
		}
		buf.WriteString(ind)
		buf.WriteString(s + " " + p + " " + o)
		if e.Label != "" {
			buf.WriteString(" " + e.Label)
		}
		buf.WriteString(" .\n")
	}
	return nil
}

func (e *Emitter) emitGrouped(buf *bytes.Buffer, g graph.Graph) error {
	a := newAnalysis()
	if e.Options.Compression >= CompressionMore {
		if e.Collections {
			a = AnalyzeShared(g, SearchAll, e.Shared)
		}
		if e.Annotations {
			a.FindAnnotations(g)
		}
	}
	var ts []graph.Triple
	for _, t := range g.Triples() {
		if !a.IsHandled(t) {
			ts = append(ts, t)
		}
	}
	graph.SortTriples(ts)

	c := &emitContext{e: e, a: a}
	ind := e.indent()
	base := len(ind)
	var (
		lastS, lastP quad.Value
		predCol      int
		objCol       int
	)
	for i, t := range ts {
		switch {
		case i == 0 || t.Subject != lastS:
			if i > 0 {
				buf.WriteString(" .\n")
			}
			s, err := c.node(t.Subject, PositionSubject, base)
			if err != nil {
				return err
			}
			buf.WriteString(ind + s + " ")
			predCol = advance(base, s+" ")
			p, err := c.e.Formatter.Format(t.Predicate, PositionPredicate)
			if err != nil {
				return err
			}
			buf.WriteString(p + " ")
			objCol = advance(predCol, p+" ")
			o, err := c.object(t, objCol)
			if err != nil {
				return err
			}
			buf.WriteString(o)
		case t.Predicate != lastP:
			p, err := c.e.Formatter.Format(t.Predicate, PositionPredicate)
			if err != nil {
				return err
			}
			if e.Options.PrettyPrint {
				buf.WriteString(" ;\n" + strings.Repeat(" ", predCol))
			} else {
				buf.WriteString(" ; ")
			}
			buf.WriteString(p + " ")
			objCol = advance(predCol, p+" ")
			o, err := c.object(t, objCol)
			if err != nil {
				return err
			}
			buf.WriteString(o)
		default:
			o, err := c.object(t, objCol)
			if err != nil {
				return err
			}
			if e.Options.PrettyPrint {
				buf.WriteString(" ,\n" + strings.Repeat(" ", objCol))
			} else {
				buf.WriteString(" , ")
			}
			buf.WriteString(o)
		}
		lastS, lastP = t.Subject, t.Predicate
	}
	if len(ts) > 0 {
		buf.WriteString(" .\n")
	}
	return nil
}

// advance returns the column reached after writing s starting at col.
func advance(col int, s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return utf8.RuneCountInString(s[i+1:])
	}
	return col + utf8.RuneCountInString(s)
}

type emitContext struct {
	e *Emitter
	a *Analysis
}

// node formats v, replacing collection roots with their inline form.
func (c *emitContext) node(v quad.Value, pos Position, col int) (string, error) {
	if pos == PositionSubject || pos == PositionObject {
		if coll, ok := c.a.Collections[v]; ok && !coll.Written {
			return c.collection(coll, col)
		}
	}
	return c.e.Formatter.Format(v, pos)
}

// object formats the object of t followed by its annotation block, if any.
func (c *emitContext) object(t graph.Triple, col int) (string, error) {
	o, err := c.node(t.Object, PositionObject, col)
	if err != nil {
		return "", err
	}
	ann, ok := c.a.Annotations[t]
	if !ok {
		return o, nil
	}
	ann = sortedCopy(ann)
	inner, err := c.predicateObjectList(ann, advance(col, o+" {| "))
	if err != nil {
		return "", err
	}
	return o + " {| " + inner + " |}", nil
}

func (c *emitContext) collection(coll *Collection, col int) (string, error) {
	coll.Written = true
	if coll.Explicit {
		if len(coll.Triples) == 0 {
			return "[]", nil
		}
		inner, err := c.predicateObjectList(sortedCopy(coll.Triples), col+2)
		if err != nil {
			return "", err
		}
		return "[ " + inner + " ]", nil
	}
	var sb strings.Builder
	sb.WriteString("( ")
	cur := col + 2
	for _, t := range coll.Triples {
		item, err := c.node(t.Object, PositionObject, cur)
		if err != nil {
			return "", err
		}
		sb.WriteString(item + " ")
		cur = advance(cur, item+" ")
	}
	sb.WriteString(")")
	return sb.String(), nil
}

// predicateObjectList writes "p o ; q r , s" for triples sharing a subject,
// aligning continuation lines at col.
func (c *emitContext) predicateObjectList(ts []graph.Triple, col int) (string, error) {
	var (
		sb     strings.Builder
		lastP  quad.Value
		objCol int
	)
	pretty := c.e.Options.PrettyPrint
	for i, t := range ts {
		if i == 0 || t.Predicate != lastP {
			if i > 0 {
				if pretty {
					sb.WriteString(" ;\n" + strings.Repeat(" ", col))
				} else {
					sb.WriteString(" ; ")
				}
			}
			p, err := c.e.Formatter.Format(t.Predicate, PositionPredicate)
			if err != nil {
				return "", err
			}
			sb.WriteString(p + " ")
			objCol = advance(col, p+" ")
		} else if pretty {
			sb.WriteString(" ,\n" + strings.Repeat(" ", objCol))
		} else {
			sb.WriteString(" , ")
		}
		o, err := c.object(t, objCol)
		if err != nil {
			return "", err
		}
		sb.WriteString(o)
		lastP = t.Predicate
	}
	return sb.String(), nil
}

func sortedCopy(ts []graph.Triple) []graph.Triple {
	out := append([]graph.Triple(nil), ts...)
	sort.SliceStable(out, func(i, j int) bool { return graph.CompareTriples(out[i], out[j]) < 0 })
	return out
}
