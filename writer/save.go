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

// Package writer holds the syntax-independent machinery shared by the RDF
// writers: node formatting rules, collection analysis, grouped emission and
// the concurrent dataset scheduler.
package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cayleygraph/rdfwriter/clog"
	"github.com/cayleygraph/rdfwriter/graph"
)

// DatasetWriter serializes a store to a sink.
//
// Unless leaveOpen is set, w is closed when it implements io.Closer, whether
// or not the write succeeded.
type DatasetWriter interface {
	Save(s graph.Store, w io.Writer, leaveOpen bool) error
}

// Syntax renders a dataset one graph at a time. RenderGraph may be called
// concurrently for different graphs.
type Syntax interface {
	// Name is used in errors and metrics.
	Name() string
	// Header writes everything that precedes the first graph.
	Header(w io.Writer, s graph.Store) error
	// RenderGraph writes a complete graph block to buf. Nothing is written to
	// the sink for graphs that leave buf empty.
	RenderGraph(buf *bytes.Buffer, g graph.Graph) error
	// Footer writes everything that follows the last graph.
	Footer(w io.Writer, s graph.Store) error
}

// Separator is implemented by syntaxes that need a delimiter between graph blocks.
type Separator interface {
	Separator() string
}

// Flusher is implemented by buffered sinks.
type Flusher interface {
	Flush() error
}

// Scheduler writes the graphs of a dataset using a fixed pool of workers.
// Each worker renders a graph into a private buffer and then appends it to
// the sink under a lock, so graph blocks never interleave. A failure in one
// graph does not stop the others; all failures are returned together.
type Scheduler struct {
	syntax Syntax
	opts   Options
}

var _ DatasetWriter = (*Scheduler)(nil)

// NewScheduler creates a dataset writer for the given syntax.
func NewScheduler(s Syntax, opts Options) *Scheduler {
	return &Scheduler{syntax: s, opts: opts}
}

// Options returns the options the scheduler was created with.
func (s *Scheduler) Options() Options { return s.opts }

// Save writes every graph of st to w.
func (s *Scheduler) Save(st graph.Store, w io.Writer, leaveOpen bool) (err error) {
	if !leaveOpen {
		defer func() {
			if c, ok := w.(io.Closer); ok {
				if cerr := c.Close(); err == nil {
					err = cerr
				}
			}
		}()
	}
	if err := s.syntax.Header(w, st); err != nil {
		return err
	}
	out := &sink{w: w, syntax: s.syntax.Name()}
	if sep, ok := s.syntax.(Separator); ok {
		out.sep = sep.Separator()
	}
	graphs := st.Graphs()
	var errs []error
	if s.opts.Threads > 1 && len(graphs) > 1 {
		errs = s.parallel(st, graphs, out)
	} else {
		errs = s.sequential(st, graphs, out)
	}
	if len(errs) > 0 {
		return &AggregateError{Syntax: s.syntax.Name(), Errors: errs}
	}
	if err := s.syntax.Footer(w, st); err != nil {
		return err
	}
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s *Scheduler) sequential(st graph.Store, graphs []graph.Graph, out *sink) []error {
	var (
		errs []error
		buf  bytes.Buffer
	)
	for _, g := range graphs {
		if err := s.writeGraph(st, g.Name(), &buf, out); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (s *Scheduler) parallel(st graph.Store, graphs []graph.Graph, out *sink) []error {
	queue := make(chan int, len(graphs))
	for i := range graphs {
		queue <- i
	}
	close(queue)

	// Each graph owns one slot, so failures come back in store order
	// without sorting or locking.
	slots := make([]error, len(graphs))
	var wg sync.WaitGroup
	for n := 0; n < s.opts.Threads; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			for i := range queue {
				slots[i] = s.writeGraph(st, graphs[i].Name(), &buf, out)
			}
		}()
	}
	wg.Wait()

	var errs []error
	for _, err := range slots {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (s *Scheduler) writeGraph(st graph.Store, name quad.Value, buf *bytes.Buffer, out *sink) (err error) {
	syntax := s.syntax.Name()
	defer func() {
		if r := recover(); r != nil {
			err = &GraphError{Graph: name, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			mGraphFailures.WithLabelValues(syntax).Inc()
			if clog.V(1) {
				clog.Infof("%s: failed to write %s: %v", syntax, graph.NameString(name), err)
			}
		}
	}()
	g, ok := st.Graph(name)
	if !ok {
		return &GraphError{Graph: name, Err: fmt.Errorf("graph not found")}
	}
	buf.Reset()
	timer := prometheus.NewTimer(mRenderSeconds.WithLabelValues(syntax))
	err = s.syntax.RenderGraph(buf, g)
	timer.ObserveDuration()
	if err != nil {
		return &GraphError{Graph: name, Err: err}
	}
	if buf.Len() == 0 {
		return nil
	}
	if err := out.write(buf.Bytes()); err != nil {
		return &GraphError{Graph: name, Err: err}
	}
	mGraphsWritten.WithLabelValues(syntax).Inc()
	if clog.V(2) {
		clog.Infof("%s: wrote %s (%d triples, %d bytes)", syntax, graph.NameString(name), g.Len(), buf.Len())
	}
	return nil
}

// sink serializes access to the output.
type sink struct {
	mu     sync.Mutex
	w      io.Writer
	sep    string
	blocks int
	syntax string
}

func (s *sink) write(p []byte) error {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	mSinkWaitSeconds.WithLabelValues(s.syntax).Observe(time.Since(start).Seconds())
	if s.blocks > 0 && s.sep != "" {
		if _, err := io.WriteString(s.w, s.sep); err != nil {
			return err
		}
	}
	if _, err := s.w.Write(p); err != nil {
		return err
	}
	s.blocks++
	mFlushBytes.WithLabelValues(s.syntax).Observe(float64(len(p)))
	if f, ok := s.w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// bufferedFile closes the file after flushing pending output.
type bufferedFile struct {
	*bufio.Writer
	f *os.File
}

func (b *bufferedFile) Close() error {
	if err := b.Flush(); err != nil {
		b.f.Close()
		return err
	}
	return b.f.Close()
}

// SaveFile creates filename and saves s into it, prefixing a UTF-8 byte
// order mark if bom is set.
func SaveFile(dw DatasetWriter, s graph.Store, filename string, bom bool) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	bf := &bufferedFile{Writer: bufio.NewWriter(f), f: f}
	if bom {
		if _, err := bf.WriteString("\uFEFF"); err != nil {
			bf.Close()
			return err
		}
	}
	return dw.Save(s, bf, false)
}

// SingleGraph returns the only non-empty graph of s, or the default graph
// when every graph is empty. Single-graph syntaxes use it to reject datasets.
func SingleGraph(s graph.Store, syntax string) (graph.Graph, error) {
	ne := graph.NonEmpty(s)
	switch len(ne) {
	case 0:
		g, ok := s.Graph(nil)
		if !ok {
			return nil, fmt.Errorf("%s: store has no default graph", syntax)
		}
		return g, nil
	case 1:
		return ne[0], nil
	}
	return nil, fmt.Errorf("%s: %w", syntax, ErrQuadsUnserializable)
}
