package internal

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"

	"github.com/cayleygraph/rdfwriter/clog"
	"github.com/cayleygraph/rdfwriter/graph/memstore"
	"github.com/cayleygraph/rdfwriter/internal/decompressor"
)

// DefaultBatch is the number of quads copied into the store at once.
const DefaultBatch = 10000

// Load reads quads from path into st. The path may be "-" for stdin, a file
// or an http(s) URL; compressed input is detected automatically. If typ is
// empty, the format is chosen by file extension.
func Load(st *memstore.Store, batch int, path, typ string) error {
	if path == "" {
		return nil
	}
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else if u, err := url.Parse(path); err != nil || u.Scheme == "file" || u.Scheme == "" {
		// Don't alter relative URL path or non-URL path parameter.
		if err == nil && u.Scheme != "" {
			// Recovery heuristic for mistyping "file://path/to/file".
			path = filepath.Join(u.Host, u.Path)
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("could not open file %q: %v", path, err)
		}
		defer f.Close()
		r = f
	} else {
		res, err := http.Get(path)
		if err != nil {
			return fmt.Errorf("could not get resource <%s>: %v", u, err)
		}
		defer res.Body.Close()
		r = res.Body
	}

	r, err := decompressor.New(r)
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}

	rf, err := readerFormat(path, typ)
	if err != nil {
		return err
	}
	qr := rf.Reader(r)
	defer qr.Close()

	if batch <= 0 {
		batch = DefaultBatch
	}
	if _, err := quad.CopyBatch(&batchLogger{BatchWriter: st}, qr, batch); err != nil {
		return fmt.Errorf("failed to load data: %v", err)
	}
	return nil
}

func readerFormat(path, typ string) (*quad.Format, error) {
	var rf *quad.Format
	if typ != "" {
		rf = quad.FormatByName(typ)
	} else {
		ext := filepath.Ext(strings.TrimSuffix(strings.TrimSuffix(path, ".gz"), ".bz2"))
		rf = quad.FormatByExt(ext)
		typ = ext
	}
	if rf == nil {
		return nil, fmt.Errorf("unknown quad format %q", typ)
	} else if rf.Reader == nil {
		return nil, fmt.Errorf("decoding of %q is not supported", typ)
	}
	return rf, nil
}

type batchLogger struct {
	cnt int
	quad.BatchWriter
}

func (w *batchLogger) WriteQuads(quads []quad.Quad) (int, error) {
	n, err := w.BatchWriter.WriteQuads(quads)
	if clog.V(2) {
		w.cnt += n
		clog.Infof("Read %d quads.", w.cnt)
	}
	return n, err
}
