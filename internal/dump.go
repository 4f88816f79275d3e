package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cayleygraph/rdfwriter/clog"
	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
)

// OutputFormat resolves a writer format by name, or by the extension of
// outFile when typ is empty.
func OutputFormat(outFile, typ string) (*writer.Format, error) {
	var f *writer.Format
	if typ != "" {
		f = writer.FormatByName(typ)
	} else {
		typ = filepath.Ext(outFile)
		f = writer.FormatByExt(typ)
	}
	if f == nil {
		return nil, fmt.Errorf("unsupported format: %q", typ)
	}
	return f, nil
}

// Dump writes the content of st into outFile ("-" for stdout) in the given format.
func Dump(st graph.Store, outFile, typ string, opts writer.Options) error {
	f, err := OutputFormat(outFile, typ)
	if err != nil {
		return err
	}
	w := f.New(opts)
	if outFile == "-" {
		return w.Save(st, os.Stdout, true)
	}
	if err := writer.SaveFile(w, st, outFile, opts.BOM); err != nil {
		return err
	}
	clog.Infof("dumped %d graphs to %q as %s", len(graph.NonEmpty(st)), outFile, f.Name)
	return nil
}
